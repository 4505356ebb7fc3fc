package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findCartByOwner = `
SELECT id, owner, created_at, updated_at
FROM carts
WHERE owner = $1
`

func (q *Queries) FindCartByOwner(c context.Context, owner string) (Cart, error) {
	row := q.db.QueryRow(c, findCartByOwner, owner)
	var i Cart
	err := row.Scan(&i.ID, &i.Owner, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const insertCart = `
INSERT INTO carts (id, owner, created_at, updated_at)
VALUES ($1, $2, now(), now())
RETURNING id, owner, created_at, updated_at
`

func (q *Queries) InsertCart(c context.Context, owner string) (Cart, error) {
	row := q.db.QueryRow(c, insertCart, uuid.New(), owner)
	var i Cart
	err := row.Scan(&i.ID, &i.Owner, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const touchCart = `
UPDATE carts SET updated_at = now() WHERE id = $1
`

func (q *Queries) TouchCart(c context.Context, cartID uuid.UUID) error {
	_, err := q.db.Exec(c, touchCart, cartID)
	return err
}

const deleteCart = `
DELETE FROM carts WHERE id = $1
`

func (q *Queries) DeleteCart(c context.Context, cartID uuid.UUID) error {
	_, err := q.db.Exec(c, deleteCart, cartID)
	return err
}

const findCartItems = `
SELECT id, cart_id, sku, quantity, price, name, brand, model, image_url, in_stock, checked, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at, sku
`

func (q *Queries) FindCartItems(c context.Context, cartID uuid.UUID) ([]CartItem, error) {
	rows, err := q.db.Query(c, findCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CartItem{}
	for rows.Next() {
		var i CartItem
		err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.Sku,
			&i.Quantity,
			&i.Price,
			&i.Name,
			&i.Brand,
			&i.Model,
			&i.ImageUrl,
			&i.InStock,
			&i.Checked,
			&i.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findCheckedCartItems = `
SELECT id, cart_id, sku, quantity, price, name, brand, model, image_url, in_stock, checked, created_at
FROM cart_items
WHERE cart_id = $1 AND checked
ORDER BY created_at, sku
`

func (q *Queries) FindCheckedCartItems(c context.Context, cartID uuid.UUID) ([]CartItem, error) {
	rows, err := q.db.Query(c, findCheckedCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CartItem{}
	for rows.Next() {
		var i CartItem
		err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.Sku,
			&i.Quantity,
			&i.Price,
			&i.Name,
			&i.Brand,
			&i.Model,
			&i.ImageUrl,
			&i.InStock,
			&i.Checked,
			&i.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findCartItemBySku = `
SELECT id, cart_id, sku, quantity, price, name, brand, model, image_url, in_stock, checked, created_at
FROM cart_items
WHERE cart_id = $1 AND sku = $2
`

type FindCartItemBySkuParams struct {
	CartID uuid.UUID
	Sku    string
}

func (q *Queries) FindCartItemBySku(c context.Context, arg FindCartItemBySkuParams) (CartItem, error) {
	row := q.db.QueryRow(c, findCartItemBySku, arg.CartID, arg.Sku)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.Sku,
		&i.Quantity,
		&i.Price,
		&i.Name,
		&i.Brand,
		&i.Model,
		&i.ImageUrl,
		&i.InStock,
		&i.Checked,
		&i.CreatedAt,
	)
	return i, err
}

// upsertCartItem keys the write on (cart_id, sku) so that two rapid adds of
// the same sku serialize on the unique constraint instead of duplicating the
// line. The price is only written on insert; an existing line keeps its
// add-time price.
const upsertCartItem = `
INSERT INTO cart_items (id, cart_id, sku, quantity, price, name, brand, model, image_url, in_stock, checked, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, now())
ON CONFLICT (cart_id, sku)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id, cart_id, sku, quantity, price, name, brand, model, image_url, in_stock, checked, created_at
`

type UpsertCartItemParams struct {
	ID       uuid.UUID
	CartID   uuid.UUID
	Sku      string
	Quantity int32
	Price    pgtype.Numeric
	Name     string
	Brand    string
	Model    string
	ImageUrl string
	InStock  bool
}

func (q *Queries) UpsertCartItem(c context.Context, arg UpsertCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(c, upsertCartItem,
		arg.ID,
		arg.CartID,
		arg.Sku,
		arg.Quantity,
		arg.Price,
		arg.Name,
		arg.Brand,
		arg.Model,
		arg.ImageUrl,
		arg.InStock,
	)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.Sku,
		&i.Quantity,
		&i.Price,
		&i.Name,
		&i.Brand,
		&i.Model,
		&i.ImageUrl,
		&i.InStock,
		&i.Checked,
		&i.CreatedAt,
	)
	return i, err
}

const insertCartItem = `
INSERT INTO cart_items (id, cart_id, sku, quantity, price, name, brand, model, image_url, in_stock, checked, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

type InsertCartItemParams struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	Sku       string
	Quantity  int32
	Price     pgtype.Numeric
	Name      string
	Brand     string
	Model     string
	ImageUrl  string
	InStock   bool
	Checked   bool
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) InsertCartItem(c context.Context, arg InsertCartItemParams) error {
	_, err := q.db.Exec(c, insertCartItem,
		arg.ID,
		arg.CartID,
		arg.Sku,
		arg.Quantity,
		arg.Price,
		arg.Name,
		arg.Brand,
		arg.Model,
		arg.ImageUrl,
		arg.InStock,
		arg.Checked,
		arg.CreatedAt,
	)
	return err
}

const addCartItemQuantity = `
UPDATE cart_items
SET quantity = quantity + $3
WHERE cart_id = $1 AND sku = $2
RETURNING quantity
`

type AddCartItemQuantityParams struct {
	CartID uuid.UUID
	Sku    string
	Delta  int32
}

func (q *Queries) AddCartItemQuantity(c context.Context, arg AddCartItemQuantityParams) (int32, error) {
	row := q.db.QueryRow(c, addCartItemQuantity, arg.CartID, arg.Sku, arg.Delta)
	var quantity int32
	err := row.Scan(&quantity)
	return quantity, err
}

const updateCartItemQuantity = `
UPDATE cart_items
SET quantity = $3
WHERE cart_id = $1 AND sku = $2
`

type UpdateCartItemQuantityParams struct {
	CartID   uuid.UUID
	Sku      string
	Quantity int32
}

func (q *Queries) UpdateCartItemQuantity(c context.Context, arg UpdateCartItemQuantityParams) (int64, error) {
	tag, err := q.db.Exec(c, updateCartItemQuantity, arg.CartID, arg.Sku, arg.Quantity)
	return tag.RowsAffected(), err
}

const updateCartItemChecked = `
UPDATE cart_items
SET checked = $3
WHERE cart_id = $1 AND sku = $2
`

type UpdateCartItemCheckedParams struct {
	CartID  uuid.UUID
	Sku     string
	Checked bool
}

func (q *Queries) UpdateCartItemChecked(c context.Context, arg UpdateCartItemCheckedParams) (int64, error) {
	tag, err := q.db.Exec(c, updateCartItemChecked, arg.CartID, arg.Sku, arg.Checked)
	return tag.RowsAffected(), err
}

const deleteCartItem = `
DELETE FROM cart_items WHERE cart_id = $1 AND sku = $2
`

type DeleteCartItemParams struct {
	CartID uuid.UUID
	Sku    string
}

func (q *Queries) DeleteCartItem(c context.Context, arg DeleteCartItemParams) (int64, error) {
	tag, err := q.db.Exec(c, deleteCartItem, arg.CartID, arg.Sku)
	return tag.RowsAffected(), err
}

const deleteCheckedCartItems = `
DELETE FROM cart_items WHERE cart_id = $1 AND checked
`

func (q *Queries) DeleteCheckedCartItems(c context.Context, cartID uuid.UUID) error {
	_, err := q.db.Exec(c, deleteCheckedCartItems, cartID)
	return err
}

const deleteCartItems = `
DELETE FROM cart_items WHERE cart_id = $1
`

func (q *Queries) DeleteCartItems(c context.Context, cartID uuid.UUID) error {
	_, err := q.db.Exec(c, deleteCartItems, cartID)
	return err
}
