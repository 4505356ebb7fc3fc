package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findProducts = `
SELECT id, sku, name, brand, model, image_url, description, price, in_stock, created_at, updated_at
FROM products
ORDER BY created_at DESC
`

func (q *Queries) FindProducts(c context.Context) ([]Product, error) {
	rows, err := q.db.Query(c, findProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		var i Product
		if err := scanProduct(rows, &i); err != nil {
			return nil, err
		}
		products = append(products, i)
	}
	return products, rows.Err()
}

const findProductBySku = `
SELECT id, sku, name, brand, model, image_url, description, price, in_stock, created_at, updated_at
FROM products
WHERE sku = $1
`

func (q *Queries) FindProductBySku(c context.Context, sku string) (Product, error) {
	row := q.db.QueryRow(c, findProductBySku, sku)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

const insertProduct = `
INSERT INTO products (id, sku, name, brand, model, image_url, description, price, in_stock, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
RETURNING id, sku, name, brand, model, image_url, description, price, in_stock, created_at, updated_at
`

type InsertProductParams struct {
	ID          uuid.UUID
	Sku         string
	Name        string
	Brand       string
	Model       string
	ImageUrl    string
	Description string
	Price       pgtype.Numeric
	InStock     bool
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, insertProduct,
		arg.ID,
		arg.Sku,
		arg.Name,
		arg.Brand,
		arg.Model,
		arg.ImageUrl,
		arg.Description,
		arg.Price,
		arg.InStock,
	)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

const updateProduct = `
UPDATE products
SET name = $2, brand = $3, model = $4, image_url = $5, description = $6,
	price = $7, in_stock = $8, updated_at = now()
WHERE sku = $1
RETURNING id, sku, name, brand, model, image_url, description, price, in_stock, created_at, updated_at
`

type UpdateProductParams struct {
	Sku         string
	Name        string
	Brand       string
	Model       string
	ImageUrl    string
	Description string
	Price       pgtype.Numeric
	InStock     bool
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(c, updateProduct,
		arg.Sku,
		arg.Name,
		arg.Brand,
		arg.Model,
		arg.ImageUrl,
		arg.Description,
		arg.Price,
		arg.InStock,
	)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

// Remanufactured units are one-of-a-kind, so a sale marks the product sold
// out rather than decrementing a stock count.
const markProductSoldOut = `
UPDATE products
SET in_stock = false, updated_at = now()
WHERE sku = $1
`

func (q *Queries) MarkProductSoldOut(c context.Context, sku string) (int64, error) {
	tag, err := q.db.Exec(c, markProductSoldOut, sku)
	return tag.RowsAffected(), err
}

func scanProduct(row scannable, i *Product) error {
	return row.Scan(
		&i.ID,
		&i.Sku,
		&i.Name,
		&i.Brand,
		&i.Model,
		&i.ImageUrl,
		&i.Description,
		&i.Price,
		&i.InStock,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}
