package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrder = `
INSERT INTO orders (
	id, order_number, user_id, status, subtotal, shipping_fee, discount_amount,
	total, coupon_code, shipping_method, recipient, address, phone,
	payment_method, transaction_id, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
RETURNING id, order_number, user_id, status, subtotal, shipping_fee, discount_amount,
	total, coupon_code, shipping_method, recipient, address, phone,
	payment_method, transaction_id, created_at, updated_at
`

type InsertOrderParams struct {
	ID             uuid.UUID
	OrderNumber    string
	UserID         uuid.UUID
	Status         string
	Subtotal       pgtype.Numeric
	ShippingFee    pgtype.Numeric
	DiscountAmount pgtype.Numeric
	Total          pgtype.Numeric
	CouponCode     string
	ShippingMethod string
	Recipient      string
	Address        string
	Phone          string
	PaymentMethod  string
	TransactionID  string
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder,
		arg.ID,
		arg.OrderNumber,
		arg.UserID,
		arg.Status,
		arg.Subtotal,
		arg.ShippingFee,
		arg.DiscountAmount,
		arg.Total,
		arg.CouponCode,
		arg.ShippingMethod,
		arg.Recipient,
		arg.Address,
		arg.Phone,
		arg.PaymentMethod,
		arg.TransactionID,
	)
	var i Order
	err := scanOrder(row, &i)
	return i, err
}

const insertOrderItem = `
INSERT INTO order_items (id, order_id, sku, name, brand, model, quantity, order_price)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type InsertOrderItemParams struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	Sku        string
	Name       string
	Brand      string
	Model      string
	Quantity   int32
	OrderPrice pgtype.Numeric
}

func (q *Queries) InsertOrderItem(c context.Context, arg InsertOrderItemParams) error {
	_, err := q.db.Exec(c, insertOrderItem,
		arg.ID,
		arg.OrderID,
		arg.Sku,
		arg.Name,
		arg.Brand,
		arg.Model,
		arg.Quantity,
		arg.OrderPrice,
	)
	return err
}

const findOrderById = `
SELECT id, order_number, user_id, status, subtotal, shipping_fee, discount_amount,
	total, coupon_code, shipping_method, recipient, address, phone,
	payment_method, transaction_id, created_at, updated_at
FROM orders
WHERE id = $1
`

func (q *Queries) FindOrderById(c context.Context, orderID uuid.UUID) (Order, error) {
	row := q.db.QueryRow(c, findOrderById, orderID)
	var i Order
	err := scanOrder(row, &i)
	return i, err
}

const findOrdersByUserId = `
SELECT id, order_number, user_id, status, subtotal, shipping_fee, discount_amount,
	total, coupon_code, shipping_method, recipient, address, phone,
	payment_method, transaction_id, created_at, updated_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) FindOrdersByUserId(c context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(c, findOrdersByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := []Order{}
	for rows.Next() {
		var i Order
		if err := scanOrder(rows, &i); err != nil {
			return nil, err
		}
		orders = append(orders, i)
	}
	return orders, rows.Err()
}

const findOrderItems = `
SELECT id, order_id, sku, name, brand, model, quantity, order_price
FROM order_items
WHERE order_id = $1
ORDER BY sku
`

func (q *Queries) FindOrderItems(c context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(c, findOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		var i OrderItem
		err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.Sku,
			&i.Name,
			&i.Brand,
			&i.Model,
			&i.Quantity,
			&i.OrderPrice,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, order_number, user_id, status, subtotal, shipping_fee, discount_amount,
	total, coupon_code, shipping_method, recipient, address, phone,
	payment_method, transaction_id, created_at, updated_at
`

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) UpdateOrderStatus(c context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(c, updateOrderStatus, arg.ID, arg.Status)
	var i Order
	err := scanOrder(row, &i)
	return i, err
}

const updateOrderTransaction = `
UPDATE orders
SET transaction_id = $2, status = $3, updated_at = now()
WHERE id = $1
`

type UpdateOrderTransactionParams struct {
	ID            uuid.UUID
	TransactionID string
	Status        string
}

func (q *Queries) UpdateOrderTransaction(c context.Context, arg UpdateOrderTransactionParams) error {
	_, err := q.db.Exec(c, updateOrderTransaction, arg.ID, arg.TransactionID, arg.Status)
	return err
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scannable, i *Order) error {
	return row.Scan(
		&i.ID,
		&i.OrderNumber,
		&i.UserID,
		&i.Status,
		&i.Subtotal,
		&i.ShippingFee,
		&i.DiscountAmount,
		&i.Total,
		&i.CouponCode,
		&i.ShippingMethod,
		&i.Recipient,
		&i.Address,
		&i.Phone,
		&i.PaymentMethod,
		&i.TransactionID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}
