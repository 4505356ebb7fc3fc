package repository

import (
	"context"

	"github.com/google/uuid"
)

const insertInquiry = `
INSERT INTO inquiries (id, name, email, phone, message, product_sku, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING id, name, email, phone, message, product_sku, answer, answered_at, created_at
`

type InsertInquiryParams struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Message    string
	ProductSku string
}

func (q *Queries) InsertInquiry(c context.Context, arg InsertInquiryParams) (Inquiry, error) {
	row := q.db.QueryRow(c, insertInquiry,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Message,
		arg.ProductSku,
	)
	var i Inquiry
	err := scanInquiry(row, &i)
	return i, err
}

const findInquiries = `
SELECT id, name, email, phone, message, product_sku, answer, answered_at, created_at
FROM inquiries
ORDER BY created_at DESC
`

func (q *Queries) FindInquiries(c context.Context) ([]Inquiry, error) {
	rows, err := q.db.Query(c, findInquiries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	inquiries := []Inquiry{}
	for rows.Next() {
		var i Inquiry
		if err := scanInquiry(rows, &i); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, i)
	}
	return inquiries, rows.Err()
}

const answerInquiry = `
UPDATE inquiries
SET answer = $2, answered_at = now()
WHERE id = $1
RETURNING id, name, email, phone, message, product_sku, answer, answered_at, created_at
`

type AnswerInquiryParams struct {
	ID     uuid.UUID
	Answer string
}

func (q *Queries) AnswerInquiry(c context.Context, arg AnswerInquiryParams) (Inquiry, error) {
	row := q.db.QueryRow(c, answerInquiry, arg.ID, arg.Answer)
	var i Inquiry
	err := scanInquiry(row, &i)
	return i, err
}

func scanInquiry(row scannable, i *Inquiry) error {
	return row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.Message,
		&i.ProductSku,
		&i.Answer,
		&i.AnsweredAt,
		&i.CreatedAt,
	)
}
