package repository

import (
	"context"

	"github.com/google/uuid"
)

const insertUser = `
INSERT INTO users (id, email, name, password, is_admin, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
RETURNING id, email, name, password, is_admin, created_at, updated_at
`

type InsertUserParams struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Password string
	IsAdmin  bool
}

func (q *Queries) InsertUser(c context.Context, arg InsertUserParams) (User, error) {
	row := q.db.QueryRow(c, insertUser,
		arg.ID,
		arg.Email,
		arg.Name,
		arg.Password,
		arg.IsAdmin,
	)
	var i User
	err := scanUser(row, &i)
	return i, err
}

const findUserByEmail = `
SELECT id, email, name, password, is_admin, created_at, updated_at
FROM users
WHERE email = $1
`

func (q *Queries) FindUserByEmail(c context.Context, email string) (User, error) {
	row := q.db.QueryRow(c, findUserByEmail, email)
	var i User
	err := scanUser(row, &i)
	return i, err
}

const findUserById = `
SELECT id, email, name, password, is_admin, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) FindUserById(c context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(c, findUserById, id)
	var i User
	err := scanUser(row, &i)
	return i, err
}

func scanUser(row scannable, i *User) error {
	return row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.Password,
		&i.IsAdmin,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}
