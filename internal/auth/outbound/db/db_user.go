package db

import (
	"context"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
)

func (s *DB) CreateUser(ctx context.Context, user entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO auth_users (id, username, email, phone, password, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, now())`

	_, err = s.conn.Exec(ctx, query, user.ID, user.Username, user.Email, user.Phone, user.Password)
	err = s.mapError(err)
	return err
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, email, COALESCE(phone, ''), password, created_at
		FROM auth_users
		WHERE username = $1`

	var u entity.User
	err = s.conn.QueryRow(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.Password, &u.CreatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, email, COALESCE(phone, ''), password, created_at
		FROM auth_users
		WHERE id = $1`

	var u entity.User
	err = s.conn.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.Password, &u.CreatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &u, nil
}
