package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_digest, remember_digest, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query :=
		`INSERT INTO users (id, name, email, password_digest, remember_digest, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	created := *user
	created.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, query,
		created.ID, created.Name, created.Email, created.PasswordDigest,
		created.RememberDigest, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query :=
		`UPDATE users SET name = $2, email = $3, password_digest = $4, updated_at = $5
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordDigest, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *UserRepository) UpdateRememberDigest(ctx context.Context, id string, digest *string) error {
	query := `UPDATE users SET remember_digest = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, digest)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var (
		u        domain.User
		remember sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordDigest, &remember, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if remember.Valid {
		u.RememberDigest = &remember.String
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
