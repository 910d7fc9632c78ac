package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrStaffNotFound = errors.New("staff user not found")

type StaffUser struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type StaffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, username, passwordHash, role string) (*StaffUser, error) {
	query := `
		INSERT INTO staff_users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, role, active, created_at
	`

	var u StaffUser
	err := r.db.GetContext(ctx, &u, query, username, passwordHash, role)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *StaffRepository) FindByUsername(ctx context.Context, username string) (*StaffUser, error) {
	query := `
		SELECT id, username, password_hash, role, active, created_at
		FROM staff_users
		WHERE username = $1
	`

	var u StaffUser
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id int) (*StaffUser, error) {
	query := `
		SELECT id, username, password_hash, role, active, created_at
		FROM staff_users
		WHERE id = $1
	`

	var u StaffUser
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	return &u, nil
}

// EnsureAdmin seeds a default admin user when the table is empty, so a fresh
// install always has a way to log in.
func (r *StaffRepository) EnsureAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		return nil
	}

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM staff_users`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	_, err = r.Create(ctx, username, hash, "admin")
	return err
}
