package member

import (
	"context"
	"database/sql"
	"errors"

	"gymlite/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrDuplicateTaxID = errors.New("a member with this tax ID already exists")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) (*Member, error) {
	query := `
		INSERT INTO members (tax_id, first_name, last_name, middle_name, birth_date, phone, email, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, tax_id, first_name, last_name, middle_name, birth_date, phone, email, address, active
	`

	var created Member
	err := r.db.GetContext(ctx, &created, query,
		m.TaxID, m.FirstName, m.LastName, m.MiddleName, m.BirthDate, m.Phone, m.Email, m.Address)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateTaxID
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Member, error) {
	query := `
		SELECT id, tax_id, first_name, last_name, middle_name, birth_date, phone, email, address, active
		FROM members
		WHERE active = true
		ORDER BY LOWER(last_name), LOWER(first_name)
	`

	var members []Member
	err := r.db.SelectContext(ctx, &members, query)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Member, error) {
	query := `
		SELECT id, tax_id, first_name, last_name, middle_name, birth_date, phone, email, address, active
		FROM members
		WHERE id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByTaxID(ctx context.Context, taxID string) (*Member, error) {
	query := `
		SELECT id, tax_id, first_name, last_name, middle_name, birth_date, phone, email, address, active
		FROM members
		WHERE tax_id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, taxID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET tax_id = $1, first_name = $2, last_name = $3, middle_name = $4,
		    birth_date = $5, phone = $6, email = $7, address = $8
		WHERE id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		m.TaxID, m.FirstName, m.LastName, m.MiddleName, m.BirthDate, m.Phone, m.Email, m.Address, m.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateTaxID
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

// SoftDelete never removes the row; history behind the member stays intact.
func (r *repository) SoftDelete(ctx context.Context, id int) error {
	query := `
		UPDATE members
		SET active = false
		WHERE id = $1 AND active = true
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}
