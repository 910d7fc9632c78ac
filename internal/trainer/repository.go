package trainer

import (
	"context"
	"database/sql"
	"errors"

	"gymlite/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrDuplicateTaxID  = errors.New("a trainer with this tax ID already exists")
	ErrTrainerInUse    = errors.New("trainer still has scheduled sessions")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t *Trainer) (*Trainer, error) {
	query := `
		INSERT INTO trainers (tax_id, first_name, last_name, phone, birth_date, specialty)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, tax_id, first_name, last_name, phone, birth_date, specialty
	`

	var created Trainer
	err := r.db.GetContext(ctx, &created, query,
		t.TaxID, t.FirstName, t.LastName, t.Phone, t.BirthDate, t.Specialty)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateTaxID
		}
		return nil, err
	}

	return &created, nil
}

func (r *Repository) List(ctx context.Context) ([]Trainer, error) {
	query := `
		SELECT id, tax_id, first_name, last_name, phone, birth_date, specialty
		FROM trainers
		ORDER BY LOWER(last_name), LOWER(first_name)
	`

	var trainers []Trainer
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*Trainer, error) {
	query := `
		SELECT id, tax_id, first_name, last_name, phone, birth_date, specialty
		FROM trainers
		WHERE id = $1
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	return &t, nil
}

// Delete is a hard delete; the class_sessions FK is RESTRICT so it fails
// while any session still references the trainer.
func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrTrainerInUse
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTrainerNotFound
	}

	return nil
}
