package plan

import (
	"context"
	"database/sql"
	"errors"

	"gymlite/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrDuplicateName = errors.New("a plan with this name already exists")
	ErrInvalidPlan   = errors.New("plan price and duration must be positive")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *Plan) (*Plan, error) {
	query := `
		INSERT INTO plans (name, price_cents, duration_months, class_limit, perks, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, price_cents, duration_months, class_limit, perks, description
	`

	var created Plan
	err := r.db.GetContext(ctx, &created, query,
		p.Name, p.PriceCents, p.DurationMonths, p.ClassLimit, p.Perks, p.Description)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return nil, ErrDuplicateName
		case db.IsCheckViolation(err):
			return nil, ErrInvalidPlan
		}
		return nil, err
	}

	return &created, nil
}

func (r *Repository) List(ctx context.Context) ([]Plan, error) {
	query := `
		SELECT id, name, price_cents, duration_months, class_limit, perks, description
		FROM plans
		ORDER BY price_cents DESC
	`

	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, query)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*Plan, error) {
	query := `
		SELECT id, name, price_cents, duration_months, class_limit, perks, description
		FROM plans
		WHERE id = $1
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Seed inserts the stock plans on an empty table. Returns the number of rows
// inserted; zero means the table already had plans.
func (r *Repository) Seed(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM plans`); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	twenty := 20
	stock := []Plan{
		{Name: "Monthly", PriceCents: 2450000, DurationMonths: 1, ClassLimit: &twenty},
		{Name: "Quarterly", PriceCents: 6600000, DurationMonths: 3, ClassLimit: &twenty},
		{Name: "Semiannual", PriceCents: 12000000, DurationMonths: 6},
		{Name: "Annual", PriceCents: 21000000, DurationMonths: 12},
	}

	inserted := 0
	for i := range stock {
		if _, err := r.Create(ctx, &stock[i]); err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}
