package payment

import (
	"context"
	"errors"
	"strings"

	"gymlite/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidMethod       = errors.New("unknown payment method")
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrSubscriptionMissing = errors.New("subscription does not exist")
)

// validMethods mirrors the payments.method check constraint.
var validMethods = map[string]bool{
	"transfer": true,
	"webpay":   true,
	"card":     true,
	"cash":     true,
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// NormalizeMethod lower/trims a method name. The empty result for unknown
// input keeps validation in one place.
func NormalizeMethod(method string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(method))
	return m, validMethods[m]
}

// Record inserts a completed payment. Method and amount are validated before
// touching the database.
func (r *Repository) Record(ctx context.Context, subscriptionID int, amountCents int64, method string, receipt *string) (*Payment, error) {
	m, ok := NormalizeMethod(method)
	if !ok {
		return nil, ErrInvalidMethod
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	query := `
		INSERT INTO payments (subscription_id, amount_cents, method, status, receipt)
		VALUES ($1, $2, $3, 'completed', $4)
		RETURNING id, subscription_id, paid_at, amount_cents, method, status, receipt
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, subscriptionID, amountCents, m, receipt)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrSubscriptionMissing
		}
		return nil, err
	}

	return &p, nil
}

// FindDetail loads one payment with member and plan names, for the receipt
// mail.
func (r *Repository) FindDetail(ctx context.Context, id int) (*PaymentDetail, error) {
	query := `
		SELECT p.id, p.subscription_id, p.paid_at, p.amount_cents, p.method, p.status, p.receipt,
		       m.first_name, m.last_name, m.email,
		       pl.name AS plan_name
		FROM payments p
		JOIN subscriptions s ON s.id = p.subscription_id
		JOIN members m ON m.id = s.member_id
		JOIN plans pl ON pl.id = s.plan_id
		WHERE p.id = $1
	`

	var detail PaymentDetail
	err := r.db.GetContext(ctx, &detail, query, id)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// History returns the newest payments joined with member and plan names.
func (r *Repository) History(ctx context.Context, limit int) ([]PaymentDetail, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT p.id, p.subscription_id, p.paid_at, p.amount_cents, p.method, p.status, p.receipt,
		       m.first_name, m.last_name, m.email,
		       pl.name AS plan_name
		FROM payments p
		JOIN subscriptions s ON s.id = p.subscription_id
		JOIN members m ON m.id = s.member_id
		JOIN plans pl ON pl.id = s.plan_id
		ORDER BY p.paid_at DESC
		LIMIT $1
	`

	var payments []PaymentDetail
	err := r.db.SelectContext(ctx, &payments, query, limit)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
