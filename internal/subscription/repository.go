package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymlite/internal/db"
	"gymlite/internal/plan"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNoneActive           = errors.New("member has no active subscription")
	ErrMemberMissing        = errors.New("member does not exist")
	ErrAlreadyCancelled     = errors.New("subscription is already cancelled")
)

type Repository struct {
	db    *sqlx.DB
	plans *plan.Repository
}

func NewRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database, plans: plan.NewRepository(database)}
}

// Create enrolls a member: the end date is the start date advanced by the
// plan's duration in calendar months.
func (r *Repository) Create(ctx context.Context, memberID, planID int, startDate time.Time) (*Subscription, error) {
	p, err := r.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	endDate := addMonths(startDate, p.DurationMonths)

	query := `
		INSERT INTO subscriptions (member_id, plan_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, 'active')
		RETURNING id, member_id, plan_id, start_date, end_date, status
	`

	var s Subscription
	err = r.db.GetContext(ctx, &s, query, memberID, planID, startDate, endDate)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrMemberMissing
		}
		return nil, err
	}

	return &s, nil
}

// ActiveForMember returns the active subscription with the furthest end date,
// ignoring rows that lapsed but have not been reconciled yet.
func (r *Repository) ActiveForMember(ctx context.Context, memberID int) (*Subscription, error) {
	query := `
		SELECT id, member_id, plan_id, start_date, end_date, status
		FROM subscriptions
		WHERE member_id = $1 AND status = 'active' AND end_date >= CURRENT_DATE
		ORDER BY end_date DESC
		LIMIT 1
	`

	var s Subscription
	err := r.db.GetContext(ctx, &s, query, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoneActive
		}
		return nil, err
	}

	return &s, nil
}

func (r *Repository) ListByMember(ctx context.Context, memberID int) ([]SubscriptionDetail, error) {
	query := `
		SELECT s.id, s.member_id, s.plan_id, s.start_date, s.end_date, s.status,
		       p.name AS plan_name
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.member_id = $1
		ORDER BY s.start_date DESC
	`

	var subs []SubscriptionDetail
	err := r.db.SelectContext(ctx, &subs, query, memberID)
	if err != nil {
		return nil, err
	}

	return subs, nil
}

// Cancel is a one-way transition. Cancelled rows never come back, not even
// through reconciliation.
func (r *Repository) Cancel(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status = 'cancelled' WHERE id = $1 AND status <> 'cancelled'`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		exists, err := db.Exists(ctx, r.db,
			`SELECT EXISTS(SELECT 1 FROM subscriptions WHERE id = $1)`, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSubscriptionNotFound
		}
		return ErrAlreadyCancelled
	}

	return nil
}

// ReconcileStatuses flips lapsed active rows to expired in one statement and
// reports how many changed. Cancelled rows are skipped and expired rows are
// never resurrected, so running it twice is a no-op.
func (r *Repository) ReconcileStatuses(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = CASE WHEN end_date < CURRENT_DATE THEN 'expired' ELSE status END
		WHERE status = 'active' AND end_date < CURRENT_DATE
	`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// ExpiringWithin lists active subscriptions ending inside the window, joined
// with member contact data for reminder mail.
func (r *Repository) ExpiringWithin(ctx context.Context, days int) ([]ExpiringSubscription, error) {
	query := `
		SELECT s.id, s.member_id, s.end_date, p.name AS plan_name,
		       m.first_name, m.last_name, m.email,
		       (s.end_date - CURRENT_DATE) AS days_left
		FROM subscriptions s
		JOIN members m ON m.id = s.member_id
		JOIN plans p ON p.id = s.plan_id
		WHERE s.status = 'active'
		  AND s.end_date >= CURRENT_DATE
		  AND s.end_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
		ORDER BY s.end_date ASC
	`

	var subs []ExpiringSubscription
	err := r.db.SelectContext(ctx, &subs, query, days)
	if err != nil {
		return nil, err
	}

	return subs, nil
}
