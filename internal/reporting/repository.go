package reporting

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const lowSeatThreshold = 3

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Summary aggregates the dashboard headline numbers in one round trip.
// Empty tables yield zeroes, not errors.
func (r *Repository) Summary(ctx context.Context, expiryWindowDays int) (*Summary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM members WHERE active) AS active_members,
			(SELECT COUNT(*) FROM class_sessions WHERE starts_at::date = CURRENT_DATE) AS classes_today,
			(SELECT COALESCE(SUM(amount_cents), 0) FROM payments
			 WHERE status = 'completed'
			   AND date_trunc('month', paid_at) = date_trunc('month', NOW())) AS month_revenue_cents,
			(SELECT COUNT(*) FROM subscriptions
			 WHERE status = 'active'
			   AND end_date >= CURRENT_DATE
			   AND end_date <= CURRENT_DATE + $1 * INTERVAL '1 day') AS expiring_soon
	`

	var s Summary
	err := r.db.GetContext(ctx, &s, query, expiryWindowDays)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// LowSeatSessions lists upcoming sessions with three or fewer seats left.
func (r *Repository) LowSeatSessions(ctx context.Context) ([]LowSeatSession, error) {
	query := `
		SELECT s.id, s.name, s.starts_at, s.capacity,
		       COUNT(r.id) FILTER (WHERE r.status = 'confirmed') AS reserved,
		       s.capacity - COUNT(r.id) FILTER (WHERE r.status = 'confirmed') AS remaining
		FROM class_sessions s
		LEFT JOIN reservations r ON r.class_session_id = s.id
		WHERE s.starts_at > NOW()
		GROUP BY s.id
		HAVING s.capacity - COUNT(r.id) FILTER (WHERE r.status = 'confirmed') <= $1
		ORDER BY s.starts_at ASC
	`

	var sessions []LowSeatSession
	err := r.db.SelectContext(ctx, &sessions, query, lowSeatThreshold)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// SessionsByType counts sessions and confirmed reservations per class type.
func (r *Repository) SessionsByType(ctx context.Context) ([]TypeStat, error) {
	query := `
		SELECT ct.name AS type_name,
		       COUNT(DISTINCT s.id) AS sessions,
		       COUNT(r.id) FILTER (WHERE r.status = 'confirmed') AS reservations
		FROM class_types ct
		LEFT JOIN class_sessions s ON s.class_type_id = ct.id
		LEFT JOIN reservations r ON r.class_session_id = s.id
		GROUP BY ct.name
		ORDER BY reservations DESC, ct.name
	`

	var stats []TypeStat
	err := r.db.SelectContext(ctx, &stats, query)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// PaymentMethodStats breaks completed payments down by method.
func (r *Repository) PaymentMethodStats(ctx context.Context) ([]MethodStat, error) {
	query := `
		SELECT method,
		       COUNT(*) AS payments,
		       COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM payments
		WHERE status = 'completed'
		GROUP BY method
		ORDER BY total_cents DESC
	`

	var stats []MethodStat
	err := r.db.SelectContext(ctx, &stats, query)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ReservationsLastWeek returns a dense 7-day series ending today. Days with
// no confirmed reservations come back zero-filled from generate_series.
func (r *Repository) ReservationsLastWeek(ctx context.Context) ([]DayCount, error) {
	query := `
		SELECT d::date AS day,
		       COUNT(r.id) AS reservations
		FROM generate_series(CURRENT_DATE - INTERVAL '6 days', CURRENT_DATE, INTERVAL '1 day') AS d
		LEFT JOIN reservations r
		       ON r.created_at::date = d::date AND r.status = 'confirmed'
		GROUP BY d
		ORDER BY d ASC
	`

	var series []DayCount
	err := r.db.SelectContext(ctx, &series, query)
	if err != nil {
		return nil, err
	}

	return series, nil
}
