package reservation

import (
	"context"
	"database/sql"
	"errors"

	"gymlite/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSessionNotFound                   = errors.New("class session not found")
	ErrNoActiveSubscription              = errors.New("member has no active subscription")
	ErrCapacityExceeded                  = errors.New("class session is full")
	ErrDuplicateReservation              = errors.New("member already holds a reservation for this session")
	ErrReservationNotFound               = errors.New("reservation not found")
	ErrReservationNotFoundOrNotConfirmed = errors.New("reservation not found or not confirmed")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Reserve admits a member to a session inside one transaction. The session
// row is locked FOR UPDATE, so concurrent requests for the same session
// queue behind each other and the capacity count each of them sees is final.
// The three rejections (no subscription, full, duplicate) stay distinct.
func (r *repository) Reserve(ctx context.Context, memberID, sessionID int) (*Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var capacity int
	err = tx.QueryRowxContext(ctx,
		`SELECT capacity
		 FROM class_sessions
		 WHERE id = $1
		 FOR UPDATE`,
		sessionID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var eligible bool
	err = tx.QueryRowxContext(ctx,
		`SELECT EXISTS(
			SELECT 1
			FROM subscriptions
			WHERE member_id = $1 AND status = 'active' AND end_date >= CURRENT_DATE
		 )`,
		memberID,
	).Scan(&eligible)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNoActiveSubscription
	}

	var confirmed int
	err = tx.QueryRowxContext(ctx,
		`SELECT COUNT(*)
		 FROM reservations
		 WHERE class_session_id = $1 AND status = 'confirmed'`,
		sessionID,
	).Scan(&confirmed)
	if err != nil {
		return nil, err
	}
	if confirmed >= capacity {
		return nil, ErrCapacityExceeded
	}

	var res Reservation
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO reservations (member_id, class_session_id, status)
		 VALUES ($1, $2, 'confirmed')
		 RETURNING id, member_id, class_session_id, created_at, status, attended`,
		memberID, sessionID,
	).StructScan(&res)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateReservation
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *repository) FindDetail(ctx context.Context, id int) (*ReservationDetail, error) {
	query := `
		SELECT r.id, r.member_id, r.class_session_id, r.created_at, r.status, r.attended,
		       s.name AS session_name, s.starts_at,
		       m.first_name, m.last_name, m.email
		FROM reservations r
		JOIN class_sessions s ON s.id = r.class_session_id
		JOIN members m ON m.id = r.member_id
		WHERE r.id = $1
	`

	var detail ReservationDetail
	err := r.db.GetContext(ctx, &detail, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	return &detail, nil
}

func (r *repository) Cancel(ctx context.Context, id int) error {
	query := `
		UPDATE reservations
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'confirmed'
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
		return ErrReservationNotFoundOrNotConfirmed
	}

	return nil
}

func (r *repository) MarkAttendance(ctx context.Context, id int, attended bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET attended = $1 WHERE id = $2`, attended, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]ReservationDetail, error) {
	query := `
		SELECT r.id, r.member_id, r.class_session_id, r.created_at, r.status, r.attended,
		       s.name AS session_name, s.starts_at,
		       m.first_name, m.last_name, m.email
		FROM reservations r
		JOIN class_sessions s ON s.id = r.class_session_id
		JOIN members m ON m.id = r.member_id
		WHERE r.member_id = $1
		ORDER BY s.starts_at DESC
	`

	var reservations []ReservationDetail
	err := r.db.SelectContext(ctx, &reservations, query, memberID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) ListBySession(ctx context.Context, sessionID int) ([]ReservationDetail, error) {
	query := `
		SELECT r.id, r.member_id, r.class_session_id, r.created_at, r.status, r.attended,
		       s.name AS session_name, s.starts_at,
		       m.first_name, m.last_name, m.email
		FROM reservations r
		JOIN class_sessions s ON s.id = r.class_session_id
		JOIN members m ON m.id = r.member_id
		WHERE r.class_session_id = $1
		ORDER BY r.created_at ASC
	`

	var reservations []ReservationDetail
	err := r.db.SelectContext(ctx, &reservations, query, sessionID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}
