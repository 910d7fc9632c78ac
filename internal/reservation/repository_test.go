package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

var (
	lockQuery = regexp.QuoteMeta(`SELECT capacity
		 FROM class_sessions
		 WHERE id = $1
		 FOR UPDATE`)
	eligibilityQuery = regexp.QuoteMeta(`SELECT EXISTS(
			SELECT 1
			FROM subscriptions
			WHERE member_id = $1 AND status = 'active' AND end_date >= CURRENT_DATE
		 )`)
	countQuery = regexp.QuoteMeta(`SELECT COUNT(*)
		 FROM reservations
		 WHERE class_session_id = $1 AND status = 'confirmed'`)
	insertQuery = regexp.QuoteMeta(`INSERT INTO reservations (member_id, class_session_id, status)
		 VALUES ($1, $2, 'confirmed')
		 RETURNING id, member_id, class_session_id, created_at, status, attended`)
)

func reservationColumns() []string {
	return []string{"id", "member_id", "class_session_id", "created_at", "status", "attended"}
}

func expectLock(mock sqlmock.Sqlmock, sessionID, capacity int) {
	mock.ExpectQuery(lockQuery).WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(capacity))
}

func expectEligibility(mock sqlmock.Sqlmock, memberID int, eligible bool) {
	mock.ExpectQuery(eligibilityQuery).WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(eligible))
}

func expectCount(mock sqlmock.Sqlmock, sessionID, confirmed int) {
	mock.ExpectQuery(countQuery).WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(confirmed))
}

func TestReserve(t *testing.T) {
	repo, mock := newMockRepo(t)

	t.Run("admits when eligible and seats remain", func(t *testing.T) {
		mock.ExpectBegin()
		expectLock(mock, 3, 10)
		expectEligibility(mock, 1, true)
		expectCount(mock, 3, 4)
		mock.ExpectQuery(insertQuery).WithArgs(1, 3).
			WillReturnRows(sqlmock.NewRows(reservationColumns()).
				AddRow(20, 1, 3, time.Now(), "confirmed", false))
		mock.ExpectCommit()

		res, err := repo.Reserve(context.Background(), 1, 3)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", res.Status)
		assert.False(t, res.Attended)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown session rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}))
		mock.ExpectRollback()

		_, err := repo.Reserve(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no active subscription rolls back before counting", func(t *testing.T) {
		mock.ExpectBegin()
		expectLock(mock, 3, 10)
		expectEligibility(mock, 2, false)
		mock.ExpectRollback()

		_, err := repo.Reserve(context.Background(), 2, 3)
		assert.ErrorIs(t, err, ErrNoActiveSubscription)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("full session rejected without insert", func(t *testing.T) {
		mock.ExpectBegin()
		expectLock(mock, 3, 10)
		expectEligibility(mock, 1, true)
		expectCount(mock, 3, 10)
		mock.ExpectRollback()

		_, err := repo.Reserve(context.Background(), 1, 3)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("last seat admits", func(t *testing.T) {
		mock.ExpectBegin()
		expectLock(mock, 3, 10)
		expectEligibility(mock, 1, true)
		expectCount(mock, 3, 9)
		mock.ExpectQuery(insertQuery).WithArgs(1, 3).
			WillReturnRows(sqlmock.NewRows(reservationColumns()).
				AddRow(21, 1, 3, time.Now(), "confirmed", false))
		mock.ExpectCommit()

		_, err := repo.Reserve(context.Background(), 1, 3)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair maps the unique violation", func(t *testing.T) {
		mock.ExpectBegin()
		expectLock(mock, 3, 10)
		expectEligibility(mock, 1, true)
		expectCount(mock, 3, 4)
		mock.ExpectQuery(insertQuery).WithArgs(1, 3).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "reservations_member_id_class_session_id_key"})
		mock.ExpectRollback()

		_, err := repo.Reserve(context.Background(), 1, 3)
		assert.ErrorIs(t, err, ErrDuplicateReservation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancelReservation(t *testing.T) {
	repo, mock := newMockRepo(t)

	query := regexp.QuoteMeta(`
		UPDATE reservations
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'confirmed'
	`)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(20).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Cancel(context.Background(), 20))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(20).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Cancel(context.Background(), 20)
		assert.ErrorIs(t, err, ErrReservationNotFoundOrNotConfirmed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkAttendance(t *testing.T) {
	repo, mock := newMockRepo(t)

	query := regexp.QuoteMeta(`UPDATE reservations SET attended = $1 WHERE id = $2`)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(true, 20).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkAttendance(context.Background(), 20, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(false, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkAttendance(context.Background(), 99, false)
		assert.ErrorIs(t, err, ErrReservationNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListByMember(t *testing.T) {
	repo, mock := newMockRepo(t)

	startsAt := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	cols := append(reservationColumns(), "session_name", "starts_at", "first_name", "last_name", "email")

	mock.ExpectQuery(`SELECT r\.id, .+ FROM reservations r`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(20, 1, 3, time.Now(), "confirmed", false, "Morning Spinning", startsAt, "Pedro", "Sanchez", nil))

	reservations, err := repo.ListByMember(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "Morning Spinning", reservations[0].SessionName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
