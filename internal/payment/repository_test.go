package payment

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

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func paymentColumns() []string {
	return []string{"id", "subscription_id", "paid_at", "amount_cents", "method", "status", "receipt"}
}

func TestNormalizeMethod(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"  Webpay ", "webpay", true},
		{"CASH", "cash", true},
		{"transfer", "transfer", true},
		{"bitcoin", "bitcoin", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeMethod(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.valid, ok, tc.in)
	}
}

func TestRecordPayment(t *testing.T) {
	repo, mock := newMockRepo(t)

	query := regexp.QuoteMeta(`
		INSERT INTO payments (subscription_id, amount_cents, method, status, receipt)
		VALUES ($1, $2, $3, 'completed', $4)
		RETURNING id, subscription_id, paid_at, amount_cents, method, status, receipt
	`)

	t.Run("normalizes method before insert", func(t *testing.T) {
		paidAt := time.Now()
		mock.ExpectQuery(query).
			WithArgs(5, int64(2450000), "webpay", nil).
			WillReturnRows(sqlmock.NewRows(paymentColumns()).
				AddRow(1, 5, paidAt, int64(2450000), "webpay", "completed", nil))

		p, err := repo.Record(context.Background(), 5, 2450000, "  Webpay ", nil)
		require.NoError(t, err)
		assert.Equal(t, "webpay", p.Method)
		assert.Equal(t, "completed", p.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown method rejected before any write", func(t *testing.T) {
		_, err := repo.Record(context.Background(), 5, 2450000, "bitcoin", nil)
		assert.ErrorIs(t, err, ErrInvalidMethod)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-positive amount rejected before any write", func(t *testing.T) {
		_, err := repo.Record(context.Background(), 5, 0, "cash", nil)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing subscription", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(99, int64(1000), "cash", nil).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "payments_subscription_id_fkey"})

		_, err := repo.Record(context.Background(), 99, 1000, "cash", nil)
		assert.ErrorIs(t, err, ErrSubscriptionMissing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentHistory(t *testing.T) {
	repo, mock := newMockRepo(t)

	cols := append(paymentColumns(), "first_name", "last_name", "email", "plan_name")
	paidAt := time.Now()

	t.Run("joined rows newest first", func(t *testing.T) {
		mock.ExpectQuery(`SELECT p\.id, .+ FROM payments p`).
			WithArgs(50).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(2, 5, paidAt, int64(2450000), "webpay", "completed", nil, "Pedro", "Sanchez", nil, "Monthly").
				AddRow(1, 4, paidAt.Add(-time.Hour), int64(6600000), "cash", "completed", nil, "Ana", "Lopez", nil, "Quarterly"))

		payments, err := repo.History(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, "Monthly", payments[0].PlanName)
		assert.Equal(t, "Sanchez", payments[0].LastName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
