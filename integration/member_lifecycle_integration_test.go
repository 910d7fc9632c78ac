package reservation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gymlite/internal/member"
	"gymlite/internal/payment"
)

// Deactivating a member hides them from the roster but leaves their payment
// trail intact.
func TestSoftDeleteKeepsPaymentHistory_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	memberRepo := member.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	ctx := context.Background()

	memberID := createTestMember(t, db, "15.151.515-1", "sofia", "Saldo")
	planID := createTestPlan(t, db, "Monthly", 1)
	subID := createActiveSubscription(t, db, memberID, planID)

	receipt := "R-0001"
	paid, err := paymentRepo.Record(ctx, subID, 2450000, "webpay", &receipt)
	require.NoError(t, err)

	active, err := memberRepo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, memberRepo.SoftDelete(ctx, memberID))

	// Gone from the roster
	active, err = memberRepo.ListActive(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	// But the row itself survives, flagged inactive
	m, err := memberRepo.FindByID(ctx, memberID)
	require.NoError(t, err)
	require.False(t, m.Active)

	// And the payment trail still resolves through the joins
	history, err := paymentRepo.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, paid.ID, history[0].ID)
	require.Equal(t, "sofia", history[0].FirstName)
	require.Equal(t, int64(2450000), history[0].AmountCents)

	detail, err := paymentRepo.FindDetail(ctx, paid.ID)
	require.NoError(t, err)
	require.Equal(t, "Monthly", detail.PlanName)
	require.NotNil(t, detail.Receipt)
	require.Equal(t, "R-0001", *detail.Receipt)
}
