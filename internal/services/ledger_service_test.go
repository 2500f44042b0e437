package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func TestLedgerListAndSummary(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	tracking := NewTrackingService(db, testConfig())
	payouts := newPayoutService(db)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	// Accrue some earnings through the recorder
	product := seedSubmission(t, db, creator, models.SubmissionTypeProduct, models.SubmissionStatusApproved)
	for i := 0; i < 3; i++ {
		_, err := tracking.RecordView(product.ID, true, "")
		require.NoError(t, err)
	}

	// And a paid payout
	require.NoError(t, db.Model(creator).Update("total_earnings", 100).Error)
	request, err := payouts.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 20})
	require.NoError(t, err)
	_, err = payouts.UpdateStatus(request.ID, models.PayoutStatusApproved, admin.ID, "")
	require.NoError(t, err)
	_, err = payouts.UpdateStatus(request.ID, models.PayoutStatusPaid, admin.ID, "")
	require.NoError(t, err)

	entries, total, err := ledger.List(LedgerFilter{UserID: &creator.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, entries, 4)

	// Type filter narrows to the affiliate rows
	affiliateType := models.TransactionTypeAffiliate
	affiliates, affiliateTotal, err := ledger.List(LedgerFilter{UserID: &creator.ID, Type: &affiliateType})
	require.NoError(t, err)
	assert.Equal(t, int64(3), affiliateTotal)
	for _, entry := range affiliates {
		assert.Equal(t, models.TransactionTypeAffiliate, entry.Type)
	}

	summary, err := ledger.Summarize(creator.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.50, summary.AffiliateTotal, 1e-9)
	assert.InDelta(t, 20.0, summary.PayoutTotal, 1e-9)
	assert.Equal(t, int64(4), summary.EntryCount)
}
