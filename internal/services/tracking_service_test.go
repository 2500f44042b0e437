package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func TestRecordViewAccruesEarnings(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)

	submission := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusApproved)
	require.NoError(t, db.Model(submission).Updates(map[string]interface{}{
		"views":    2500,
		"earnings": 2.5,
	}).Error)

	result, err := svc.RecordView(submission.ID, false, "")
	require.NoError(t, err)

	assert.True(t, result.Recorded)
	assert.Equal(t, int64(2501), result.Views)
	assert.InDelta(t, 2.501, result.Earnings, 1e-9)
	assert.InDelta(t, 0.001, result.Delta, 1e-9)

	// Creator totals follow the delta
	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", creator.ID).Error)
	assert.Equal(t, int64(1), updated.TotalViews)
	assert.InDelta(t, 0.001, updated.TotalEarnings, 1e-9)

	// Ledger entry written for the accrued amount
	var entry models.Transaction
	require.NoError(t, db.First(&entry, "user_id = ?", creator.ID).Error)
	assert.Equal(t, models.TransactionTypeEarning, entry.Type)
	assert.Equal(t, models.TransactionStatusApproved, entry.Status)
	assert.InDelta(t, 0.001, entry.Amount, 1e-9)
	require.NotNil(t, entry.SubmissionID)
	assert.Equal(t, submission.ID, *entry.SubmissionID)
}

func TestRecordViewPendingSubmissionIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)
	submission := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusPending)

	result, err := svc.RecordView(submission.ID, false, "")
	require.NoError(t, err)

	assert.False(t, result.Recorded)
	assert.Equal(t, int64(0), result.Views)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRecordViewUnknownSubmission(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())

	_, err := svc.RecordView(uuid.New(), false, "")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestAffiliateClickOnProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)
	product := seedSubmission(t, db, creator, models.SubmissionTypeProduct, models.SubmissionStatusApproved)

	result, err := svc.RecordView(product.ID, true, "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.AffiliateClicks)
	assert.Equal(t, int64(0), result.Views)
	assert.InDelta(t, 0.50, result.Earnings, 1e-9)
	assert.InDelta(t, 0.50, result.Delta, 1e-9)

	var entry models.Transaction
	require.NoError(t, db.First(&entry, "user_id = ?", creator.ID).Error)
	assert.Equal(t, models.TransactionTypeAffiliate, entry.Type)
	assert.Equal(t, "affiliate_click", entry.Source)

	// Affiliate hits leave the view counters alone
	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", creator.ID).Error)
	assert.Equal(t, int64(0), updated.TotalViews)
	assert.InDelta(t, 0.50, updated.TotalEarnings, 1e-9)
}

func TestAffiliateClickRejectedForNonProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)
	submission := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusApproved)

	_, err := svc.RecordView(submission.ID, true, "")
	assert.ErrorIs(t, err, ErrNotAProduct)
}

func TestProductEarningsStayAdditive(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)
	product := seedSubmission(t, db, creator, models.SubmissionTypeProduct, models.SubmissionStatusApproved)

	for i := 0; i < 10; i++ {
		_, err := svc.RecordView(product.ID, true, "")
		require.NoError(t, err)
	}

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", creator.ID).Error)
	assert.InDelta(t, 5.0, user.TotalEarnings, 1e-9)

	// A regular view adds its own component without touching the accrued
	// affiliate earnings
	result, err := svc.RecordView(product.ID, false, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Views)
	assert.InDelta(t, 5.001, result.Earnings, 1e-9)
	assert.InDelta(t, 0.001, result.Delta, 1e-9)

	require.NoError(t, db.First(&user, "id = ?", creator.ID).Error)
	assert.InDelta(t, 5.001, user.TotalEarnings, 1e-9)

	// Ledger never sees a negative amount
	var entries []models.Transaction
	require.NoError(t, db.Where("user_id = ?", creator.ID).Find(&entries).Error)
	require.Len(t, entries, 11)
	for _, entry := range entries {
		assert.Greater(t, entry.Amount, 0.0)
	}
}

func TestRecordViewSuppressesDuplicateClients(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)
	submission := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusApproved)

	first, err := svc.RecordView(submission.ID, false, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, first.Recorded)

	second, err := svc.RecordView(submission.ID, false, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, second.Recorded)
	assert.True(t, second.Duplicate)

	// A different client still counts
	third, err := svc.RecordView(submission.ID, false, "203.0.113.8")
	require.NoError(t, err)
	assert.True(t, third.Recorded)
	assert.Equal(t, int64(2), third.Views)
}

func TestDedupEntriesExpire(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)
	submission := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusApproved)

	first, err := svc.RecordView(submission.ID, false, "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, first.Recorded)

	_, err = svc.RecordView(submission.ID, false, "203.0.113.10")
	require.NoError(t, err)

	// Shrink the window and age the sweep clock so both stale entries are
	// collected on the next hit
	svc.mtx.Lock()
	svc.dedupWindow = time.Nanosecond
	svc.lastSweep = time.Now().Add(-2 * time.Minute)
	svc.mtx.Unlock()

	second, err := svc.RecordView(submission.ID, false, "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, second.Recorded)
	assert.Equal(t, int64(3), second.Views)

	// Only the re-added entry survives the sweep
	svc.mtx.Lock()
	assert.Len(t, svc.seen, 1)
	svc.mtx.Unlock()
}

func TestRecordViewConcurrentHitsAreAdditive(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)
	submission := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusApproved)

	const hits = 20
	var wg sync.WaitGroup
	wg.Add(hits)
	for i := 0; i < hits; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RecordView(submission.ID, false, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var updated models.Submission
	require.NoError(t, db.First(&updated, "id = ?", submission.ID).Error)
	assert.Equal(t, int64(hits), updated.Views)
	assert.InDelta(t, float64(hits)/1000.0, updated.Earnings, 1e-9)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", creator.ID).Error)
	assert.Equal(t, int64(hits), user.TotalViews)
	assert.InDelta(t, float64(hits)/1000.0, user.TotalEarnings, 1e-9)
}

func TestRecordConversion(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)
	product := seedSubmission(t, db, creator, models.SubmissionTypeProduct, models.SubmissionStatusApproved)

	conversions, err := svc.RecordConversion(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), conversions)

	// Conversions are bookkeeping only, no earnings accrue
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", creator.ID).Error)
	assert.Zero(t, user.TotalEarnings)

	content := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusApproved)
	_, err = svc.RecordConversion(content.ID)
	assert.ErrorIs(t, err, ErrNotAProduct)
}

func TestRecalculateTotalViews(t *testing.T) {
	db := newTestDB(t)
	svc := NewTrackingService(db, testConfig())
	creator := seedCreator(t, db)

	first := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusApproved)
	second := seedSubmission(t, db, creator, models.SubmissionTypeVideo, models.SubmissionStatusApproved)
	require.NoError(t, db.Model(first).Update("views", 10).Error)
	require.NoError(t, db.Model(second).Update("views", 5).Error)

	total, err := svc.RecalculateTotalViews(creator.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", creator.ID).Error)
	assert.Equal(t, int64(15), user.TotalViews)
}
