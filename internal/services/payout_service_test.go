package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func newPayoutService(db *gorm.DB) *PayoutService {
	return NewPayoutService(db, testConfig(), NewWalletService(db))
}

func TestCreateRequestEnforcesBounds(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 1000).Error)

	_, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 5})
	assert.ErrorIs(t, err, ErrPayoutBounds)

	_, err = svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 600})
	assert.ErrorIs(t, err, ErrPayoutBounds)

	_, err = svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 100})
	assert.NoError(t, err)
}

func TestCreateRequestRequiresApprovedKYC(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)
	require.NoError(t, db.Model(creator).Updates(map[string]interface{}{
		"total_earnings": 100,
		"kyc_status":     models.KYCStatusPending,
	}).Error)

	_, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 50})
	assert.ErrorIs(t, err, ErrKYCNotApproved)
}

func TestCreateRequestHoldsFunds(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 100).Error)

	_, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 40})
	require.NoError(t, err)

	balance, err := svc.GetBalance(creator.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, balance.TotalEarnings, 1e-9)
	assert.InDelta(t, 40.0, balance.PendingPayouts, 1e-9)
	assert.InDelta(t, 60.0, balance.AvailableBalance, 1e-9)

	// A second request may only draw on what is left
	_, err = svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 80})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	_, err = svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 60})
	assert.NoError(t, err)
}

func TestCreateRequestWritesLedgerEntry(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 100).Error)

	request, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 50})
	require.NoError(t, err)

	var entry models.Transaction
	require.NoError(t, db.First(&entry, "payout_id = ?", request.ID).Error)
	assert.Equal(t, models.TransactionTypePayout, entry.Type)
	assert.Equal(t, models.TransactionStatusPending, entry.Status)
	assert.InDelta(t, 50.0, entry.Amount, 1e-9)
}

func TestCreateRequestWithMethod(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 100).Error)

	method, err := svc.AddMethod(creator.ID, &AddPayoutMethodRequest{
		MethodType: "UPI",
		Details:    "creator@upi",
		IsDefault:  true,
	})
	require.NoError(t, err)

	request, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{
		Amount:         50,
		PayoutMethodID: &method.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, request.PayoutMethodID)
	assert.Equal(t, method.ID, *request.PayoutMethodID)
	assert.Equal(t, "UPI: creator@upi", request.PaymentMethod)

	// Methods belonging to someone else are rejected
	other := seedAdmin(t, db)
	require.NoError(t, db.Model(other).Update("total_earnings", 100).Error)
	_, err = svc.CreateRequest(other.ID, &CreatePayoutRequest{
		Amount:         50,
		PayoutMethodID: &method.ID,
	})
	assert.ErrorIs(t, err, ErrPayoutMethodNotFound)
}

func TestCreateRequestFallsBackToDefaultMethod(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 100).Error)

	method, err := svc.AddMethod(creator.ID, &AddPayoutMethodRequest{
		MethodType: "UPI",
		Details:    "creator@upi",
		IsDefault:  true,
	})
	require.NoError(t, err)

	// No explicit method on the request picks up the saved default
	request, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 50})
	require.NoError(t, err)
	require.NotNil(t, request.PayoutMethodID)
	assert.Equal(t, method.ID, *request.PayoutMethodID)
	assert.Equal(t, "UPI: creator@upi", request.PaymentMethod)

	// Without any saved method the request still goes through
	other := seedAdmin(t, db)
	require.NoError(t, db.Model(other).Update("total_earnings", 100).Error)
	bare, err := svc.CreateRequest(other.ID, &CreatePayoutRequest{Amount: 50})
	require.NoError(t, err)
	assert.Nil(t, bare.PayoutMethodID)
	assert.Empty(t, bare.PaymentMethod)
}

func TestAddMethodClearsPreviousDefault(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)

	first, err := svc.AddMethod(creator.ID, &AddPayoutMethodRequest{
		MethodType: "UPI", Details: "a@upi", IsDefault: true,
	})
	require.NoError(t, err)

	_, err = svc.AddMethod(creator.ID, &AddPayoutMethodRequest{
		MethodType: "BANK_TRANSFER", Details: "HDFC 000111222", IsDefault: true,
	})
	require.NoError(t, err)

	var reloaded models.PayoutMethod
	require.NoError(t, db.First(&reloaded, "id = ?", first.ID).Error)
	assert.False(t, reloaded.IsDefault)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", creator.ID).Error)
	assert.Equal(t, "BANK_TRANSFER", user.DefaultPayoutMethod)
}

func TestPayoutStateMachine(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 100).Error)

	request, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 50})
	require.NoError(t, err)

	// pending cannot jump straight to paid
	_, err = svc.UpdateStatus(request.ID, models.PayoutStatusPaid, admin.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	approved, err := svc.UpdateStatus(request.ID, models.PayoutStatusApproved, admin.ID, "looks good")
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusApproved, approved.Status)
	assert.Equal(t, "looks good", approved.AdminNotes)
	require.NotNil(t, approved.ProcessedBy)
	assert.Equal(t, admin.ID, *approved.ProcessedBy)

	// approved cannot be rejected
	_, err = svc.UpdateStatus(request.ID, models.PayoutStatusRejected, admin.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	paid, err := svc.UpdateStatus(request.ID, models.PayoutStatusPaid, admin.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusPaid, paid.Status)

	// paid is terminal
	_, err = svc.UpdateStatus(request.ID, models.PayoutStatusApproved, admin.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectionReleasesHeldFunds(t *testing.T) {
	db := newTestDB(t)
	svc := newPayoutService(db)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 100).Error)

	request, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 70})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(request.ID, models.PayoutStatusRejected, admin.ID, "mismatch")
	require.NoError(t, err)

	balance, err := svc.GetBalance(creator.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, balance.AvailableBalance, 1e-9)

	var entry models.Transaction
	require.NoError(t, db.First(&entry, "payout_id = ?", request.ID).Error)
	assert.Equal(t, models.TransactionStatusFailed, entry.Status)
}

func TestPaidPayoutCreditsWallet(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	svc := NewPayoutService(db, testConfig(), wallets)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 100).Error)

	request, err := svc.CreateRequest(creator.ID, &CreatePayoutRequest{Amount: 50})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(request.ID, models.PayoutStatusApproved, admin.ID, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(request.ID, models.PayoutStatusPaid, admin.ID, "")
	require.NoError(t, err)

	wallet, err := wallets.Get(creator.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, wallet.Balance, 1e-9)

	history, err := wallets.History(creator.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.WalletEntryCredit, history[0].EntryType)

	var entry models.Transaction
	require.NoError(t, db.First(&entry, "payout_id = ?", request.ID).Error)
	assert.Equal(t, models.TransactionStatusPaid, entry.Status)

	// The paid amount no longer counts as available
	balance, err := svc.GetBalance(creator.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, balance.PaidOut, 1e-9)
	assert.InDelta(t, 50.0, balance.AvailableBalance, 1e-9)
}
