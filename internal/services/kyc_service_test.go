package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func TestKYCReviewApprove(t *testing.T) {
	db := newTestDB(t)
	svc := NewKYCService(db, testConfig(), nil)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)
	require.NoError(t, db.Model(creator).Updates(map[string]interface{}{
		"kyc_status":           models.KYCStatusRejected,
		"kyc_rejection_reason": "blurry document",
	}).Error)

	user, err := svc.Review(creator.ID, admin.ID, models.KYCStatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, models.KYCStatusApproved, user.KYCStatus)
	assert.Empty(t, user.KYCRejectionReason)
	assert.NotNil(t, user.KYCReviewedAt)
}

func TestKYCReviewRejectNeedsReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewKYCService(db, testConfig(), nil)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	_, err := svc.Review(creator.ID, admin.ID, models.KYCStatusRejected, "")
	assert.ErrorIs(t, err, ErrKYCReasonMissing)

	user, err := svc.Review(creator.ID, admin.ID, models.KYCStatusRejected, "document expired")
	require.NoError(t, err)
	assert.Equal(t, models.KYCStatusRejected, user.KYCStatus)
	assert.Equal(t, "document expired", user.KYCRejectionReason)
}

func TestKYCReviewRejectsInvalidTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewKYCService(db, testConfig(), nil)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	_, err := svc.Review(creator.ID, admin.ID, models.KYCStatusPending, "")
	assert.ErrorIs(t, err, ErrInvalidKYCStatus)
}

func TestKYCStatusListsDocuments(t *testing.T) {
	db := newTestDB(t)
	svc := NewKYCService(db, testConfig(), nil)
	creator := seedCreator(t, db)

	doc := &models.KYCDocument{
		UserID:       creator.ID,
		DocumentType: "pan_card",
		StorageKey:   "kyc/abc.pdf",
		FileName:     "pan.pdf",
		MimeType:     "application/pdf",
	}
	require.NoError(t, db.Create(doc).Error)

	status, err := svc.GetStatus(creator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KYCStatusApproved, status.Status)
	require.Len(t, status.Documents, 1)
	assert.Equal(t, "pan_card", status.Documents[0].DocumentType)
}
