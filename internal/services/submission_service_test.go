package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func TestCreateSubmissionRequiresApprovedCreator(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, testConfig())

	member := &models.User{
		Username: "plainmember",
		Email:    "member@example.com",
		UserType: models.UserTypeMember,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, member.SetPassword("Sup3r$ecret"))
	require.NoError(t, db.Create(member).Error)

	_, err := svc.Create(member.ID, &CreateSubmissionRequest{
		Type:       models.SubmissionTypeContent,
		ContentURL: "https://example.com/post",
	})
	assert.ErrorIs(t, err, ErrNotACreator)

	// Applying alone is not enough; approval must have happened
	require.NoError(t, db.Model(member).Update("is_creator", true).Error)
	_, err = svc.Create(member.ID, &CreateSubmissionRequest{
		Type:       models.SubmissionTypeContent,
		ContentURL: "https://example.com/post",
	})
	assert.ErrorIs(t, err, ErrNotACreator)
}

func TestCreateSubmission(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, testConfig())
	creator := seedCreator(t, db)

	submission, err := svc.Create(creator.ID, &CreateSubmissionRequest{
		Type:       models.SubmissionTypeVideo,
		ContentURL: "https://example.com/video",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, submission.Status)
	assert.Empty(t, submission.AffiliateLink)
	assert.Zero(t, submission.Views)
}

func TestCreateSubmissionChecksAssetApproval(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, testConfig())
	creator := seedCreator(t, db)

	asset := &models.Asset{
		Title:          "Brand kit",
		Type:           "image",
		WorkflowStatus: models.WorkflowStatusDraft,
		CreatedBy:      creator.ID,
	}
	require.NoError(t, db.Create(asset).Error)

	_, err := svc.Create(creator.ID, &CreateSubmissionRequest{
		Type:       models.SubmissionTypeContent,
		ContentURL: "https://example.com/post",
		AssetID:    &asset.ID,
	})
	require.Error(t, err)

	require.NoError(t, db.Model(asset).Update("workflow_status", models.WorkflowStatusApproved).Error)
	submission, err := svc.Create(creator.ID, &CreateSubmissionRequest{
		Type:       models.SubmissionTypeContent,
		ContentURL: "https://example.com/post",
		AssetID:    &asset.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, submission.AssetID)
	assert.Equal(t, asset.ID, *submission.AssetID)
}

func TestApproveProductSetsAffiliateLink(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewSubmissionService(db, cfg)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	product := seedSubmission(t, db, creator, models.SubmissionTypeProduct, models.SubmissionStatusPending)

	approved, err := svc.Approve(product.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, approved.Status)
	assert.Equal(t, cfg.Frontend.BaseURL+"/aff/"+product.ID.String(), approved.AffiliateLink)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, admin.ID, *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)
}

func TestApproveNonProductSkipsAffiliateLink(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, testConfig())
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	content := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusPending)

	approved, err := svc.Approve(content.ID, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, approved.AffiliateLink)
}

func TestReviewOnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, testConfig())
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	submission := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusPending)

	_, err := svc.Approve(submission.ID, admin.ID)
	require.NoError(t, err)

	_, err = svc.Approve(submission.ID, admin.ID)
	assert.ErrorIs(t, err, ErrSubmissionReviewed)

	_, err = svc.Reject(submission.ID, admin.ID, "changed my mind")
	assert.ErrorIs(t, err, ErrSubmissionReviewed)
}

func TestRejectRequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, testConfig())
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	submission := seedSubmission(t, db, creator, models.SubmissionTypeContent, models.SubmissionStatusPending)

	_, err := svc.Reject(submission.ID, admin.ID, "")
	assert.ErrorIs(t, err, ErrRejectionNeedsReason)

	rejected, err := svc.Reject(submission.ID, admin.ID, "broken link")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusRejected, rejected.Status)
}
