package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func TestAddAssetFromURL(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, nil)
	admin := seedAdmin(t, db)

	asset, err := svc.Add(admin.ID, &AddAssetRequest{
		Title:   "Logo pack",
		Type:    "image",
		FileURL: "https://cdn.example.com/logo-pack.zip",
		Tags:    []string{"branding", "logos"},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusDraft, asset.WorkflowStatus)
	assert.Equal(t, admin.ID, asset.CreatedBy)
	assert.Len(t, asset.Tags, 2)

	// Neither a file nor a URL is an error
	_, err = svc.Add(admin.ID, &AddAssetRequest{
		Title: "Empty asset",
		Type:  "image",
	}, nil, nil)
	assert.Error(t, err)
}

func TestAssetWorkflowTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, nil)
	admin := seedAdmin(t, db)

	asset, err := svc.Add(admin.ID, &AddAssetRequest{
		Title:   "Stock photos",
		Type:    "image",
		FileURL: "https://cdn.example.com/photos.zip",
	}, nil, nil)
	require.NoError(t, err)

	// Draft cannot be approved directly
	_, err = svc.UpdateWorkflowStatus(asset.ID, admin.ID, models.WorkflowStatusApproved)
	assert.ErrorIs(t, err, ErrInvalidWorkflowStatus)

	inReview, err := svc.UpdateWorkflowStatus(asset.ID, admin.ID, models.WorkflowStatusInReview)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusInReview, inReview.WorkflowStatus)

	rejected, err := svc.UpdateWorkflowStatus(asset.ID, admin.ID, models.WorkflowStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusRejected, rejected.WorkflowStatus)

	// Rejected assets may be resubmitted for review and approved
	_, err = svc.UpdateWorkflowStatus(asset.ID, admin.ID, models.WorkflowStatusInReview)
	require.NoError(t, err)
	approved, err := svc.UpdateWorkflowStatus(asset.ID, admin.ID, models.WorkflowStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusApproved, approved.WorkflowStatus)
	assert.NotNil(t, approved.ReviewedAt)

	// Approved is terminal
	_, err = svc.UpdateWorkflowStatus(asset.ID, admin.ID, models.WorkflowStatusDraft)
	assert.ErrorIs(t, err, ErrInvalidWorkflowStatus)
}

func TestAssetListByWorkflowStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, nil)
	admin := seedAdmin(t, db)

	draft, err := svc.Add(admin.ID, &AddAssetRequest{
		Title: "Draft asset", Type: "doc", FileURL: "https://cdn.example.com/a.pdf",
	}, nil, nil)
	require.NoError(t, err)
	_, err = svc.Add(admin.ID, &AddAssetRequest{
		Title: "Another draft", Type: "doc", FileURL: "https://cdn.example.com/b.pdf",
	}, nil, nil)
	require.NoError(t, err)

	_, err = svc.UpdateWorkflowStatus(draft.ID, admin.ID, models.WorkflowStatusInReview)
	require.NoError(t, err)

	draftStatus := models.WorkflowStatusDraft
	assets, total, err := svc.List(AssetFilter{WorkflowStatus: &draftStatus})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, assets, 1)
	assert.Equal(t, "Another draft", assets[0].Title)
}
