package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func TestCreatorApplicationFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewCreatorService(db)
	admin := seedAdmin(t, db)

	member := &models.User{
		Username: "aspiring",
		Email:    "aspiring@example.com",
		UserType: models.UserTypeMember,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, member.SetPassword("Sup3r$ecret"))
	require.NoError(t, db.Create(member).Error)

	applied, err := svc.Apply(member.ID)
	require.NoError(t, err)
	assert.True(t, applied.IsCreator)
	assert.False(t, applied.IsApproved)

	approved, err := svc.Approve(member.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsCreator)
	assert.True(t, approved.IsApproved)

	// Re-applying after approval is a conflict
	_, err = svc.Apply(member.ID)
	assert.ErrorIs(t, err, ErrAlreadyCreator)
}

func TestCreatorApplyUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewCreatorService(db)

	_, err := svc.Apply(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetPublicProfileOmitsSensitiveColumns(t *testing.T) {
	db := newTestDB(t)
	svc := NewCreatorService(db)
	creator := seedCreator(t, db)
	require.NoError(t, db.Model(creator).Update("total_earnings", 42).Error)

	profile, err := svc.GetPublicProfile(creator.ID)
	require.NoError(t, err)
	assert.Equal(t, creator.Username, profile.Username)
	assert.Empty(t, profile.PasswordHash)
	assert.Empty(t, profile.Email)
}
