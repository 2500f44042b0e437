package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func TestRegisterCreatesMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&RegisterRequest{
		Username: "newcomer",
		Email:    "newcomer@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)

	// Everyone starts as a plain member regardless of what the client sends
	assert.Equal(t, models.UserTypeMember, resp.User.UserType)
	assert.False(t, resp.User.IsCreator)
	assert.Equal(t, models.KYCStatusPending, resp.User.KYCStatus)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// Password is stored hashed
	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", resp.User.ID).Error)
	assert.NotEqual(t, "Sup3r$ecret", stored.PasswordHash)
	assert.NoError(t, stored.CheckPassword("Sup3r$ecret"))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Username: "someone_else",
		Email:    "taken@example.com",
		Password: "Sup3r$ecret",
	})
	assert.Error(t, err)

	_, err = svc.Register(&RegisterRequest{
		Username: "taken",
		Email:    "else@example.com",
		Password: "Sup3r$ecret",
	})
	assert.Error(t, err)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "weakling",
		Email:    "weak@example.com",
		Password: "password",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	creator := seedCreator(t, db)

	resp, err := svc.Login(&LoginRequest{Email: creator.Email, Password: "Sup3r$ecret"})
	require.NoError(t, err)
	assert.Equal(t, creator.ID, resp.User.ID)
	assert.NotNil(t, resp.User.LastLoginAt)

	_, err = svc.Login(&LoginRequest{Email: creator.Email, Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "Sup3r$ecret"})
	assert.Error(t, err)
}

func TestLoginBlockedForSuspendedAccounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	creator := seedCreator(t, db)
	require.NoError(t, db.Model(creator).Update("status", models.UserStatusSuspended).Error)

	_, err := svc.Login(&LoginRequest{Email: creator.Email, Password: "Sup3r$ecret"})
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	creator := seedCreator(t, db)

	login, err := svc.Login(&LoginRequest{Email: creator.Email, Password: "Sup3r$ecret"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, creator.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}
