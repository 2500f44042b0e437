package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

// SQLite has no gen_random_uuid(), so the schema must migrate without a
// database-side ID default and the create hook has to assign the UUID.
func TestNewTestDBMigratesAllModels(t *testing.T) {
	db := NewTestDB(t)

	for _, model := range []interface{}{
		&models.User{}, &models.KYCDocument{}, &models.Submission{},
		&models.Transaction{}, &models.PayoutMethod{}, &models.PayoutRequest{},
		&models.Asset{}, &models.Wallet{}, &models.WalletTransaction{},
		&models.SupportTicket{}, &models.AdminSettings{}, &models.AuditLog{},
	} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestCreateAssignsUUID(t *testing.T) {
	db := NewTestDB(t)

	user := &models.User{
		Username: "fixture_check",
		Email:    "fixture@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	var loaded models.User
	require.NoError(t, db.First(&loaded, "id = ?", user.ID).Error)
	assert.Equal(t, user.Username, loaded.Username)
}
