package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/config"
	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/testutil"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Payment: config.PaymentConfig{
			MinimumPayout: 10,
			MaximumPayout: 500,
			Currency:      "inr",
		},
		Earnings: config.EarningsConfig{
			ViewsPerRupee:    1000,
			AffiliateHitRate: 0.50,
		},
		Frontend: config.FrontendConfig{
			BaseURL: "https://creatorly.test",
		},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	return testutil.NewTestDB(t)
}

func seedCreator(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Username:   "creator_" + t.Name()[len(t.Name())-4:],
		Email:      t.Name() + "@example.com",
		UserType:   models.UserTypeMember,
		Status:     models.UserStatusActive,
		IsCreator:  true,
		IsApproved: true,
		KYCStatus:  models.KYCStatusApproved,
	}
	require.NoError(t, user.SetPassword("Sup3r$ecret"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	admin := &models.User{
		Username:  "admin_" + t.Name()[len(t.Name())-4:],
		Email:     "admin." + t.Name() + "@example.com",
		UserType:  models.UserTypeAdmin,
		Status:    models.UserStatusActive,
		KYCStatus: models.KYCStatusApproved,
	}
	require.NoError(t, admin.SetPassword("Sup3r$ecret"))
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func seedSubmission(t *testing.T, db *gorm.DB, creator *models.User, submissionType models.SubmissionType, status models.SubmissionStatus) *models.Submission {
	t.Helper()

	submission := &models.Submission{
		CreatorID:  creator.ID,
		Type:       submissionType,
		ContentURL: "https://example.com/content",
		Status:     status,
	}
	require.NoError(t, db.Create(submission).Error)
	return submission
}
