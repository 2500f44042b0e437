// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wasteyuse/creatorly-backend/internal/config"
	"github.com/wasteyuse/creatorly-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.KYCDocument{},
		&models.Submission{},
		&models.Asset{},
		&models.PayoutMethod{},
		&models.PayoutRequest{},
		&models.Transaction{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.SupportTicket{},
		&models.AdminSettings{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Database-side UUID default for rows inserted outside the ORM. The
	// struct tag stays default-free so the hook covers other engines.
	if err := setUUIDDefaults(db); err != nil {
		return fmt.Errorf("failed to set UUID defaults: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func setUUIDDefaults(db *gorm.DB) error {
	tables := []string{
		"users", "kyc_documents", "submissions", "assets",
		"payout_methods", "payout_requests", "transactions",
		"wallets", "wallet_transactions", "support_tickets",
		"admin_settings", "audit_logs",
	}

	for _, table := range tables {
		stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN id SET DEFAULT gen_random_uuid()", table)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("table %s: %w", table, err)
		}
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",
		"CREATE INDEX IF NOT EXISTS idx_users_creator_flags ON users(is_creator, is_approved)",
		"CREATE INDEX IF NOT EXISTS idx_users_kyc_status ON users(kyc_status)",

		// Submission indexes
		"CREATE INDEX IF NOT EXISTS idx_submissions_creator ON submissions(creator_id)",
		"CREATE INDEX IF NOT EXISTS idx_submissions_type_status ON submissions(type, status)",
		"CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC)",

		// Transaction ledger indexes
		"CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_type_status ON transactions(type, status)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_submission ON transactions(submission_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC)",

		// Payout indexes
		"CREATE INDEX IF NOT EXISTS idx_payout_requests_user_status ON payout_requests(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_payout_requests_requested_at ON payout_requests(requested_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_payout_methods_user ON payout_methods(user_id)",

		// Asset indexes
		"CREATE INDEX IF NOT EXISTS idx_assets_workflow_status ON assets(workflow_status)",
		"CREATE INDEX IF NOT EXISTS idx_assets_type ON assets(type)",

		// Admin indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_admin_settings_category ON admin_settings(category, key)",
		"CREATE INDEX IF NOT EXISTS idx_support_tickets_status ON support_tickets(status, created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username:   "admin",
			Email:      "admin@creatorly.io",
			UserType:   models.UserTypeAdmin,
			Status:     models.UserStatusActive,
			IsApproved: true,
			KYCStatus:  models.KYCStatusApproved,
			ProfileData: models.JSONB{
				"first_name": "System",
				"last_name":  "Administrator",
				"role":       "super_admin",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Create default platform settings
	defaultSettings := []models.AdminSettings{
		{
			Category:    "general",
			Key:         "platform_name",
			Value:       models.JSONB{"value": "Creatorly"},
			DataType:    "string",
			Description: "Platform name displayed to users",
		},
		{
			Category:    "payments",
			Key:         "minimum_payout",
			Value:       models.JSONB{"value": 10.0},
			DataType:    "float",
			Description: "Minimum amount for payout requests",
		},
		{
			Category:    "payments",
			Key:         "maximum_payout",
			Value:       models.JSONB{"value": 500.0},
			DataType:    "float",
			Description: "Maximum amount for a single payout request",
		},
		{
			Category:    "earnings",
			Key:         "views_per_rupee",
			Value:       models.JSONB{"value": 1000},
			DataType:    "integer",
			Description: "Cumulative views required to earn one rupee",
		},
		{
			Category:    "earnings",
			Key:         "affiliate_hit_rate",
			Value:       models.JSONB{"value": 0.50},
			DataType:    "float",
			Description: "Flat earning per affiliate click on a product submission",
		},
		{
			Category:    "content",
			Key:         "auto_approve_submissions",
			Value:       models.JSONB{"value": false},
			DataType:    "boolean",
			Description: "Automatically approve new submissions",
		},
	}

	for _, setting := range defaultSettings {
		var count int64
		db.Model(&models.AdminSettings{}).Where("category = ? AND key = ?", setting.Category, setting.Key).Count(&count)

		if count == 0 {
			// Get admin user ID for the UpdatedBy field
			var admin models.User
			if err := db.Where("user_type = ?", models.UserTypeAdmin).First(&admin).Error; err == nil {
				setting.UpdatedBy = admin.ID
				if err := db.Create(&setting).Error; err != nil {
					log.Printf("Warning: Failed to create setting %s.%s: %v", setting.Category, setting.Key, err)
				}
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
