// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/config"
	"github.com/wasteyuse/creatorly-backend/internal/handlers"
	"github.com/wasteyuse/creatorly-backend/internal/middleware"
	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	walletService := services.NewWalletService(db)

	authService := services.NewAuthService(db, cfg)
	creatorService := services.NewCreatorService(db)
	submissionService := services.NewSubmissionService(db, cfg)
	trackingService := services.NewTrackingService(db, cfg)
	payoutService := services.NewPayoutService(db, cfg, walletService)
	kycService := services.NewKYCService(db, cfg, storageService)
	assetService := services.NewAssetService(db, storageService)
	ledgerService := services.NewLedgerService(db)
	adminService := services.NewAdminService(db)
	supportService := services.NewSupportService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	creatorHandler := handlers.NewCreatorHandler(creatorService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	payoutHandler := handlers.NewPayoutHandler(payoutService)
	kycHandler := handlers.NewKYCHandler(kycService)
	assetHandler := handlers.NewAssetHandler(assetService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	walletHandler := handlers.NewWalletHandler(walletService)
	adminHandler := handlers.NewAdminHandler(adminService)
	supportHandler := handlers.NewSupportHandler(supportService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Creator routes
		creators := v1.Group("/creators")
		{
			creators.GET("", creatorHandler.List)
			creators.GET("/:id", creatorHandler.GetPublicProfile)

			protected := creators.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/apply", creatorHandler.Apply)
				protected.PUT("/me", creatorHandler.UpdateProfile)
			}
		}

		// Submission routes
		submissions := v1.Group("/submissions")
		{
			submissions.GET("", middleware.OptionalAuth(), submissionHandler.List)
			submissions.GET("/:id", middleware.OptionalAuth(), submissionHandler.Get)

			protected := submissions.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", submissionHandler.Create)
				protected.GET("/mine", submissionHandler.ListMine)
			}
		}

		// Tracking routes (public, tighter rate limit)
		track := v1.Group("/track")
		track.Use(middleware.TrackingRateLimit())
		{
			track.POST("/view", trackingHandler.TrackView)
			track.POST("/recalculate-views",
				middleware.AuthRequired(), middleware.AdminRequired(),
				trackingHandler.RecalculateViews)
		}

		// Payout routes
		payouts := v1.Group("/payouts")
		payouts.Use(middleware.AuthRequired())
		{
			payouts.GET("/balance", payoutHandler.GetBalance)
			payouts.GET("/methods", payoutHandler.ListMethods)
			payouts.POST("/methods", payoutHandler.AddMethod)
			payouts.GET("/requests", payoutHandler.ListMyRequests)
			payouts.POST("/requests", payoutHandler.CreateRequest)
		}

		// KYC routes
		kyc := v1.Group("/kyc")
		kyc.Use(middleware.AuthRequired())
		{
			kyc.POST("/documents", middleware.UploadRateLimit(), kycHandler.UploadDocument)
			kyc.GET("/status", kycHandler.GetStatus)
		}

		// Asset routes (catalog of approved assets)
		assets := v1.Group("/assets")
		{
			assets.GET("", middleware.OptionalAuth(), assetHandler.List)
			assets.GET("/:id", middleware.OptionalAuth(), assetHandler.Get)
		}

		// Transaction ledger routes
		transactions := v1.Group("/transactions")
		transactions.Use(middleware.AuthRequired())
		{
			transactions.GET("", ledgerHandler.ListMine)
			transactions.GET("/summary", ledgerHandler.Summary)
		}

		// Wallet routes
		wallet := v1.Group("/wallet")
		wallet.Use(middleware.AuthRequired())
		{
			wallet.GET("", walletHandler.Get)
			wallet.GET("/transactions", walletHandler.History)
			wallet.POST("/deduct", walletHandler.Deduct)
		}

		// Support routes
		support := v1.Group("/support")
		support.Use(middleware.AuthRequired())
		{
			support.POST("/tickets", supportHandler.CreateTicket)
			support.GET("/tickets", supportHandler.ListMyTickets)
			support.GET("/tickets/:id", supportHandler.GetTicket)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			// User management
			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.PUT("/:id/status", adminHandler.UpdateUserStatus)
			}

			// Creator approval
			admin.POST("/creators/:id/approve", creatorHandler.Approve)

			// Submission review
			adminSubmissions := admin.Group("/submissions")
			{
				adminSubmissions.PUT("/:id/approve", submissionHandler.Approve)
				adminSubmissions.PUT("/:id/reject", submissionHandler.Reject)
				adminSubmissions.POST("/:id/conversion", trackingHandler.TrackConversion)
			}

			// Payout review
			adminPayouts := admin.Group("/payouts")
			{
				adminPayouts.GET("", payoutHandler.ListRequests)
				adminPayouts.PUT("/:id/status", payoutHandler.UpdateStatus)
			}

			// KYC review
			adminKYC := admin.Group("/kyc")
			{
				adminKYC.PUT("/:userId", kycHandler.Review)
				adminKYC.GET("/:userId/documents", kycHandler.DocumentURLs)
			}

			// Asset management
			adminAssets := admin.Group("/assets")
			{
				adminAssets.POST("", middleware.UploadRateLimit(), assetHandler.Add)
				adminAssets.GET("", assetHandler.List)
				adminAssets.PUT("/:id/status", assetHandler.UpdateWorkflowStatus)
			}

			// Ledger
			admin.GET("/transactions", ledgerHandler.ListAll)

			// Support tickets
			adminSupport := admin.Group("/support")
			{
				adminSupport.GET("/tickets", supportHandler.ListTickets)
				adminSupport.PUT("/tickets/:id/status", supportHandler.UpdateTicketStatus)
			}

			// Settings management
			adminSettings := admin.Group("/settings")
			{
				adminSettings.GET("", adminHandler.GetSettings)
				adminSettings.PUT("/:category/:key", adminHandler.UpdateSetting)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
