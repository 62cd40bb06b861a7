// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/almoxdev/estoque-backend/internal/config"
	"github.com/almoxdev/estoque-backend/internal/handlers"
	"github.com/almoxdev/estoque-backend/internal/middleware"
	"github.com/almoxdev/estoque-backend/internal/services"
	"github.com/almoxdev/estoque-backend/internal/store"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	dataStore := store.NewGormStore(db)
	storageService, _ := services.NewStorageService(cfg)
	notificationService := services.NewNotificationService(db)

	productService := services.NewProductService(db)
	locationService := services.NewLocationService(db)
	invoiceService := services.NewInvoiceService(db, storageService)
	movementService := services.NewMovementService(db, productService)
	shoppingService := services.NewShoppingService(db)
	organizationService := services.NewOrganizationService(db, storageService)
	reportService := services.NewReportService(db)
	importService := services.NewImportService(dataStore)
	exportService := services.NewExportService(dataStore, organizationService)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	locationHandler := handlers.NewLocationHandler(locationService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	movementHandler := handlers.NewMovementHandler(movementService)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)
	dataHandler := handlers.NewDataHandler(importService, exportService, notificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Local upload fallback is only used outside production
	if cfg.Environment != "production" {
		r.Static("/uploads", "./uploads")
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(middleware.AuthRequired())
	{
		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Storage location routes
		locations := v1.Group("/storage-locations")
		{
			locations.GET("", locationHandler.GetLocations)
			locations.GET("/:id", locationHandler.GetLocation)
			locations.POST("", locationHandler.CreateLocation)
			locations.PUT("/:id", locationHandler.UpdateLocation)
			locations.DELETE("/:id", locationHandler.DeleteLocation)
		}

		// Invoice routes
		invoices := v1.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.GetInvoices)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
			invoices.POST("", invoiceHandler.CreateInvoice)
			invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
			invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
			invoices.POST("/:id/documents/:kind", middleware.UploadRateLimit(), invoiceHandler.UploadDocument)
			invoices.GET("/:id/documents/:kind", invoiceHandler.GetDocumentURL)
		}

		// Stock movement routes
		entries := v1.Group("/entries")
		{
			entries.GET("", movementHandler.GetEntries)
			entries.POST("", movementHandler.CreateEntry)
			entries.DELETE("/:id", movementHandler.DeleteEntry)
		}
		exits := v1.Group("/exits")
		{
			exits.GET("", movementHandler.GetExits)
			exits.POST("", movementHandler.CreateExit)
			exits.DELETE("/:id", movementHandler.DeleteExit)
		}

		// Shopping list routes
		shopping := v1.Group("/shopping-list")
		{
			shopping.GET("", shoppingHandler.GetItems)
			shopping.POST("", shoppingHandler.CreateItem)
			shopping.PUT("/:id", shoppingHandler.UpdateItem)
			shopping.PATCH("/:id/toggle", shoppingHandler.TogglePurchased)
			shopping.DELETE("/:id", shoppingHandler.DeleteItem)
		}

		// Organization settings routes
		organization := v1.Group("/organization")
		{
			organization.GET("", organizationHandler.GetSettings)
			organization.PUT("", middleware.AdminRequired(), organizationHandler.UpdateSettings)
			organization.POST("/logo", middleware.AdminRequired(), middleware.UploadRateLimit(), organizationHandler.UploadLogo)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.POST("", middleware.AdminRequired(), notificationHandler.CreateNotification)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		// Report routes
		reports := v1.Group("/reports")
		{
			reports.GET("/:kind", reportHandler.GetReport)
			reports.GET("/:kind/csv", middleware.ExportRateLimit(), reportHandler.DownloadReportCSV)
		}

		// Data interchange routes (admin only)
		data := v1.Group("/data")
		data.Use(middleware.AdminRequired())
		{
			data.POST("/import", middleware.UploadRateLimit(), dataHandler.ImportWorkbook)
			data.GET("/export", middleware.ExportRateLimit(), dataHandler.ExportWorkbook)
			data.GET("/export/pdf", middleware.ExportRateLimit(), dataHandler.ExportPDF)
			data.GET("/backup", middleware.ExportRateLimit(), dataHandler.ExportBackup)
			data.POST("/restore", middleware.UploadRateLimit(), dataHandler.RestoreBackup)
			data.GET("/templates/:table", dataHandler.DownloadTemplate)
		}
	}

	return r
}
