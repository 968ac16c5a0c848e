// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/config"
	"github.com/nexushub/webhub-backend/internal/handlers"
	"github.com/nexushub/webhub-backend/internal/middleware"
	"github.com/nexushub/webhub-backend/internal/services"
	"github.com/nexushub/webhub-backend/internal/utils"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	utils.SetTokenTTL(cfg.JWT.TokenTTL)

	// Services
	engagementService := services.NewEngagementService(db)
	notificationService := services.NewNotificationService(db)
	badgeService := services.NewBadgeService(db)
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, badgeService)
	webappService := services.NewWebappService(db, engagementService)
	reviewService := services.NewReviewService(db, engagementService, notificationService)
	reportService := services.NewReportService(db)
	collectionService := services.NewCollectionService(db)
	adminService := services.NewAdminService(db)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize storage service")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService, webappService, storageService)
	webappHandler := handlers.NewWebappHandler(webappService, engagementService, storageService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	reportHandler := handlers.NewReportHandler(reportService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	adminHandler := handlers.NewAdminHandler(adminService, authService, reportService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	api := r.Group("/api/v1")

	// Auth
	auth := api.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}
	api.GET("/me", middleware.AuthRequired(), authHandler.Me)
	api.PUT("/me/avatar", middleware.AuthRequired(), userHandler.UploadAvatar)

	// Webapps
	webapps := api.Group("/webapps")
	{
		webapps.GET("", webappHandler.List)
		webapps.GET("/popular-tags", webappHandler.PopularTags)
		webapps.GET("/:id", middleware.OptionalAuth(), webappHandler.Get)
		webapps.GET("/:id/versions", webappHandler.GetVersions)
		webapps.POST("", middleware.AuthRequired(), webappHandler.Create)
		webapps.PUT("/:id", middleware.AuthRequired(), webappHandler.Update)
		webapps.DELETE("/:id", middleware.AuthRequired(), webappHandler.Delete)
		webapps.POST("/upload-image", middleware.AuthRequired(), webappHandler.UploadImage)

		webapps.POST("/:id/click", middleware.TrackingRateLimit(), middleware.OptionalAuth(), webappHandler.TrackClick)
		webapps.POST("/:id/share", middleware.TrackingRateLimit(), middleware.OptionalAuth(), webappHandler.TrackShare)

		webapps.POST("/:id/reviews", middleware.AuthRequired(), reviewHandler.Create)
	}

	// Reviews
	api.POST("/reviews/:id/vote", middleware.AuthRequired(), reviewHandler.Vote)

	// Reports
	api.POST("/reports", middleware.AuthRequired(), reportHandler.Create)

	// Notifications
	notifications := api.Group("/notifications")
	notifications.Use(middleware.AuthRequired())
	{
		notifications.GET("", notificationHandler.List)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
		notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	// Collections
	collections := api.Group("/collections")
	{
		collections.GET("/public", collectionHandler.ListPublic)
		collections.GET("", middleware.AuthRequired(), collectionHandler.ListMine)
		collections.POST("", middleware.AuthRequired(), collectionHandler.Create)
		collections.GET("/:id", middleware.OptionalAuth(), collectionHandler.Get)
		collections.PUT("/:id", middleware.AuthRequired(), collectionHandler.Update)
		collections.DELETE("/:id", middleware.AuthRequired(), collectionHandler.Delete)
		collections.GET("/:id/items", middleware.OptionalAuth(), collectionHandler.GetItems)
		collections.POST("/:id/items", middleware.AuthRequired(), collectionHandler.AddItem)
		collections.DELETE("/:id/items/:webappId", middleware.AuthRequired(), collectionHandler.RemoveItem)
	}

	// Users
	users := api.Group("/users")
	{
		users.GET("/:id", userHandler.GetProfile)
		users.GET("/:id/webapps", userHandler.GetUserWebapps)
	}
	api.GET("/stats", userHandler.GetPlatformStats)

	// Admin (stateless shared-key surface)
	admin := api.Group("/admin")
	{
		admin.POST("/login", middleware.AuthRateLimit(), adminHandler.Login)

		guarded := admin.Group("")
		guarded.Use(middleware.AdminKeyRequired(&cfg.Admin))
		{
			guarded.GET("/dashboard", adminHandler.Dashboard)
			guarded.GET("/reports", adminHandler.ListReports)
			guarded.PUT("/reports/:id/resolve", adminHandler.ResolveReport)
			guarded.GET("/webapps", adminHandler.ListWebapps)
			guarded.PUT("/webapps/:id/approve", adminHandler.ApproveWebapp)
			guarded.DELETE("/webapps/:id", adminHandler.DeleteWebapp)
		}
	}

	return r
}
