// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/config"
	"github.com/bookxchange/backend/internal/handlers"
	"github.com/bookxchange/backend/internal/i18n"
	"github.com/bookxchange/backend/internal/middleware"
	"github.com/bookxchange/backend/internal/models"
	"github.com/bookxchange/backend/internal/services"
	"github.com/bookxchange/backend/internal/utils"
)

const version = "1.0.0"

func Initialize(db *gorm.DB, cfg *config.Config, verifier services.IdentityVerifier, log *logrus.Logger) *gin.Engine {
	// Initialize services
	imageService := services.NewImageService(cfg.Listings.MaxImageKB)
	profileService := services.NewProfileService(db, imageService, log, cfg.Listings.DefaultCollege)
	listingService := services.NewListingService(db, imageService, log)
	favoriteService := services.NewFavoriteService(db, log)

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, log)
	listingHandler := handlers.NewListingHandler(listingService, log)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, log)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyMB))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": version,
		})
	})

	// Local token issuing for the jwt provider
	if cfg.Auth.Provider == "jwt" && !cfg.IsProduction() {
		authHandler := handlers.NewAuthHandler(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
		r.POST("/dev/token", limiter.Middleware(), authHandler.IssueDevToken)
	}

	api := r.Group("/api")
	api.Use(limiter.Middleware())
	api.Use(middleware.AuthRequired(verifier, log))
	{
		profile := api.Group("/profile")
		{
			profile.POST("", profileHandler.UpsertProfile)
			profile.GET("", profileHandler.GetProfile)
			profile.DELETE("/picture", profileHandler.RemovePicture)
			profile.GET("/:userId", profileHandler.GetPublicProfile)
		}

		books := api.Group("/exchange-books")
		{
			books.POST("", listingHandler.CreateListing)
			books.GET("", listingHandler.GetMyListings)
			books.GET("/:id", listingHandler.GetListing)
			books.DELETE("/:id", listingHandler.DeleteListing)
			books.DELETE("/:id/images/:imageIndex", listingHandler.DeleteImage)
			books.PUT("/:id/availability", listingHandler.SetAvailability)
		}

		find := api.Group("/find-books")
		{
			find.GET("", listingHandler.FindBooks)
			find.GET("/search", listingHandler.SearchBooks)
		}

		favorites := api.Group("/favorites")
		{
			favorites.POST("", favoriteHandler.AddFavorite)
			favorites.GET("", favoriteHandler.ListFavorites)
			favorites.GET("/check/:bookId", favoriteHandler.CheckFavorite)
			favorites.DELETE("/:bookId", favoriteHandler.RemoveFavorite)
		}

		api.GET("/meta", getMetaHandler)
	}

	return r
}

// getMetaHandler lists the accepted enum values for client forms.
func getMetaHandler(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"conditions":     models.BookConditions,
		"branches":       models.Branches,
		"academic_years": models.AcademicYears,
		"languages":      i18n.GetSupportedLanguages(),
	})
}
