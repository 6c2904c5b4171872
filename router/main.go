package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/mavhungutrezzy/umami-tube/database"
	"github.com/mavhungutrezzy/umami-tube/handlers"
	accommodation_handlers "github.com/mavhungutrezzy/umami-tube/handlers/accommodation"
	admin_handlers "github.com/mavhungutrezzy/umami-tube/handlers/admin"
	auth_handlers "github.com/mavhungutrezzy/umami-tube/handlers/auth"
	bursary_handlers "github.com/mavhungutrezzy/umami-tube/handlers/bursary"
	taxonomy_handlers "github.com/mavhungutrezzy/umami-tube/handlers/taxonomy"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils"
	"github.com/mavhungutrezzy/umami-tube/utils/auth"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/middleware"
	"github.com/mavhungutrezzy/umami-tube/utils/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config carries everything the routes need
type Config struct {
	Store    database.Storage
	Registry *services.TaxonomyRegistry
	JWT      auth.JWTConfig
	Security middleware.SecurityConfig
	Log      *logger.Logger

	// CacheStorage backs the response cache; nil keeps entries in memory
	CacheStorage          fiber.Storage
	AccommodationCacheTTL time.Duration
	BursaryCacheTTL       time.Duration
	TaxonomyCacheTTL      time.Duration

	// Clock overrides "today" for date rules, tests only
	Clock func() time.Time
}

func SetupRoutes(app *fiber.App, cfg Config) {
	db := cfg.Store.GetDB()
	jwtManager := auth.NewJWTManager(cfg.JWT)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)
	validator := validation.NewValidator()

	accommodationService := services.NewAccommodationService(db, validator)
	bursaryService := services.NewBursaryService(db, validator)
	if cfg.Clock != nil {
		accommodationService.WithClock(cfg.Clock)
		bursaryService.WithClock(cfg.Clock)
	}

	authHandler := auth_handlers.NewAuthHandler(db, cfg.Log)
	taxonomyHandler := taxonomy_handlers.NewTaxonomyHandler(cfg.Registry, cfg.Log)
	accommodationHandler := accommodation_handlers.NewAccommodationHandler(accommodationService, cfg.Log)
	bursaryHandler := bursary_handlers.NewBursaryHandler(bursaryService, cfg.Log)
	adminHandler := admin_handlers.NewAdminHandler(db, services.NewExportService(db), cfg.Log)

	app.Use(middleware.Metrics())
	middleware.SetupSecurity(app, cfg.Security)

	// Health check and metrics (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, cfg.Store))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	taxonomyCache := middleware.ResponseCache("taxonomy", cfg.TaxonomyCacheTTL, cfg.CacheStorage)
	accommodationCache := middleware.ResponseCache("accommodations", cfg.AccommodationCacheTTL, cfg.CacheStorage)
	bursaryCache := middleware.ResponseCache("bursaries", cfg.BursaryCacheTTL, cfg.CacheStorage)

	// API v1 group
	api := app.Group("/api/v1")

	// Session routes (protected)
	authGroup := api.Group("/auth", authMiddleware.Required())
	authGroup.Get("/me", authHandler.Me)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/logout-all", authHandler.LogoutAll)

	// Accommodation taxonomies
	api.Get("/institutions", taxonomyCache, taxonomyHandler.List(services.VariantInstitution))
	api.Get("/property-types", taxonomyCache, taxonomyHandler.List(services.VariantPropertyType))
	api.Get("/payment-methods", taxonomyCache, taxonomyHandler.List(services.VariantPaymentMethod))
	api.Get("/amenities", taxonomyCache, taxonomyHandler.List(services.VariantAmenity))

	// Accommodations (public)
	accommodations := api.Group("/accommodations")
	accommodations.Get("/", accommodationCache, accommodationHandler.ListAccommodations)
	accommodations.Get("/:slug", accommodationCache, accommodationHandler.GetAccommodation)

	// Landlord workspace (protected)
	landlord := api.Group("/landlord/accommodations", authMiddleware.Required())
	landlord.Get("/", accommodationHandler.ListOwned)
	landlord.Post("/", accommodationHandler.CreateAccommodation)
	landlord.Get("/:slug", accommodationHandler.GetOwned)
	landlord.Put("/:slug", accommodationHandler.ReplaceAccommodation)
	landlord.Patch("/:slug", accommodationHandler.PatchAccommodation)
	landlord.Delete("/:slug", accommodationHandler.DeleteAccommodation)

	// Bursaries (public); taxonomy paths come before /:slug
	bursaries := api.Group("/bursaries")
	bursaries.Get("/fields-of-study", taxonomyCache, taxonomyHandler.List(services.VariantFieldOfStudy))
	bursaries.Get("/study-levels", taxonomyCache, taxonomyHandler.List(services.VariantStudyLevel))
	bursaries.Get("/education-levels", taxonomyCache, taxonomyHandler.List(services.VariantEducationLevel))
	bursaries.Get("/", bursaryCache, bursaryHandler.ListBursaries)
	bursaries.Get("/:slug", bursaryCache, bursaryHandler.GetBursary)

	// Provider workspace (protected)
	provider := api.Group("/provider/bursaries", authMiddleware.Required())
	provider.Get("/", bursaryHandler.ListOwned)
	provider.Post("/", bursaryHandler.CreateBursary)
	provider.Get("/:slug", bursaryHandler.GetOwned)
	provider.Put("/:slug", bursaryHandler.ReplaceBursary)
	provider.Patch("/:slug", bursaryHandler.PatchBursary)
	provider.Delete("/:slug", bursaryHandler.DeleteBursary)

	// Operators
	admin := api.Group("/admin", authMiddleware.RequireOperator())
	admin.Patch("/accommodations/:slug/verification", accommodationHandler.SetVerification)
	admin.Get("/audit-logs", adminHandler.ListAuditLogs)
	admin.Get("/export.xlsx", adminHandler.ExportCatalog)
}
