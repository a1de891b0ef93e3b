package router

import (
	"context"
	"time"

	"robocamp/internal/api/handlers"
	"robocamp/internal/api/middleware"
	"robocamp/internal/config"
	"robocamp/internal/domain/catalog"
	"robocamp/internal/infrastructure/cache"
	"robocamp/internal/infrastructure/repository"
	"robocamp/internal/service"
	"robocamp/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a gin engine
func New(db *gorm.DB) *gin.Engine {
	cfg := config.Get()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.RequestID())
	r.Use(cors.Default())
	r.Use(gin.Recovery())

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	contactRepo := repository.NewContactRepository(db)
	enrollmentStore := repository.NewEnrollmentStore(db)

	catalogCache := cache.NewCatalogCacheWithConfig(&cfg.Cache)
	warmCatalogCache(catalogCache, courseRepo)

	notifier := service.NewLogNotifier()

	authService := service.NewAuthService(userRepo, cfg.Auth)
	catalogService := service.NewCatalogService(courseRepo, instructorRepo, catalogCache)
	registrationService := service.NewRegistrationService(enrollmentStore, notifier)
	discountService := service.NewDiscountService(discountRepo)
	contactService := service.NewContactService(contactRepo, notifier)

	authHandler := handlers.NewAuthHandler(authService)
	courseHandler := handlers.NewCourseHandler(catalogService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	discountHandler := handlers.NewDiscountHandler(discountService)
	contactHandler := handlers.NewContactHandler(contactService)
	adminHandler := handlers.NewAdminHandler(catalogService, registrationService, discountService, contactService, authService)
	healthHandler := handlers.NewHealthHandler(db, catalogCache)

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/live", healthHandler.Live)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/courses", courseHandler.List)
		v1.GET("/courses/:id", courseHandler.Get)
		v1.GET("/instructors", courseHandler.ListInstructors)
		v1.POST("/discounts/validate", discountHandler.Validate)
		v1.POST("/contact", contactHandler.Create)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.Auth(authService), authHandler.Me)
		}

		registrations := v1.Group("/registrations", middleware.Auth(authService))
		{
			registrations.POST("", registrationHandler.Create)
			registrations.GET("", registrationHandler.List)
			registrations.GET("/:id", registrationHandler.Get)
			registrations.POST("/:id/cancel", registrationHandler.Cancel)
		}

		admin := v1.Group("/admin", middleware.Auth(authService), middleware.AdminOnly())
		{
			admin.GET("/courses", adminHandler.ListCourses)
			admin.POST("/courses", adminHandler.CreateCourse)
			admin.PUT("/courses/:id", adminHandler.UpdateCourse)
			admin.DELETE("/courses/:id", adminHandler.DeleteCourse)

			admin.POST("/instructors", adminHandler.CreateInstructor)
			admin.DELETE("/instructors/:id", adminHandler.DeleteInstructor)

			admin.GET("/discounts", adminHandler.ListDiscounts)
			admin.POST("/discounts", adminHandler.CreateDiscount)
			admin.PATCH("/discounts/:id", adminHandler.SetDiscountActive)
			admin.DELETE("/discounts/:id", adminHandler.DeleteDiscount)

			admin.GET("/registrations", adminHandler.ListRegistrations)
			admin.GET("/users", adminHandler.ListUsers)

			admin.GET("/contact", adminHandler.ListContactMessages)
			admin.POST("/contact/:id/read", adminHandler.MarkContactRead)

			admin.GET("/reports/summary", adminHandler.ReportSummary)
		}
	}

	return r
}

// warmCatalogCache pre-loads the active course list so the first catalog
// request after startup does not hit the database. Failures are logged
// and ignored; the cache fills lazily on demand.
func warmCatalogCache(catalogCache *cache.CatalogCache, courses catalog.CourseRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := catalogCache.Ping(ctx); err != nil {
		logger.Warn("Cache unavailable, skipping catalog warm-up: %v", err)
		return
	}

	active, err := courses.ListActive(ctx)
	if err != nil {
		logger.Warn("Failed to load courses for cache warm-up: %v", err)
		return
	}

	if err := catalogCache.SetCourseList(ctx, active); err != nil {
		logger.Warn("Failed to warm course list cache: %v", err)
		return
	}

	logger.Info("Warmed catalog cache with %d active courses", len(active))
}
