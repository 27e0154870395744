package routes

import (
	"log"

	"carrental-backend/internal/api/handlers"
	"carrental-backend/internal/api/middleware"
	"carrental-backend/internal/config"
	"carrental-backend/internal/models"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/services"
	"carrental-backend/pkg/cache"
	"carrental-backend/pkg/redis"
	"carrental-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, redisClient *redis.Client, cfg *config.Config) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	carRepo := repository.NewCarRepository(db)
	rentalRepo := repository.NewRentalRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userService)
	carService := services.NewCarService(carRepo, userRepo, cfg.MaxPricePerDay)
	rentalService := services.NewRentalService(rentalRepo, carRepo, userRepo)

	if redisClient != nil {
		carService.SetCacheManager(cache.NewDefaultCacheManager(redisClient))
	}

	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	carHandler := handlers.NewCarHandler(carService)
	rentalHandler := handlers.NewRentalHandler(rentalService)
	photoHandler := handlers.NewPhotoHandler(carService, images)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// Uploaded car photos are served statically
	router.Static("/"+images.Dir(), images.Dir())

	// API routes
	api := router.Group("/api/v1")

	api.GET("/health", healthHandler.HealthCheck)

	// Public routes; login and registration sit behind the rate limiter
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(redisClient, 20))
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register/client", authHandler.RegisterClient)
		auth.POST("/register/manager", authHandler.RegisterManager)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Public catalog routes
	cars := api.Group("/cars")
	{
		cars.GET("", carHandler.GetCars)
		cars.GET("/available", carHandler.GetAvailableCars)
		cars.GET("/filter", carHandler.FilterCars)
		cars.GET("/filter-options", carHandler.GetFilterOptions)
		cars.GET("/:id", carHandler.GetCar)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)

		// Cars
		protectedCars := protected.Group("/cars")
		{
			protectedCars.GET("/mine",
				middleware.RequireRoles(models.RoleManager, models.RoleAdmin),
				carHandler.GetMyCars)
			protectedCars.POST("",
				middleware.RequireRoles(models.RoleManager, models.RoleAdmin),
				carHandler.CreateCar)
			protectedCars.PATCH("/:id/availability",
				middleware.RequireRoles(models.RoleManager, models.RoleAdmin),
				carHandler.UpdateAvailability)
			protectedCars.POST("/:id/photo",
				middleware.RequireRoles(models.RoleManager, models.RoleAdmin),
				photoHandler.UploadCarPhoto)
			protectedCars.POST("/:id/rent",
				middleware.RequireRoles(models.RoleClient),
				carHandler.RentCar)
		}

		// Rentals
		rentals := protected.Group("/rentals")
		{
			rentals.POST("", middleware.RequireRoles(models.RoleClient), rentalHandler.CreateRental)
			rentals.GET("/my", rentalHandler.GetMyRentals)
			rentals.GET("/car/:carId", rentalHandler.GetCarRentals)

			managerRentals := rentals.Group("/manager")
			managerRentals.Use(middleware.RequireRoles(models.RoleManager, models.RoleAdmin))
			{
				managerRentals.GET("", rentalHandler.GetManagerRentals)
				managerRentals.GET("/stats", rentalHandler.GetManagerStats)
			}

			rentals.GET("/:id", rentalHandler.GetRental)
			rentals.POST("/:id/approve",
				middleware.RequireRoles(models.RoleManager, models.RoleAdmin),
				rentalHandler.ApproveRental)
			rentals.POST("/:id/reject",
				middleware.RequireRoles(models.RoleManager, models.RoleAdmin),
				rentalHandler.RejectRental)
			rentals.POST("/:id/start",
				middleware.RequireRoles(models.RoleManager, models.RoleAdmin),
				rentalHandler.StartRental)
			rentals.POST("/:id/complete",
				middleware.RequireRoles(models.RoleManager, models.RoleAdmin),
				rentalHandler.CompleteRental)
			rentals.POST("/:id/cancel", rentalHandler.CancelRental)
		}

		// Users (admin)
		users := protected.Group("/users")
		users.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/clients", userHandler.GetClients)
			users.GET("/managers", userHandler.GetManagers)
			users.GET("/search", userHandler.SearchUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("/:id/approve", userHandler.ApproveManager)
		}
	}
}
