package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/lanlyastar/reservation-backend/internal/config"
	"github.com/lanlyastar/reservation-backend/internal/database"
	"github.com/lanlyastar/reservation-backend/internal/handlers"
	"github.com/lanlyastar/reservation-backend/internal/middleware"
	"github.com/lanlyastar/reservation-backend/internal/models"
	"github.com/lanlyastar/reservation-backend/internal/services"
	"github.com/lanlyastar/reservation-backend/pkg/jwt"
	"github.com/lanlyastar/reservation-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Lanlya Star Hotel Reservation Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize repositories and reset the per-run state
	clerkRepository := database.NewClerkRepository(db)
	inventoryRepository := database.NewInventoryRepository(db)

	if err := clerkRepository.EnsureSchema(); err != nil {
		logger.Fatalf("Failed to prepare clerks schema: %v", err)
	}
	if err := seedFrontDeskClerk(clerkRepository, cfg, logger); err != nil {
		logger.Fatalf("Failed to seed front-desk clerk: %v", err)
	}

	// Inventory starts fresh every run
	if err := inventoryRepository.Reset(); err != nil {
		logger.Fatalf("Failed to reset room inventory: %v", err)
	}
	logger.Info("Room inventory reseeded")

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	cardValidator := validator.NewCardValidator()
	authService := services.NewAuthService(clerkRepository, jwtService, logger)
	seasonService := services.NewSeasonService()
	allocationService := services.NewAllocationService(inventoryRepository, logger)
	pricingService := services.NewPricingService()
	settlementService := services.NewSettlementService(cardValidator, logger)
	bookingService := services.NewBookingService(
		db,
		seasonService,
		allocationService,
		pricingService,
		settlementService,
		logger,
	)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	catalogHandler := handlers.NewCatalogHandler(inventoryRepository, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
		}

		// Catalog routes (public)
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/rooms", catalogHandler.ListRoomTypes)
			catalog.GET("/amenities", catalogHandler.ListAmenities)
			catalog.GET("/destinations", catalogHandler.ListDestinations)

			// Live availability requires a signed-in clerk
			catalogProtected := catalog.Group("")
			catalogProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				catalogProtected.GET("/availability", catalogHandler.GetAvailability)
			}
		}

		// Booking routes (protected)
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware(jwtService))
		{
			bookings.POST("/quote", bookingHandler.Quote)
			bookings.POST("", bookingHandler.CreateReservation)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// seedFrontDeskClerk creates the bootstrap clerk account on first run. In
// development mode without a configured password a random one is generated
// and printed once.
func seedFrontDeskClerk(clerks *database.ClerkRepository, cfg *config.Config, logger *logrus.Logger) error {
	count, err := clerks.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.FrontDesk.SeedPassword
	if password == "" {
		password = uuid.New().String()
		logger.WithFields(logrus.Fields{
			"username": cfg.FrontDesk.SeedUsername,
			"password": password,
		}).Warn("No FRONTDESK_SEED_PASSWORD set, generated a one-time password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BcryptCost)
	if err != nil {
		return err
	}

	clerk := &models.Clerk{
		Username:     cfg.FrontDesk.SeedUsername,
		PasswordHash: string(hash),
		FullName:     cfg.FrontDesk.SeedFullName,
	}
	if err := clerks.Create(clerk); err != nil {
		return err
	}

	logger.WithField("username", clerk.Username).Info("Front-desk clerk account created")
	return nil
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if clerkCtx, exists := middleware.GetClerkContext(c); exists {
			fields["clerk_id"] = clerkCtx.ClerkID
			fields["username"] = clerkCtx.Username
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
