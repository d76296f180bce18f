package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cityconnect/transit-backend/internal/config"
	"github.com/cityconnect/transit-backend/internal/database"
	"github.com/cityconnect/transit-backend/internal/handlers"
	"github.com/cityconnect/transit-backend/internal/middleware"
	"github.com/cityconnect/transit-backend/internal/services"
	"github.com/cityconnect/transit-backend/pkg/jwt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if pg, ok := db.(*database.PostgresDB); ok {
		if err := database.RunMigrations(pg.DB.DB); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
	}

	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	userRepo := database.NewUserRepository(db)
	refreshTokenRepo := database.NewRefreshTokenRepository(db)
	vehicleRepo := database.NewVehicleRepository(db)
	locationRepo := database.NewLocationRepository(db)
	ticketRepo := database.NewTicketRepository(db)

	routePlanner := services.NewRoutePlanner(vehicleRepo, logger)
	statsService := services.NewStatsService(ticketRepo, vehicleRepo)
	receiptService := services.NewReceiptService()

	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(jwtService, userRepo, refreshTokenRepo, cfg)
	vehicleHandler := handlers.NewVehicleHandler(vehicleRepo, locationRepo)
	ticketHandler := handlers.NewTicketHandler(ticketRepo, vehicleRepo, userRepo, receiptService)
	routeHandler := handlers.NewRouteHandler(routePlanner)
	statsHandler := handlers.NewStatsHandler(statsService)

	var counterStore middleware.CounterStore
	if cfg.RateLimit.RedisURL != "" {
		store, err := middleware.NewRedisStore(cfg.RateLimit.RedisURL)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		counterStore = store
	} else {
		logger.Warn("REDIS_URL not set, rate limiting with in-process store")
		counterStore = middleware.NewMemoryStore()
	}

	router := gin.New()
	router.Use(requestLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithField("panic", recovered).Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.MaxBodySize(cfg.Server.MaxBodyBytes))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	rateWindow := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	api := router.Group("/api")
	api.Use(middleware.RateLimit(counterStore, cfg.RateLimit.Requests, rateWindow))
	{
		api.GET("/health", healthHandler.Check)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.AuthMiddleware(jwtService), authHandler.Logout)
		}

		vehicles := api.Group("/vehicles")
		vehicles.Use(middleware.AuthMiddleware(jwtService))
		{
			vehicles.GET("", vehicleHandler.List)
			vehicles.POST("", middleware.RequireRole("staff"), vehicleHandler.Create)
			vehicles.GET("/:id/location", vehicleHandler.GetLocation)
			vehicles.POST("/:id/location", middleware.RequireRole("staff"), vehicleHandler.PostLocation)
		}

		tickets := api.Group("/tickets")
		tickets.Use(middleware.AuthMiddleware(jwtService))
		{
			tickets.POST("/book", middleware.RequireRole("traveller"), ticketHandler.Book)
			tickets.GET("", ticketHandler.List)
			tickets.GET("/:id/receipt", ticketHandler.Receipt)
		}

		routes := api.Group("/routes")
		routes.Use(middleware.AuthMiddleware(jwtService))
		{
			routes.GET("/plan", routeHandler.Plan)
		}

		staff := api.Group("/staff")
		staff.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("staff"))
		{
			staff.GET("/stats", statsHandler.Daily)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Server.Environment,
		}).Info("Starting server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// requestLogger logs each request with method, path, status and latency
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}).Info("Request handled")
	}
}
