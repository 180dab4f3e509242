// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Marga-Ghale/bpo-console/internal/api/handlers"
	"github.com/Marga-Ghale/bpo-console/internal/api/middleware"
	"github.com/Marga-Ghale/bpo-console/internal/backend"
	"github.com/Marga-Ghale/bpo-console/internal/config"
	"github.com/Marga-Ghale/bpo-console/internal/cron"
	"github.com/Marga-Ghale/bpo-console/internal/db"
	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
	"github.com/Marga-Ghale/bpo-console/internal/forms"
	"github.com/Marga-Ghale/bpo-console/internal/notification"
	"github.com/Marga-Ghale/bpo-console/internal/repository"
	"github.com/Marga-Ghale/bpo-console/internal/service"
	"github.com/Marga-Ghale/bpo-console/internal/socket"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// ============================================
	// Activity log store (optional PostgreSQL)
	// ============================================
	var (
		pg   *db.PostgresDB
		pool *pgxpool.Pool
	)
	if cfg.DatabaseURL != "" {
		log.Println("🔄 Running database migrations...")
		if _, err := db.RunMigrations(cfg.DatabaseURL, db.MigrationOptionsFrom(cfg)); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}

		var err error
		pg, err = db.NewPostgresDB(ctx, cfg.DatabaseURL, db.PoolOptionsFrom(cfg))
		if err != nil {
			log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
		}
		defer pg.Close()
		pool = pg.Pool
	} else {
		log.Println("⚠️  DATABASE_URL not set, activity log kept in memory")
	}

	repos := repository.NewRepositories(pool)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		var err error
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (continuing with in-memory stores)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Println("⚡ Redis enabled for form sessions and dropdown cache")
		}
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run(ctx)
	broadcaster := socket.NewBroadcaster(hub)
	notificationSvc := notification.NewService(broadcaster)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Backend client, dropdowns and form sessions
	// ============================================
	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var (
		dropdownCache dropdown.Cache
		formStore     forms.Store
		purgers       = map[string]cron.Purger{
			"rate limiters": cron.PurgeFunc(func() int { return limiter.Cleanup(2 * time.Hour) }),
		}
	)
	if redisDB != nil {
		dropdownCache = dropdown.NewRedisCache(redisDB)
		formStore = forms.NewRedisStore(redisDB, cfg.FormTTL)
	} else {
		memCache := dropdown.NewMemoryCache()
		memForms := forms.NewMemoryStore(cfg.FormTTL)
		dropdownCache, formStore = memCache, memForms
		purgers["dropdown lists"] = memCache
		purgers["form sessions"] = memForms
	}
	dropdowns := dropdown.NewProvider(client, dropdownCache, cfg.DropdownTTL)

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:    cfg,
		Backend:   client,
		Forms:     formStore,
		Dropdowns: dropdowns,
		Repos:     repos,
		NotifSvc:  notificationSvc,
	})
	log.Println("✨ All services initialized")

	h := handlers.NewHandlers(services)
	wsHandler := socket.NewHandler(hub, services.Auth.ParseUserID, cfg.FrontendURL)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(services.Activity, cfg.ActivityRetention)
	for name, p := range purgers {
		cronScheduler.Register(name, p)
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"backend":    cfg.BackendURL,
			"database":   storeStatus(pool != nil),
			"db_pool":    pg.Stats(),
			"cache":      storeStatus(redisDB != nil),
			"ws_clients": hub.ConnectedClients(),
		})
	})

	api := r.Group("/api")
	api.GET("/ws", wsHandler.HandleWebSocket)
	h.RegisterRoutes(api, middleware.AuthMiddleware(services.Auth), limiter.Middleware())

	// ============================================
	// Start server
	// ============================================
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	stop()

	log.Println("Server exited")
}

func storeStatus(connected bool) string {
	if connected {
		return "connected"
	}
	return "memory"
}
