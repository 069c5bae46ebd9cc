// main.go
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/encikiz/planr-backend/internal/api/handlers"
	"github.com/encikiz/planr-backend/internal/api/middleware"
	"github.com/encikiz/planr-backend/internal/config"
	"github.com/encikiz/planr-backend/internal/cron"
	"github.com/encikiz/planr-backend/internal/db"
	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/seed"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/encikiz/planr-backend/internal/socket"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// ============================================
	// Initialize PostgreSQL (pgxpool + sql.DB)
	// ============================================
	pgDB, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to create pgx pool: %v", err)
	}
	defer pgDB.Close()

	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to open sql DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("❌ Failed to ping sql DB: %v", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(pgDB.Pool, sqlDB)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional, backs session auth)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (continuing with token auth only)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Println("⚡ Redis session store enabled")
		}
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)

	// WebSocket handler with JWT secret for self-authentication
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		log.Println("🌱 Seeding development data...")
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize All Services
	// ============================================
	deps := &service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		Broadcaster: broadcaster,
	}
	if redisDB != nil {
		deps.Sessions = redisDB
	}
	services := service.NewServices(deps)
	log.Println("✨ All services initialized")

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services, cfg)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(services.Progress, repos.TaskRepo)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"database":   "connected",
			"sessions":   getSessionStatus(redisDB),
			"websocket":  "active",
			"ws_clients": hub.GetConnectedClientsCount(),
		})
	})

	resolvers := middleware.NewResolvers(cfg, services.Auth)
	authRequired := middleware.AuthMiddleware(resolvers...)
	fullAccess := middleware.RequireFullAccess()

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/guest", h.Auth.LoginAsGuest)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", authRequired, h.User.GetCurrentUser)
		}

		// WebSocket route
		api.GET("/ws", wsHandler.HandleWebSocket)

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(authRequired)
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", fullAccess, h.User.Create)
				users.PUT("/:id", fullAccess, h.User.Update)
				users.DELETE("/:id", fullAccess, h.User.Delete)
			}

			// Project routes (:id accepts the native ID or a legacy alias)
			projects := protected.Group("/projects")
			{
				projects.GET("", h.Project.List)
				projects.GET("/:id", h.Project.Get)
				projects.POST("", fullAccess, h.Project.Create)
				projects.PUT("/:id", fullAccess, h.Project.Update)
				projects.DELETE("/:id", fullAccess, h.Project.Delete)

				// Nested resources
				projects.GET("/:id/tasks", h.Project.ListTasks)
				projects.GET("/:id/milestones", h.Project.ListMilestones)
				projects.POST("/:id/milestones", fullAccess, h.Project.CreateMilestone)
			}

			// Task routes. clear-all is a literal segment and must be
			// registered alongside the :id routes.
			tasks := protected.Group("/tasks")
			{
				tasks.GET("", h.Task.List)
				tasks.POST("", fullAccess, h.Task.Create)
				tasks.DELETE("/clear-all", fullAccess, h.Task.ClearAll)
				tasks.GET("/:id", h.Task.Get)
				tasks.PUT("/:id", fullAccess, h.Task.Update)
				tasks.DELETE("/:id", fullAccess, h.Task.Delete)
			}

			// Milestone routes
			milestones := protected.Group("/milestones")
			{
				milestones.GET("", h.Milestone.List)
				milestones.GET("/:id", h.Milestone.Get)
				milestones.PUT("/:id", fullAccess, h.Milestone.Update)
				milestones.DELETE("/:id", fullAccess, h.Milestone.Delete)
			}

			// Team routes
			teams := protected.Group("/teams")
			{
				teams.GET("", h.Team.List)
				teams.GET("/:id", h.Team.Get)
				teams.POST("", fullAccess, h.Team.Create)
				teams.PUT("/:id", fullAccess, h.Team.Update)
				teams.DELETE("/:id", fullAccess, h.Team.Delete)

				teams.GET("/:id/members", h.Team.ListMembers)
				teams.POST("/:id/members", fullAccess, h.Team.AddMember)
				teams.PUT("/:id/members/:userId", fullAccess, h.Team.UpdateMemberRole)
				teams.DELETE("/:id/members/:userId", fullAccess, h.Team.RemoveMember)
			}
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getSessionStatus(redisDB *db.RedisDB) string {
	if redisDB != nil {
		return "connected"
	}
	return "disabled"
}
