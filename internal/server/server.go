package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/snapcal/backend/config"
	"github.com/snapcal/backend/internal/api"
	"github.com/snapcal/backend/internal/database"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/tasks"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	tasks  *tasks.Runner
	cfg    *config.Config
}

// New creates a server instance with its database, redis client,
// routes and background runner wired up.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	// Redis is optional. Without it rate limiting is disabled but the
	// API still serves.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "https://app.snapcal.app"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, db, redisClient, cfg)

	guestService := service.NewGuestService(db, cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.GuestSessionExpirationDays)
	runner := tasks.NewRunner(guestService)

	return &Server{
		router: router,
		db:     db,
		redis:  redisClient,
		tasks:  runner,
		cfg:    cfg,
	}, nil
}

// Start starts the background runner and serves HTTP until Shutdown.
func (s *Server) Start() error {
	s.tasks.Start()

	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the background runner and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.tasks.Stop()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}

	if s.http == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
