package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackclash/internal/catalog"
	"trackclash/internal/charts"
	"trackclash/internal/config"
	"trackclash/internal/database"
	"trackclash/internal/handlers"
	"trackclash/internal/preview"
	"trackclash/internal/repository"
	"trackclash/internal/security"
	"trackclash/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	chartRepo := repository.NewChartRepository(db)

	// Clients for the chart-data source and the preview catalog
	chartClient := charts.NewClient(cfg.ChartBaseURL)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)
	resolver := preview.NewResolver(catalogClient, cfg.CatalogCountry)

	// Initialize services
	guestTokens := security.NewGuestTokenIssuer(cfg.JWTSecret, cfg.SessionDuration)
	authService := service.NewAuthService(userRepo, guestTokens, cfg.SessionDuration)

	emailService, err := service.NewEmailService(cfg.EmailEnabled, cfg.AWSRegion, cfg.EmailFrom, "TrackClash", cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	gameService := service.NewGameService(gameRepo, chartRepo, statsRepo, userRepo, chartClient, resolver, emailService)
	chartService := service.NewChartService(chartRepo, chartClient)

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(cfg.RateLimitPerMinute)
	csrf := security.NewCSRFSigner(cfg.JWTSecret)
	middleware := handlers.NewMiddleware(authService, rateLimiter, csrf)
	authHandler := handlers.NewAuthHandler(authService, emailService, csrf, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	gameHandler := handlers.NewGameHandler(gameService)
	chartHandler := handlers.NewChartHandler(chartClient, chartService)
	leaderboardHandler := handlers.NewLeaderboardHandler(gameService)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/guest", middleware.RateLimit(authHandler.Guest))
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("PATCH /api/auth/me", middleware.RequireAuth(middleware.RequireCSRF(authHandler.UpdateProfile)))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.OAuthCallback)

	// Chart metadata routes
	mux.HandleFunc("GET /api/charts", chartHandler.ListCharts)
	mux.HandleFunc("GET /api/charts/{slug}/weeks", middleware.RateLimit(chartHandler.ListWeeks))
	mux.HandleFunc("GET /api/charts/{slug}/archive", chartHandler.ListArchivedWeeks)
	mux.HandleFunc("GET /api/charts/{slug}/archive/{week}", chartHandler.GetArchivedWeek)

	// Gameplay routes
	mux.HandleFunc("POST /api/games", middleware.RequireAuth(middleware.RequireCSRF(gameHandler.StartGame)))
	mux.HandleFunc("GET /api/games", middleware.RequireAuth(gameHandler.History))
	mux.HandleFunc("GET /api/games/{id}", middleware.RequireAuth(gameHandler.GetState))
	mux.HandleFunc("POST /api/games/{id}/round", middleware.RequireAuth(middleware.RequireCSRF(gameHandler.StartRound)))
	mux.HandleFunc("POST /api/games/{id}/answer", middleware.RequireAuth(middleware.RequireCSRF(gameHandler.Answer)))
	mux.HandleFunc("POST /api/games/{id}/advance", middleware.RequireAuth(middleware.RequireCSRF(gameHandler.Advance)))
	mux.HandleFunc("DELETE /api/games/{id}", middleware.RequireAuth(middleware.RequireCSRF(gameHandler.Abandon)))
	mux.HandleFunc("GET /api/games/{id}/detail", middleware.RequireAuth(gameHandler.GameDetail))

	// Leaderboard and stats
	mux.HandleFunc("GET /api/leaderboard", leaderboardHandler.Leaderboard)
	mux.HandleFunc("GET /api/me/stats", middleware.RequireAuth(leaderboardHandler.MyStats))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background cleanup of expired sessions and idle games
	go cleanupLoop(authService, gameService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// cleanupLoop periodically removes expired sessions and idle in-memory games
func cleanupLoop(authService *service.AuthService, gameService *service.GameService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}

		gameService.CleanupStale(2 * time.Hour)
	}
}
