package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tymonteam/internal/config"
	"tymonteam/internal/database"
	"tymonteam/internal/handlers"
	"tymonteam/internal/ledger"
	"tymonteam/internal/repository"
	"tymonteam/internal/security"
	"tymonteam/internal/service"
	"tymonteam/internal/timer"
)

func main() {
	// Load configuration
	cfg := config.Load()

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

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize core services
	profileService := service.NewProfileService(profileRepo, cfg.SessionDuration)
	ledgerService := ledger.NewService(profileRepo, nil)
	quizService := service.NewQuizService(scoreRepo, ledgerService, cfg.RewardMinutes)
	timekeeper := timer.New(ledgerService)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Admin credentials: hash the configured password once; a missing
	// JWT key gets a random one, which just means admin logins do not
	// survive a restart
	adminHash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	adminJWTKey := []byte(cfg.AdminJWTKey)
	if len(adminJWTKey) == 0 {
		adminJWTKey = randomKey()
		log.Println("ADMIN_JWT_KEY not set, generated an ephemeral key")
	}

	// Initialize handlers
	csrfGen := security.NewCSRFGenerator(string(adminJWTKey))
	settings := handlers.NewSettingsReader(settingsRepo)
	middleware := handlers.NewMiddleware(profileService, csrfGen, adminJWTKey)
	authHandler := handlers.NewAuthHandler(profileService, settingsRepo, settings, middleware, templates)
	learnHandler := handlers.NewLearnHandler(quizService, ledgerService, settings, middleware, templates)
	quizHandler := handlers.NewQuizHandler(quizService, settings, middleware, templates, cfg.RewardMinutes)
	playHandler := handlers.NewPlayHandler(ledgerService, timekeeper, settings, middleware, templates)
	gamesHandler := handlers.NewGamesHandler(timekeeper, settings, middleware, templates)
	adminHandler := handlers.NewAdminHandler(profileService, scoreRepo, ledgerService, timekeeper, gamesHandler, settings, middleware, templates, adminHash, adminJWTKey)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /{$}", authHandler.Home)
	mux.HandleFunc("POST /login", middleware.RateLimitLogin(authHandler.Login))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("POST /theme", middleware.RequireUser(authHandler.ToggleTheme))

	// Learning zone
	mux.HandleFunc("GET /learn", middleware.RequireUser(learnHandler.Zone))
	mux.HandleFunc("GET /learn/multiplication", middleware.RequireUser(learnHandler.Multiplication))
	mux.HandleFunc("POST /learn/multiplication/answer", middleware.RequireUser(learnHandler.MultiplicationAnswer))
	mux.HandleFunc("GET /learn/vocabulary", middleware.RequireUser(learnHandler.Vocabulary))

	// Quizzes
	mux.HandleFunc("POST /quiz/{subject}/start", middleware.RequireUser(quizHandler.Start))
	mux.HandleFunc("GET /quiz", middleware.RequireUser(quizHandler.Show))
	mux.HandleFunc("POST /quiz/answer", middleware.RequireUser(quizHandler.Answer))
	mux.HandleFunc("GET /quiz/results", middleware.RequireUser(quizHandler.Results))

	// Entertainment zone
	mux.HandleFunc("GET /play", middleware.RequireUser(playHandler.Zone))
	mux.HandleFunc("POST /play/enter", middleware.RequireUser(playHandler.Enter))
	mux.HandleFunc("GET /play/timer", middleware.RequireUser(playHandler.Timer))
	mux.HandleFunc("POST /play/exit", middleware.RequireUser(playHandler.Exit))
	mux.HandleFunc("GET /play/tictactoe", middleware.RequireUser(gamesHandler.TicTacToe))
	mux.HandleFunc("POST /play/tictactoe/move", middleware.RequireUser(gamesHandler.TicTacToeMove))
	mux.HandleFunc("POST /play/tictactoe/reset", middleware.RequireUser(gamesHandler.TicTacToeReset))
	mux.HandleFunc("GET /play/cups", middleware.RequireUser(gamesHandler.Cups))
	mux.HandleFunc("POST /play/cups/shuffle", middleware.RequireUser(gamesHandler.CupsShuffle))
	mux.HandleFunc("POST /play/cups/guess", middleware.RequireUser(gamesHandler.CupsGuess))
	mux.HandleFunc("GET /play/snake", middleware.RequireUser(gamesHandler.Snake))

	// Admin routes
	mux.HandleFunc("GET /admin/login", adminHandler.ShowLogin)
	mux.HandleFunc("POST /admin/login", middleware.RateLimitLogin(adminHandler.Login))
	mux.HandleFunc("POST /admin/logout", adminHandler.Logout)
	mux.HandleFunc("GET /admin", middleware.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("POST /admin/profiles/{username}/minutes", middleware.RequireAdmin(adminHandler.AdjustMinutes))
	mux.HandleFunc("POST /admin/profiles/{username}/delete", middleware.RequireAdmin(adminHandler.DeleteProfile))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background maintenance
	stopMaintenance := make(chan struct{})
	go runMaintenance(stopMaintenance, profileService, ledgerService)
	go runWeeklySummary(stopMaintenance, cfg, emailService, profileRepo, scoreRepo, settingsRepo)

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
	close(stopMaintenance)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	// Checkpoint running countdowns so sessions resume from the wall
	// clock on the next start
	timekeeper.Shutdown()
	log.Println("Shutdown complete")
}

// runMaintenance sweeps expired browser sessions and finalizes play
// sessions whose time ran out while no countdown was live
func runMaintenance(stop <-chan struct{}, profileService *service.ProfileService, ledgerService *ledger.Service) {
	sessionTicker := time.NewTicker(1 * time.Hour)
	defer sessionTicker.Stop()
	reaperTicker := time.NewTicker(1 * time.Minute)
	defer reaperTicker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-sessionTicker.C:
			if err := profileService.CleanupExpiredSessions(); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		case <-reaperTicker.C:
			finalized, err := ledgerService.FinalizeExpired()
			if err != nil {
				log.Printf("Error finalizing expired play sessions: %v", err)
			} else if finalized > 0 {
				log.Printf("Finalized %d expired play sessions", finalized)
			}
		}
	}
}

const lastSummarySetting = "last_summary_sent"

// runWeeklySummary emails the parent a progress report once a week
func runWeeklySummary(stop <-chan struct{}, cfg *config.Config, emailService *service.EmailService, profileRepo *repository.ProfileRepository, scoreRepo *repository.ScoreRepository, settingsRepo *repository.SettingsRepository) {
	if !emailService.IsEnabled() || cfg.ParentEmail == "" {
		return
	}

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := time.Now()
			lastSent := now.Add(-7 * 24 * time.Hour)
			if raw, found, err := settingsRepo.Get(lastSummarySetting); err != nil {
				log.Printf("Error reading last summary time: %v", err)
				continue
			} else if found {
				if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
					lastSent = parsed
				}
			}
			if now.Sub(lastSent) < 7*24*time.Hour {
				continue
			}

			summaries, err := service.BuildWeeklySummaries(profileRepo, scoreRepo, lastSent)
			if err != nil {
				log.Printf("Error building weekly summaries: %v", err)
				continue
			}
			if err := emailService.SendWeeklySummary(context.Background(), cfg.ParentEmail, now, summaries); err != nil {
				log.Printf("Error sending weekly summary: %v", err)
				continue
			}
			if err := settingsRepo.Set(lastSummarySetting, now.Format(time.RFC3339)); err != nil {
				log.Printf("Error recording summary time: %v", err)
			}
		}
	}
}

// randomKey generates an ephemeral signing key
func randomKey() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}
	return []byte(hex.EncodeToString(buf))
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	patterns := []string{
		filepath.Join(templatesPath, "*.tmpl"),
	}

	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"until": func(count int) []int {
			result := make([]int, count)
			for i := 0; i < count; i++ {
				result[i] = i
			}
			return result
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
