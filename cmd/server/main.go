package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/config"
	"github.com/jaydipchangani/project-management-backend/internal/constants"
	"github.com/jaydipchangani/project-management-backend/internal/database"
	"github.com/jaydipchangani/project-management-backend/internal/handlers"
	"github.com/jaydipchangani/project-management-backend/internal/repository"
	"github.com/jaydipchangani/project-management-backend/internal/services"
	"github.com/jaydipchangani/project-management-backend/internal/storage"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Project management API server",
	RunE:  runServer,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE:  runMigrate,
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create or promote the bootstrap admin from ADMIN_EMAIL and ADMIN_PASSWORD",
	RunE:  runSeedAdmin,
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDatabase loads configuration, connects and migrates
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := database.MigrateDatabase(db); err != nil {
		return nil, nil, err
	}

	return cfg, db, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, _, err := openDatabase()
	return err
}

func runSeedAdmin(cmd *cobra.Command, args []string) error {
	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	return seedAdmin(cmd.Context(), cfg, db)
}

func seedAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	auth := services.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL)
	admin, created, err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		log.Printf("Created admin user %s", admin.Email)
	}
	return nil
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := seedAdmin(cmd.Context(), cfg, db); err != nil {
			return err
		}
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return err
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activity := services.NewActivityService(repository.NewActivityLogRepository(db))

	svc := handlers.Services{
		Auth:      services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL),
		Projects:  services.NewProjectService(projectRepo, userRepo, activity, store),
		Tasks:     services.NewTaskService(taskRepo, projectRepo, userRepo, activity),
		Users:     services.NewUserService(userRepo),
		Dashboard: services.NewDashboardService(projectRepo, taskRepo),
	}

	// Initialize Gin router
	r := gin.Default()
	r.MaxMultipartMemory = constants.MaxUploadFiles * constants.MaxUploadSize

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessionStore, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		return fmt.Errorf("failed to create Redis store: %w", err)
	}
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Uploaded documents
	r.Static("/uploads", cfg.UploadDir)

	handlers.RegisterRoutes(r, svc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
