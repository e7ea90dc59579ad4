package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nestwatch/nestwatch-api/api"
	"github.com/nestwatch/nestwatch-api/api/types"
	"github.com/nestwatch/nestwatch-api/internal/database"
	"github.com/nestwatch/nestwatch-api/internal/services/archive"
	"github.com/nestwatch/nestwatch-api/internal/services/assignments"
	sessionsService "github.com/nestwatch/nestwatch-api/internal/services/sessions"
	"github.com/nestwatch/nestwatch-api/internal/services/sheets"
	"github.com/nestwatch/nestwatch-api/pkg/config"
	"github.com/nestwatch/nestwatch-api/pkg/exif"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the NestWatch Annotation API server with the configured settings.

The server will listen for HTTP requests and WebSocket connections,
providing annotation sessions, image navigation, marking, sync, and
assignment overview endpoints.

Example:
  nestwatch-api serve
  nestwatch-api serve --port 9090
  nestwatch-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return err
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}
	if serverPort <= 0 || serverPort > 65535 {
		return fmt.Errorf("invalid server port: %d", serverPort)
	}

	deps := &types.Dependencies{}

	// Wire the annotation store backend
	var db *database.DB
	switch cfg.Store.Backend {
	case "sheets":
		client, err := sheets.NewClient(cmd.Context(), cfg.Sheets)
		if err != nil {
			return fmt.Errorf("failed to initialize sheets client: %w", err)
		}
		deps.Store = client
		deps.AssignmentService = assignments.NewService(client, cfg.Assignments.CacheTTL)
		log.Printf("[INFO] Using Google Sheets store (spreadsheet %s)", cfg.Sheets.AnnotationsSpreadsheetID)
	case "archive":
		db, err = database.InitializeWithMigrations()
		if err != nil {
			return fmt.Errorf("failed to initialize archive database: %w", err)
		}
		repo := archive.NewRepository(db)
		deps.DB = db
		deps.Store = repo
		deps.AssignmentService = assignments.NewService(repo, cfg.Assignments.CacheTTL)
		log.Printf("[INFO] Using local archive store at %s", cfg.Database.Path)
	default:
		log.Printf("[WARN] No annotation store configured; sync endpoint will be unavailable")
	}

	// Session registry with idle sweeper
	registry := sessionsService.NewService(
		sessionsService.Limits{
			MaxImages:     cfg.Session.MaxImages,
			MaxImageBytes: cfg.Session.MaxImageBytes,
		},
		cfg.Session.TTL,
		exif.CaptureTime,
		sessionsService.WithCleanupInterval(cfg.Session.CleanupInterval),
	)
	registry.Start(context.Background())
	defer registry.Stop()
	deps.Sessions = registry

	// Create and initialize the HTTP server
	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Printf("Server is ready to handle requests at %s:%d\n", serverHost, serverPort)

	// Wait for interrupt signal or server error
	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	// Create a context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Printf("[WARN] Failed to close database: %v", err)
		}
	}

	fmt.Println("Server gracefully stopped")
	return nil
}
