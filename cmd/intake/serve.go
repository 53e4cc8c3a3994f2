package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/config"
	"github.com/webjhones/requirements-intake/internal/db"
	"github.com/webjhones/requirements-intake/internal/export"
	"github.com/webjhones/requirements-intake/internal/rendering"
	"github.com/webjhones/requirements-intake/internal/server"
	"github.com/webjhones/requirements-intake/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the intake HTTP server",
	Long: `Start an HTTP server exposing the service catalog, the intake wizard
sessions, summary exports and, when DATABASE_URL is set, the admin API.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	renderer, err := rendering.NewRenderer(cfg.SummaryTemplate)
	if err != nil {
		return fmt.Errorf("failed to load summary template: %w", err)
	}

	var printer export.Printer
	if cfg.PDFEnabled {
		printer = export.NewChromePrinter(cfg.PDFTimeout)
	}
	exporter := export.NewExporter(renderer, printer, export.Options{
		ContactEmail:  cfg.ContactEmail,
		WhatsAppPhone: cfg.WhatsAppPhone,
	})

	deps := server.Dependencies{
		Catalog:  cat,
		Renderer: renderer,
		Exporter: exporter,
	}

	if cfg.DatabaseURL != "" {
		database, jwtService, passwords, err := connectPersistence(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		deps.DB = database
		deps.JWT = jwtService
		deps.Passwords = passwords
	} else {
		log.Warn().Msg("DATABASE_URL not set: submissions will not be stored and the admin API is disabled")
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		SessionTTL:     cfg.SessionTTL,
		MaxSessions:    cfg.MaxSessions,
		RateLimit:      ratelimit.LoadConfig(),
	}, deps)
	if err != nil {
		if deps.DB != nil {
			deps.DB.Close()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info().
		Int("services", len(cat.Services())).
		Bool("pdf_enabled", exporter.PDFEnabled()).
		Bool("persistence", deps.DB != nil).
		Msg("intake server configured")

	return srv.Start()
}

// loadCatalog returns the built-in catalog, or the YAML file at path when set.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}

// connectPersistence opens the database, applies the schema and loads the
// admin authentication settings.
func connectPersistence(ctx context.Context, cfg *config.Config) (*db.DB, *server.JWTService, *config.PasswordConfig, error) {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("admin authentication: %w", err)
	}
	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("admin authentication: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	database, err := db.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.EnsureSchema(connectCtx); err != nil {
		database.Close()
		return nil, nil, nil, err
	}
	return database, server.NewJWTService(jwtConfig), passwords, nil
}
