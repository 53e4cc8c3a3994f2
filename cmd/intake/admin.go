package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/webjhones/requirements-intake/internal/config"
	"github.com/webjhones/requirements-intake/internal/db"
	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/observability"
	"github.com/webjhones/requirements-intake/internal/summary"
	"github.com/webjhones/requirements-intake/internal/types"
)

var (
	adminEmail    string
	adminPassword string

	submissionsService string
	submissionsLimit   int
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account for the submissions API",
	Long: `Create an admin account. The password is read from --password or, when
omitted, from the ADMIN_PASSWORD environment variable.`,
	RunE: runCreateAdmin,
}

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List stored submissions",
	RunE:  runListSubmissions,
}

var submissionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the summary of one stored submission",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowSubmission,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin e-mail (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (default: $ADMIN_PASSWORD)")
	_ = createAdminCmd.MarkFlagRequired("email")

	submissionsCmd.Flags().StringVar(&submissionsService, "service", "", "Only list submissions for this service id")
	submissionsCmd.Flags().IntVar(&submissionsLimit, "limit", db.DefaultListLimit, "Maximum number of submissions")
	submissionsCmd.AddCommand(submissionShowCmd)

	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(submissionsCmd)
}

// openDB connects to DATABASE_URL and makes sure the schema exists.
func openDB(ctx context.Context) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	if adminPassword == "" {
		adminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	req := types.CreateAdminRequest{Email: adminEmail, Password: adminPassword}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid admin: %w", err)
	}

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	if err := passwords.CheckStrength(req.Password); err != nil {
		return err
	}
	hash, err := passwords.HashPassword(req.Password)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := database.CreateAdmin(ctx, req.Email, hash)
	if errors.Is(err, db.ErrAdminExists) {
		return fmt.Errorf("an admin with e-mail %s already exists", req.Email)
	}
	if err != nil {
		return err
	}

	log.Info().Str("admin_id", id.String()).Str("email", req.Email).Msg("admin created")
	return nil
}

func runListSubmissions(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	submissions, err := database.ListSubmissions(ctx, db.SubmissionFilter{
		ServiceID: submissionsService,
		Limit:     submissionsLimit,
	})
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintSubmissions(submissions)
	return nil
}

func runShowSubmission(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid submission id %q: %w", args[0], err)
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	sub, err := database.GetSubmission(ctx, id)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("submission %s not found", id)
	}

	rec := summary.FromCompletion(cat, intake.Completion{
		Profile:     sub.Profile,
		ServiceID:   sub.ServiceID,
		ServiceName: sub.ServiceName,
		Answers:     sub.Answers,
	}, sub.CreatedAt)
	observability.NewPrinter(os.Stdout).PrintSummary(&rec)
	return nil
}
