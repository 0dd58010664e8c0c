package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foodpulse/foodpulse/internal/infrastructure/storage"
)

// NewInitDBCmd creates the database schema.
func NewInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitDB(cmd.Context())
		},
	}
}

func runInitDB(ctx context.Context) error {
	cfg, logCloser, err := setup()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Str("database", cfg.DatabasePath).Msg("database initialized")
	return nil
}
