package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/OrderSheet/internal/admin"
	"github.com/JonMunkholm/OrderSheet/internal/config"
	"github.com/JonMunkholm/OrderSheet/internal/state"
)

// openConfiguredStore opens the store the server is configured with, reading
// .env the same way the server does.
func openConfiguredStore(ctx context.Context) (*config.Config, state.Store, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	store, closeFn, err := admin.OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, store, closeFn, nil
}

func newPurgeCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete wizard states nobody touched for a while",
		Long: `Purge removes saved wizard states older than --older-than from the store
configured by STORE_DRIVER. Without the flag STATE_RETENTION_DAYS applies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, store, closeFn, err := openConfiguredStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			age := olderThan
			if age <= 0 {
				age = time.Duration(cfg.Retention.Days) * 24 * time.Hour
			}
			n, err := admin.Purge(ctx, store, age, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d state(s) older than %s\n", n, age)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Age threshold, e.g. 720h")
	return cmd
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session>...",
		Short: "Discard the wizard state of the given sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, store, closeFn, err := openConfiguredStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := admin.ResetSessions(ctx, store, args...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %d session(s)\n", len(args))
			return nil
		},
	}
}
