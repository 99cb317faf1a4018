package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCmd deletes a player's save.
func NewResetCmd(configPath, player *string) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete saved progress for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to reset %q without --yes", *player)
			}
			cfg, logger, err := loadConfigAndLogger(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			service, b, err := buildService(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer b.Close()

			if err := service.ResetProgress(cmd.Context(), *player); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "progress reset for %s\n", *player)
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm deletion")
	return cmd
}
