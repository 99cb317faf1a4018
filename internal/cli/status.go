package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// NewStatusCmd prints a player's saved progress as JSON.
func NewStatusCmd(configPath, player *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show saved progress for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			report, err := service.Inspect(cmd.Context(), *player)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}
