package cli

import (
	"os"

	"github.com/spf13/cobra"

	"skill-evolve-service/internal/app"
)

var (
	port       string
	configPath string
	playerID   string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "8080"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "skill-evolve",
		Short:        "Skill-evolution quiz game served over WebSocket",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port to listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&playerID, "player", app.DefaultSlot, "save slot to inspect or reset")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewStatusCmd(&configPath, &playerID))
	cmd.AddCommand(NewResetCmd(&configPath, &playerID))
	return cmd
}
