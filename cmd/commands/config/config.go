package config

import (
	"opsnz/metasync/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage metasync configuration",
		Long: "View and modify persistent metasync settings.\n\n" +
			"Configuration is stored at ~/.config/metasync/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
