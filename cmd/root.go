package cmd

import (
	"os"

	"opsnz/metasync/cmd/commands/audit"
	"opsnz/metasync/cmd/commands/auth"
	cfgcmd "opsnz/metasync/cmd/commands/config"
	"opsnz/metasync/cmd/commands/zone"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "metasync",
		Short: "A CLI tool for syncing DNS zones with the Metaname API",
		Long: `metasync is a command-line tool for inspecting and syncing DNS zones
hosted on Metaname. It talks to the Metaname JSON-RPC API and supports
listing records, exporting zones, and applying record changes with an
audit trail.

Quick start:
  metasync auth login              # Store your account reference and API token
  metasync zone records example.nz # List the records in a zone
  metasync zone create example.nz --name www --type A --value 203.0.113.10
  metasync audit list              # Review recent changes`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(zone.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
