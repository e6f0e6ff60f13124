package auth

import (
	"errors"
	"fmt"
	"os"

	"opsnz/metasync/internal/config"
	"opsnz/metasync/internal/metaname"
	"opsnz/metasync/internal/secrets"
	"opsnz/metasync/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which Metaname credentials are available",
		Long: `Show which Metaname credentials are stored in the keychain and which
are being supplied through environment variables, then verify them
against the API.

Example:
  metasync auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()

			entries := []struct {
				label string
				key   string
				env   string
			}{
				{"account reference", auth.KeyAccountRef, secrets.EnvAccountRef},
				{"API token", auth.KeyAPIToken, secrets.EnvAPIToken},
			}

			for _, entry := range entries {
				if _, ok := os.LookupEnv(entry.env); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: set via %s\n", entry.label, entry.env)
					continue
				}

				_, err := store.GetSecret(entry.key)
				switch {
				case err == nil:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: stored in keychain\n", entry.label)
				case errors.Is(err, auth.ErrSecretNotFound):
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not set\n", entry.label)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", entry.label, err)
				}
			}

			source := secrets.NewSource(secrets.WithResolver(secrets.KeyringResolver(store)))
			accountRef, apiToken, err := source.Credentials()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "verification: skipped (credentials incomplete)")
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			baseURL, err := cfg.EndpointURL()
			if err != nil {
				return err
			}

			client := metaname.New(accountRef, apiToken, metaname.WithBaseURL(baseURL))
			if _, err := client.Ping(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "verification: failed (%v)\n", err)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "verification: ok")
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
