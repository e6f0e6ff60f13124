package auth

import (
	"errors"
	"fmt"
	"os"

	"opsnz/metasync/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored Metaname credentials",
		Long: `Remove the account reference and API token from the local keychain.

Example:
  metasync auth logout`,
		Run: func(cmd *cobra.Command, args []string) {
			store := auth.DefaultStore()

			removed := false
			for _, key := range []string{auth.KeyAccountRef, auth.KeyAPIToken} {
				err := store.DeleteSecret(key)
				switch {
				case err == nil:
					removed = true
				case errors.Is(err, auth.ErrSecretNotFound):
					// nothing stored under this key
				default:
					fmt.Fprintln(os.Stderr, err)
					return
				}
			}

			if removed {
				fmt.Fprintln(os.Stdout, "Credentials removed.")
			} else {
				fmt.Fprintln(os.Stdout, "No stored credentials found.")
			}
		},
	}

	return cmd
}
