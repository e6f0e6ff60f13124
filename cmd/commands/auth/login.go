package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"opsnz/metasync/internal/services/auth"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store Metaname credentials in the local keychain",
		Long: `Store your Metaname account reference and API token in the local keychain.

Both values are available under "API access" in your Metaname account
settings. The token is read without echo; pass --token to skip the prompt.

Example:
  metasync auth login`,
		Run: func(cmd *cobra.Command, args []string) {
			accountRef, err := cmd.Flags().GetString("account-ref")
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}

			accountRef = strings.TrimSpace(accountRef)
			if accountRef == "" {
				fmt.Fprint(os.Stdout, "Enter account reference: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					return
				}
				accountRef = strings.TrimSpace(line)
			}

			if accountRef == "" {
				fmt.Fprintln(os.Stderr, "account reference cannot be empty")
				return
			}

			token, err := cmd.Flags().GetString("token")
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}

			token = strings.TrimSpace(token)
			if token == "" {
				fmt.Fprint(os.Stdout, "Enter API token: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stdout)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					return
				}
				token = strings.TrimSpace(string(bytes))
			}

			if token == "" {
				fmt.Fprintln(os.Stderr, "token cannot be empty")
				return
			}

			store := auth.DefaultStore()
			if err := store.SetSecret(auth.KeyAccountRef, accountRef); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			if err := store.SetSecret(auth.KeyAPIToken, token); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}

			fmt.Fprintf(os.Stdout, "Saved credentials for account %s\n", accountRef)
		},
	}

	cmd.Flags().String("account-ref", "", "Metaname account reference (optional, overrides prompt)")
	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")

	return cmd
}
