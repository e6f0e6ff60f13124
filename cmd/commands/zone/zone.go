package zone

import (
	"fmt"

	"opsnz/metasync/internal/auditlog"
	"opsnz/metasync/internal/config"
	"opsnz/metasync/internal/metaname"
	"opsnz/metasync/internal/secrets"
	"opsnz/metasync/internal/services/auth"
	"opsnz/metasync/internal/zonesync"

	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
)

// NewCommand returns the top-level "zone" Cobra command with all subcommands attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Inspect and modify Metaname DNS zones",
		Long: `List zone records, export zones as JSON, and create or delete records.

Credentials are read from the METANAME_ACCOUNT_REF and METANAME_API_TOKEN
environment variables, falling back to the local keychain (see
'metasync auth login').`,
	}

	cmd.AddCommand(RecordsCommand())
	cmd.AddCommand(ExportCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(DeleteCommand())

	cmd.PersistentFlags().String("endpoint", "", `API to target: "prod", "test", or a full URL (overrides config)`)
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log skipped and overwritten records to stderr")

	return cmd
}

// newSyncer builds a Syncer from the stored configuration, the --endpoint
// flag, and whatever credentials are available.
func newSyncer(cmd *cobra.Command) (*zonesync.Syncer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flag := cmd.Flag("endpoint"); flag != nil && flag.Changed {
		cfg.Endpoint = flag.Value.String()
	}

	baseURL, err := cfg.EndpointURL()
	if err != nil {
		return nil, err
	}

	source := secrets.NewSource(secrets.WithResolver(secrets.KeyringResolver(auth.DefaultStore())))
	accountRef, apiToken, err := source.Credentials()
	if err != nil {
		return nil, err
	}

	client := metaname.New(accountRef, apiToken, metaname.WithBaseURL(baseURL))

	opts := []zonesync.Option{
		zonesync.WithRetries(cfg.RetriesOrDefault()),
		zonesync.WithBackoff(cfg.RetryBackoff()),
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		errOut := cmd.ErrOrStderr()
		log := funcr.New(func(prefix, args string) {
			fmt.Fprintln(errOut, args)
		}, funcr.Options{})
		opts = append(opts, zonesync.WithLogger(log))
	}

	return zonesync.New(client, opts...), nil
}

// openRecorder opens the audit log. Failures are reported but never block
// the zone operation itself; the returned recorder degrades to a no-op.
func openRecorder(cmd *cobra.Command) (*auditlog.Recorder, func()) {
	repo, err := auditlog.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: audit log unavailable: %v\n", err)
		return auditlog.NewRecorder(nil), func() {}
	}
	return auditlog.NewRecorder(repo), func() { repo.Close() }
}
