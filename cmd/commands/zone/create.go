package zone

import (
	"fmt"
	"time"

	"opsnz/metasync/internal/auditlog"
	"opsnz/metasync/internal/zonesync"

	"github.com/spf13/cobra"
)

// CreateCommand returns the "zone create" subcommand.
func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <domain>",
		Short: "Create a record in a zone",
		Long: `Create a new record in the given zone.

Examples:
  metasync zone create example.nz --name www --type A --value 203.0.113.10
  metasync zone create example.nz --type MX --value mail.example.nz --priority 10
  metasync zone create example.nz --name _dmarc --type TXT --value "v=DMARC1; p=none"`,
		Args: cobra.ExactArgs(1),
		Run:  runCreate,
	}

	addRecordFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) {
	domainName := args[0]

	rr, err := recordFromFlags(cmd, domainName)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	syncer, err := newSyncer(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	recorder, closeRecorder := openRecorder(cmd)
	defer closeRecorder()

	change := zonesync.Change{Kind: zonesync.ChangeCreate, New: rr}

	start := time.Now()
	_, err = syncer.Apply(cmd.Context(), domainName, []zonesync.Change{change})
	took := time.Since(start)

	if err != nil {
		recorder.RecordChange(domainName, change, auditlog.OutcomeError, err.Error(), took)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error creating record: %v\n", err)
		return
	}

	recorder.RecordChange(domainName, change, auditlog.OutcomeSuccess, "", took)
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", describeRecord(domainName, rr))
}
