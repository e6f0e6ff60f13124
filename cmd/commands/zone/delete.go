package zone

import (
	"fmt"
	"os"
	"time"

	"opsnz/metasync/internal/auditlog"
	"opsnz/metasync/internal/zonesync"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// DeleteCommand returns the "zone delete" subcommand.
func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <domain>",
		Short: "Delete a record from a zone",
		Long: `Delete a record from the given zone. The record is matched by name,
type, and value; if no matching record exists the command is a no-op.

In an interactive terminal a confirmation is asked first; pass --yes to
skip it.

Examples:
  metasync zone delete example.nz --name www --type A --value 203.0.113.10
  metasync zone delete example.nz --type MX --value mail.example.nz --priority 10 --yes`,
		Args: cobra.ExactArgs(1),
		Run:  runDelete,
	}

	addRecordFlags(cmd)
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) {
	domainName := args[0]

	rr, err := recordFromFlags(cmd, domainName)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	interactive := !skipConfirm && term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", describeRecord(domainName, rr))).
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		if !confirmed {
			fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
			return
		}
	}

	syncer, err := newSyncer(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	recorder, closeRecorder := openRecorder(cmd)
	defer closeRecorder()

	change := zonesync.Change{Kind: zonesync.ChangeDelete, Existing: rr}

	start := time.Now()
	if interactive {
		accessible := os.Getenv("ACCESSIBLE") != ""
		var applyErr error
		spinErr := spinner.New().
			Title("Deleting record...").
			Accessible(accessible).
			Output(cmd.ErrOrStderr()).
			Action(func() {
				_, applyErr = syncer.Apply(cmd.Context(), domainName, []zonesync.Change{change})
			}).
			Run()
		if spinErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", spinErr)
			return
		}
		err = applyErr
	} else {
		_, err = syncer.Apply(cmd.Context(), domainName, []zonesync.Change{change})
	}
	took := time.Since(start)

	if err != nil {
		recorder.RecordChange(domainName, change, auditlog.OutcomeError, err.Error(), took)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error deleting record: %v\n", err)
		return
	}

	recorder.RecordChange(domainName, change, auditlog.OutcomeSuccess, "", took)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", describeRecord(domainName, rr))
}
