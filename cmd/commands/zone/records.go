package zone

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"opsnz/metasync/internal/tui"
	"opsnz/metasync/internal/util"
	"opsnz/metasync/internal/zonesync"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// RecordsCommand returns the "zone records" subcommand.
func RecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records <domain>",
		Short: "List the records in a zone",
		Long: `List the record sets in the given zone. Records with the same name,
type, and TTL are grouped together.

Examples:
  metasync zone records example.nz
  metasync zone records example.nz --type A`,
		Args: cobra.ExactArgs(1),
		Run:  runRecords,
	}

	cmd.Flags().String("type", "", "Filter records by type (A, AAAA, CNAME, MX, NS, TXT, CAA)")
	cmd.Flags().Bool("plain", false, "Force plain table output even in a terminal")

	return cmd
}

func runRecords(cmd *cobra.Command, args []string) {
	domainName := args[0]
	typeFilter, _ := cmd.Flags().GetString("type")
	plain, _ := cmd.Flags().GetBool("plain")

	if err := util.ValidateDomainName(domainName); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	syncer, err := newSyncer(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
		load := func(ctx context.Context) ([]zonesync.RRSet, error) {
			buffer := zonesync.NewZoneBuffer(domainName)
			if _, err := syncer.Populate(ctx, buffer); err != nil {
				return nil, err
			}
			return buffer.Records, nil
		}
		if err := tui.RunZoneRecords(domainName, load); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error running TUI: %v\n", err)
		}
		return
	}

	buffer := zonesync.NewZoneBuffer(domainName)
	if _, err := syncer.Populate(context.Background(), buffer); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error listing records: %v\n", err)
		return
	}

	records := buffer.Records
	if typeFilter != "" {
		filtered := records[:0]
		for _, rr := range records {
			if strings.EqualFold(string(rr.Type), typeFilter) {
				filtered = append(filtered, rr)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tTTL\tVALUE")
	fmt.Fprintln(w, "----\t----\t---\t-----")

	for _, rr := range records {
		name := rr.Name
		if name == "" {
			name = "@"
		}
		for i, value := range rr.DisplayValues() {
			if i == 0 {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, rr.Type, rr.TTL, value)
			} else {
				fmt.Fprintf(w, "\t\t\t%s\n", value)
			}
		}
	}

	w.Flush()
}
