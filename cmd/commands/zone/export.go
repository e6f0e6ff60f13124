package zone

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"opsnz/metasync/internal/util"
	"opsnz/metasync/internal/zonesync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// exportConcurrency caps how many zones are fetched at once.
const exportConcurrency = 4

// exportedRecord is the JSON shape of one record set in an export.
type exportedRecord struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	TTL    int      `json:"ttl"`
	Values []string `json:"values"`
}

// ExportCommand returns the "zone export" subcommand.
func ExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <domain>...",
		Short: "Export one or more zones as JSON",
		Long: `Fetch the given zones and print them as a single JSON document keyed
by domain. Zones are fetched concurrently.

Examples:
  metasync zone export example.nz
  metasync zone export example.nz example.co.nz > zones.json`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runExport,
		SilenceUsage: true,
	}

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	for _, domainName := range args {
		if err := util.ValidateDomainName(domainName); err != nil {
			return err
		}
	}

	syncer, err := newSyncer(cmd)
	if err != nil {
		return err
	}

	zones := make(map[string][]exportedRecord, len(args))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(exportConcurrency)

	for _, domainName := range args {
		group.Go(func() error {
			buffer := zonesync.NewZoneBuffer(domainName)
			if _, err := syncer.Populate(ctx, buffer); err != nil {
				return fmt.Errorf("%s: %w", domainName, err)
			}

			records := make([]exportedRecord, 0, len(buffer.Records))
			for _, rr := range buffer.Records {
				name := rr.Name
				if name == "" {
					name = "@"
				}
				records = append(records, exportedRecord{
					Name:   name,
					Type:   string(rr.Type),
					TTL:    rr.TTL,
					Values: rr.DisplayValues(),
				})
			}
			sort.SliceStable(records, func(i, j int) bool {
				if records[i].Name != records[j].Name {
					return records[i].Name < records[j].Name
				}
				return records[i].Type < records[j].Type
			})

			mu.Lock()
			zones[domainName] = records
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(zones)
}
