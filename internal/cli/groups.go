package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/extkit-labs/extkit/internal/settings"
	"github.com/spf13/cobra"
)

// groupEntry represents a group manifest for display.
type groupEntry struct {
	Group       string `json:"group"`
	Extensions  int    `json:"extensions"`
	Manifest    string `json:"manifest"`
	HasSettings bool   `json:"has_settings"`
}

func newGroupsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List available extension groups",
		Long:  `List every <group>.txt manifest in the extensions directory, with its entry count and whether recommended settings exist.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifests, err := a.manifests().Discover()
			if err != nil {
				return err
			}

			if len(manifests) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No group manifests found in %s\n", a.cfg.ExtensionsDir)
				return nil
			}

			entries := make([]groupEntry, 0, len(manifests))
			for _, m := range manifests {
				_, err := os.Stat(settings.GroupPath(a.cfg.SettingsDir, m.Group))
				entries = append(entries, groupEntry{
					Group:       m.Group,
					Extensions:  len(m.Entries),
					Manifest:    m.Path,
					HasSettings: err == nil,
				})
			}

			if asJSON {
				return printGroupsJSON(cmd, entries)
			}
			return printGroupsTable(cmd, entries)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func printGroupsTable(cmd *cobra.Command, entries []groupEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "GROUP\tEXTENSIONS\tSETTINGS")
	for _, e := range entries {
		hasSettings := "-"
		if e.HasSettings {
			hasSettings = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Group, e.Extensions, hasSettings)
	}
	return w.Flush()
}

func printGroupsJSON(cmd *cobra.Command, entries []groupEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
