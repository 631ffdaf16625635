package reconcile

import (
	"fmt"
	"io"

	"github.com/extkit-labs/extkit/internal/extid"
)

// PrintReport writes the three partitions of a group report.
func PrintReport(w io.Writer, group string, r *Report) {
	fmt.Fprintf(w, "%s installed extensions (%d):\n", group, len(r.Compatible))
	for _, e := range r.Compatible {
		fmt.Fprintf(w, "  ✓ %s\n", e)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s installed with a different version (%d):\n", group, len(r.Incompatible))
	for _, m := range r.Incompatible {
		line := fmt.Sprintf("  ~ installed: %s, wanted version: %s", m.Installed, displayVersion(m.Wanted))
		if drift := extid.Drift(m.Installed, m.Wanted); drift == extid.DriftOlder || drift == extid.DriftNewer {
			line += fmt.Sprintf(" (installed is %s)", drift)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s not installed (%d):\n", group, len(r.Missing))
	for _, e := range r.Missing {
		fmt.Fprintf(w, "  ✗ %s\n", e)
	}
}

func displayVersion(id extid.Identity) string {
	if id.Version == "" {
		return "any"
	}
	return id.Version
}
