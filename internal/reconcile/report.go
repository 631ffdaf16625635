package reconcile

import (
	"github.com/extkit-labs/extkit/internal/extid"
)

// Mismatch is a manifest entry whose extension is installed at a different
// version than the one requested.
type Mismatch struct {
	Entry     string
	Wanted    extid.Identity
	Installed extid.Identity
}

// Report partitions one group's manifest entries. Every entry appears in
// exactly one of the three lists, in manifest order.
type Report struct {
	// Compatible entries fully match an installed extension.
	Compatible []string
	// Incompatible entries name-match an installed extension whose version
	// differs.
	Incompatible []Mismatch
	// Missing entries have no installed extension with the same name.
	Missing []string
}

// Build computes the report for entries against the installed set.
func Build(entries []string, installed []extid.Identity) *Report {
	r := &Report{}
	for _, entry := range entries {
		wanted := extid.Parse(entry)

		if extid.Contains(installed, wanted, true) {
			r.Compatible = append(r.Compatible, entry)
			continue
		}
		if got, ok := extid.Find(installed, wanted, false); ok {
			r.Incompatible = append(r.Incompatible, Mismatch{
				Entry:     entry,
				Wanted:    wanted,
				Installed: got,
			})
			continue
		}
		r.Missing = append(r.Missing, entry)
	}
	return r
}

// Len returns the number of entries the report covers.
func (r *Report) Len() int {
	return len(r.Compatible) + len(r.Incompatible) + len(r.Missing)
}

// Unmanaged returns installed entries that name-match none of the managed
// entries, ignoring versions.
func Unmanaged(installed, managed []string) []string {
	managedIDs := extid.ParseAll(managed)

	var out []string
	for _, raw := range installed {
		if !extid.Contains(managedIDs, extid.Parse(raw), false) {
			out = append(out, raw)
		}
	}
	return out
}
