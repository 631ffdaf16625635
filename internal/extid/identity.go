package extid

import (
	"strings"
)

// Identity identifies an editor extension. Vendor and Name are always
// lower-cased; Version is empty when the source string carried none.
type Identity struct {
	Vendor  string
	Name    string
	Version string
}

// Parse splits s on the first "@" to separate an optional version, then the
// remainder on the first "." to separate vendor from name.
// A string without a "." yields an Identity with an empty Name; use Valid to
// detect that.
func Parse(s string) Identity {
	s = strings.TrimSpace(s)

	base, version, _ := strings.Cut(s, "@")
	vendor, name, _ := strings.Cut(base, ".")

	return Identity{
		Vendor:  strings.ToLower(vendor),
		Name:    strings.ToLower(name),
		Version: version,
	}
}

// ParseAll parses every raw string in order.
func ParseAll(raw []string) []Identity {
	ids := make([]Identity, 0, len(raw))
	for _, s := range raw {
		ids = append(ids, Parse(s))
	}
	return ids
}

// Valid reports whether both vendor and name are present.
func (id Identity) Valid() bool {
	return id.Vendor != "" && id.Name != ""
}

// Equal compares vendor and name, and the version too when compareVersion
// is true.
func (id Identity) Equal(other Identity, compareVersion bool) bool {
	if id.Vendor != other.Vendor || id.Name != other.Name {
		return false
	}
	return !compareVersion || id.Version == other.Version
}

// WithoutVersion renders vendor.name.
func (id Identity) WithoutVersion() string {
	return id.Vendor + "." + id.Name
}

// String renders vendor.name@version, or vendor.name when unversioned.
func (id Identity) String() string {
	if id.Version == "" {
		return id.WithoutVersion()
	}
	return id.WithoutVersion() + "@" + id.Version
}

// Find returns the first identity in set equal to id under the given
// comparison mode.
func Find(set []Identity, id Identity, compareVersion bool) (Identity, bool) {
	for _, candidate := range set {
		if candidate.Equal(id, compareVersion) {
			return candidate, true
		}
	}
	return Identity{}, false
}

// Contains reports whether set holds an identity equal to id.
func Contains(set []Identity, id Identity, compareVersion bool) bool {
	_, ok := Find(set, id, compareVersion)
	return ok
}
