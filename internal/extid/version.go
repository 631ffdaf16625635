package extid

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DriftKind describes how an installed version relates to a wanted one.
type DriftKind string

const (
	DriftSame    DriftKind = "same"
	DriftOlder   DriftKind = "older"
	DriftNewer   DriftKind = "newer"
	DriftUnknown DriftKind = "unknown"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// A leading "v" is tolerated on either side.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// Drift classifies the installed identity's version against the wanted one.
// Either side lacking a parseable version yields DriftUnknown.
func Drift(installed, wanted Identity) DriftKind {
	if installed.Version == "" || wanted.Version == "" {
		return DriftUnknown
	}
	cmp, err := CompareVersions(installed.Version, wanted.Version)
	if err != nil {
		return DriftUnknown
	}
	switch cmp {
	case -1:
		return DriftOlder
	case 1:
		return DriftNewer
	default:
		return DriftSame
	}
}

func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
