package orchestrator

import (
	"fmt"
	"io"

	"github.com/extkit-labs/extkit/internal/extid"
	"github.com/extkit-labs/extkit/internal/reconcile"
)

// PatternAll selects every entry of a group.
const PatternAll = "*"

// Reason explains why a target is in a plan.
type Reason string

const (
	ReasonMissing  Reason = "missing"
	ReasonMismatch Reason = "version-mismatch"
	ReasonDirect   Reason = "direct"
	ReasonForced   Reason = "forced"
)

// Target is one install the plan will perform.
type Target struct {
	Entry  string
	ID     extid.Identity
	Reason Reason
	// Installed is the currently installed identity for mismatch and
	// forced targets.
	Installed *extid.Identity
}

// Force reports whether the editor must be told to reinstall.
func (t Target) Force() bool {
	return t.Reason == ReasonMismatch || t.Reason == ReasonForced
}

// Plan is the ordered list of installs for one invocation.
type Plan struct {
	Group     string
	Pattern   string
	Targets   []Target
	Report    *reconcile.Report
	SkipCount int
}

// Matches reports whether a raw manifest entry is selected by pattern.
func Matches(pattern, entry string) bool {
	return pattern == PatternAll || pattern == entry
}

// PlanGroup selects the installs for a group. Missing entries matching
// pattern are always selected; version-mismatched entries matching pattern
// are selected only when force is set. Targets follow manifest order, and
// entries naming the same identity are planned once.
func PlanGroup(group string, entries []string, report *reconcile.Report, pattern string, force bool) *Plan {
	missing := make(map[string]bool, len(report.Missing))
	for _, e := range report.Missing {
		missing[e] = true
	}
	mismatched := make(map[string]reconcile.Mismatch, len(report.Incompatible))
	for _, m := range report.Incompatible {
		mismatched[m.Entry] = m
	}

	plan := &Plan{Group: group, Pattern: pattern, Report: report}
	planned := make(map[string]bool)

	for _, entry := range entries {
		key := extid.Parse(entry).String()
		if planned[key] || !Matches(pattern, entry) {
			continue
		}
		planned[key] = true

		if missing[entry] {
			plan.Targets = append(plan.Targets, Target{
				Entry:  entry,
				ID:     extid.Parse(entry),
				Reason: ReasonMissing,
			})
			continue
		}

		if m, ok := mismatched[entry]; ok && force {
			installed := m.Installed
			plan.Targets = append(plan.Targets, Target{
				Entry:     entry,
				ID:        m.Wanted,
				Reason:    ReasonMismatch,
				Installed: &installed,
			})
			continue
		}

		plan.SkipCount++
	}
	return plan
}

// PrintPlan writes the plan summary.
func PrintPlan(w io.Writer, plan *Plan) {
	if plan.Group != "" {
		fmt.Fprintf(w, "Group %s, pattern %q:\n", plan.Group, plan.Pattern)
	}
	if len(plan.Targets) == 0 {
		fmt.Fprintln(w, "  Nothing to install.")
	}
	for _, t := range plan.Targets {
		switch t.Reason {
		case ReasonMismatch:
			fmt.Fprintf(w, "  ~ %s (reinstall over %s)\n", t.ID, t.Installed)
		case ReasonForced:
			fmt.Fprintf(w, "  ~ %s (forced reinstall)\n", t.ID)
		default:
			fmt.Fprintf(w, "  + %s\n", t.ID)
		}
	}
	if plan.SkipCount > 0 {
		fmt.Fprintf(w, "  (%d extensions already installed or not selected, will be skipped)\n", plan.SkipCount)
	}
}
