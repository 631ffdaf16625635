package orchestrator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/extkit-labs/extkit/internal/editor"
	"github.com/extkit-labs/extkit/internal/extid"
	"github.com/extkit-labs/extkit/internal/manifest"
	"github.com/extkit-labs/extkit/internal/reconcile"
	"go.uber.org/zap"
)

// Orchestrator runs install plans against an editor.
type Orchestrator struct {
	Editor editor.CLI
	Log    *zap.Logger
	Out    io.Writer
}

// New returns an Orchestrator. A nil out discards progress output.
func New(ed editor.CLI, log *zap.Logger, out io.Writer) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Orchestrator{Editor: ed, Log: log, Out: out}
}

// Outcome records one install attempt.
type Outcome struct {
	Target Target
	Output *editor.Output
	Err    error
}

// OK reports whether the install exited zero.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Output.OK()
}

// Result summarizes an install run.
type Result struct {
	Plan     *Plan
	Outcomes []Outcome
	DryRun   bool
}

// Installed counts successful installs.
func (r *Result) Installed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed counts installs that errored or exited non-zero.
func (r *Result) Failed() int {
	return len(r.Outcomes) - r.Installed()
}

// Options controls InstallOne and InstallGroup. With DryRun the plan is
// printed and the editor is never asked to install.
type Options struct {
	Force  bool
	DryRun bool
}

// Installed queries the editor and parses its installed extensions.
func (o *Orchestrator) Installed(ctx context.Context) ([]extid.Identity, error) {
	raw, err := o.Editor.ListInstalled(ctx)
	if err != nil {
		return nil, err
	}
	return extid.ParseAll(raw), nil
}

// Report builds the reconciliation report for a manifest.
func (o *Orchestrator) Report(ctx context.Context, m *manifest.Manifest) (*reconcile.Report, error) {
	installed, err := o.Installed(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.Build(m.Entries, installed), nil
}

// InstallOne installs a single extension unless it is already installed at
// the requested version. Force reinstalls unconditionally.
func (o *Orchestrator) InstallOne(ctx context.Context, raw string, opts Options) (*Result, error) {
	id := extid.Parse(raw)
	if !id.Valid() {
		o.Log.Warn("extension identity must look like vendor.name[@version], skipping", zap.String("extension", raw))
		return &Result{Plan: &Plan{Pattern: raw}, DryRun: opts.DryRun}, nil
	}

	installed, err := o.Installed(ctx)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Pattern: raw}
	current, haveName := extid.Find(installed, id, false)
	switch {
	case extid.Contains(installed, id, true) && !opts.Force:
		o.Log.Info("extension is already installed; use --force to reinstall", zap.String("extension", id.String()))
		plan.SkipCount = 1
	case extid.Contains(installed, id, true):
		plan.Targets = []Target{{Entry: raw, ID: id, Reason: ReasonForced, Installed: &current}}
	case haveName && opts.Force:
		plan.Targets = []Target{{Entry: raw, ID: id, Reason: ReasonMismatch, Installed: &current}}
	default:
		plan.Targets = []Target{{Entry: raw, ID: id, Reason: ReasonDirect}}
	}

	if opts.DryRun {
		PrintPlan(o.Out, plan)
		return &Result{Plan: plan, DryRun: true}, nil
	}
	return o.Execute(ctx, plan), nil
}

// InstallGroup reconciles the manifest against the editor and installs the
// selected entries.
func (o *Orchestrator) InstallGroup(ctx context.Context, m *manifest.Manifest, pattern string, opts Options) (*Result, error) {
	report, err := o.Report(ctx, m)
	if err != nil {
		return nil, err
	}

	plan := PlanGroup(m.Group, m.Entries, report, pattern, opts.Force)
	if pattern != PatternAll && !containsEntry(m.Entries, pattern) {
		o.Log.Warn("pattern matches no entry in group",
			zap.String("group", m.Group),
			zap.String("pattern", pattern))
	}

	if opts.DryRun {
		PrintPlan(o.Out, plan)
		return &Result{Plan: plan, DryRun: true}, nil
	}
	return o.Execute(ctx, plan), nil
}

// Execute runs every target of plan in order. Failures are logged and the
// run continues with the next target.
func (o *Orchestrator) Execute(ctx context.Context, plan *Plan) *Result {
	result := &Result{Plan: plan}

	for _, t := range plan.Targets {
		if err := ctx.Err(); err != nil {
			o.Log.Warn("install run cancelled", zap.Error(err))
			break
		}

		out, err := o.Editor.Install(ctx, t.ID, editor.InstallOptions{Force: t.Force()})
		outcome := Outcome{Target: t, Output: out, Err: err}
		result.Outcomes = append(result.Outcomes, outcome)

		fields := []zap.Field{
			zap.String("extension", t.ID.String()),
			zap.String("reason", string(t.Reason)),
		}
		switch {
		case err != nil:
			o.Log.Error("install failed", append(fields, zap.Error(err))...)
			fmt.Fprintf(o.Out, "  \u2717 %s (%v)\n", t.ID, err)
		case !out.OK():
			o.Log.Warn("install exited non-zero", append(fields,
				zap.Int("exit_code", out.ExitCode),
				zap.String("output", combined(out)))...)
			fmt.Fprintf(o.Out, "  \u2717 %s (exit %d)\n", t.ID, out.ExitCode)
		default:
			o.Log.Info("install result", append(fields, zap.String("output", combined(out)))...)
			fmt.Fprintf(o.Out, "  \u2713 %s\n", t.ID)
		}
	}
	return result
}

// PrintSummary writes the closing line of an install run.
func PrintSummary(w io.Writer, r *Result) {
	if r.DryRun {
		fmt.Fprintln(w, "Dry run: nothing was installed.")
		return
	}
	fmt.Fprintf(w, "Installed %d extensions.", r.Installed())
	if f := r.Failed(); f > 0 {
		fmt.Fprintf(w, " %d failed.", f)
	}
	if r.Plan != nil && r.Plan.SkipCount > 0 {
		fmt.Fprintf(w, " %d skipped.", r.Plan.SkipCount)
	}
	fmt.Fprintln(w)
}

func combined(out *editor.Output) string {
	if out == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(out.Stdout) + "\n" + strings.TrimSpace(out.Stderr))
}

func containsEntry(entries []string, entry string) bool {
	for _, e := range entries {
		if e == entry {
			return true
		}
	}
	return false
}
