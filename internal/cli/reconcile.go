package cli

import (
	"fmt"
	"strings"

	"github.com/extkit-labs/extkit/internal/manifest"
	"github.com/extkit-labs/extkit/internal/orchestrator"
	"github.com/extkit-labs/extkit/internal/reconcile"
	"github.com/extkit-labs/extkit/internal/settings"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runRoot dispatches on the root flags:
//
//	-l            list installed extensions and those outside every manifest
//	-l -g G       report group G against the installed set
//	-i P -g G     install pattern P (or *) from group G, then merge settings
//	-i ID         install one extension
func runRoot(cmd *cobra.Command, a *app, f *rootFlags) error {
	workDir := ""
	if f.workDir != "" {
		resolved, err := settings.ResolveWorkspace(f.workDir)
		if err != nil {
			a.log.Error("invalid workspace directory", zap.String("dir", f.workDir), zap.Error(err))
			return nil
		}
		workDir = resolved
	}

	switch {
	case f.listInstalled && f.group == "":
		return listInstalled(cmd, a)
	case f.listInstalled:
		return listGroup(cmd, a, f.group)
	case f.install != "" && f.group != "":
		return installGroup(cmd, a, f, workDir)
	case f.install != "":
		return installOne(cmd, a, f)
	default:
		return cmd.Help()
	}
}

func listInstalled(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	installed, err := a.editor().ListInstalled(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Installed extensions (%d):\n", len(installed))
	for _, ext := range installed {
		fmt.Fprintf(out, "  %s\n", ext)
	}
	fmt.Fprintln(out)

	managed, err := a.manifests().AllEntries()
	if err != nil {
		return err
	}
	unmanaged := reconcile.Unmanaged(installed, managed)

	fmt.Fprintf(out, "Installed but not in any group manifest, ignoring version (%d):\n", len(unmanaged))
	for _, ext := range unmanaged {
		fmt.Fprintf(out, "  %s\n", ext)
	}
	return nil
}

func listGroup(cmd *cobra.Command, a *app, group string) error {
	m, err := loadGroupManifest(a, group)
	if err != nil {
		return err
	}

	report, err := a.orchestrator(cmd).Report(cmd.Context(), m)
	if err != nil {
		return err
	}
	reconcile.PrintReport(cmd.OutOrStdout(), group, report)
	return nil
}

func installGroup(cmd *cobra.Command, a *app, f *rootFlags, workDir string) error {
	m, err := loadGroupManifest(a, f.group)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !f.dryRun {
		fmt.Fprintf(out, "Installing %s extensions matching %q...\n", f.group, f.install)
	}
	result, err := a.orchestrator(cmd).InstallGroup(cmd.Context(), m, f.install, orchestrator.Options{
		Force:  f.force,
		DryRun: f.dryRun,
	})
	if err != nil {
		return err
	}
	orchestrator.PrintSummary(out, result)

	doc, err := settings.LoadGroup(a.cfg.SettingsDir, f.group, a.log)
	if err != nil {
		return err
	}
	if doc == nil || workDir == "" {
		return nil
	}

	if f.dryRun {
		fmt.Fprintf(out, "Would merge %d settings (%s) into %s\n",
			doc.Len(), strings.Join(doc.Keys(), ", "), settings.WorkspacePath(workDir))
		return nil
	}

	merged, err := settings.ApplyToWorkspace(workDir, doc, f.force, a.log)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Settings %s: %d added, %d overridden, %d skipped.\n",
		settings.WorkspacePath(workDir), len(merged.Added), len(merged.Overridden), len(merged.Skipped))
	return nil
}

func installOne(cmd *cobra.Command, a *app, f *rootFlags) error {
	result, err := a.orchestrator(cmd).InstallOne(cmd.Context(), f.install, orchestrator.Options{
		Force:  f.force,
		DryRun: f.dryRun,
	})
	if err != nil {
		return err
	}
	if len(result.Outcomes) > 0 || result.DryRun {
		orchestrator.PrintSummary(cmd.OutOrStdout(), result)
	}
	return nil
}

func loadGroupManifest(a *app, group string) (*manifest.Manifest, error) {
	repo := a.manifests()
	if !repo.Exists(group) {
		groups, _ := repo.Groups()
		return nil, fmt.Errorf("unknown group %q in %s (available: %s)", group, repo.Dir, strings.Join(groups, ", "))
	}
	return repo.Load(group), nil
}
