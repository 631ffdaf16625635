package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/extkit-labs/extkit/internal/branding"
	"github.com/extkit-labs/extkit/internal/config"
	"github.com/extkit-labs/extkit/internal/editor"
	"github.com/extkit-labs/extkit/internal/logging"
	"github.com/extkit-labs/extkit/internal/manifest"
	"github.com/extkit-labs/extkit/internal/orchestrator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// workDirFlag keeps the historical flag name; legacyWorkDirFlag is its
// single-dash short form.
const (
	workDirFlag       = "dot_vscode_work_dir"
	legacyWorkDirFlag = "-dir"
	subDirFlag        = "dir"
)

// BuildInfo is injected via ldflags at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// EditorFactory builds the editor CLI a command drives.
type EditorFactory func(cfg *config.Config, log *zap.Logger) editor.CLI

func defaultEditorFactory(cfg *config.Config, log *zap.Logger) editor.CLI {
	return editor.NewCode(cfg.Editor, log)
}

// app holds everything a command needs for one invocation. It is built in
// the root PersistentPreRunE and passed to handlers explicitly.
type app struct {
	build      BuildInfo
	newEditor  EditorFactory
	configPath string

	viper *viper.Viper
	cfg   *config.Config
	log   *zap.Logger
}

func (a *app) editor() editor.CLI {
	return a.newEditor(a.cfg, a.log)
}

func (a *app) manifests() *manifest.Repository {
	return manifest.NewRepository(a.cfg.ExtensionsDir, a.log)
}

func (a *app) orchestrator(cmd *cobra.Command) *orchestrator.Orchestrator {
	return orchestrator.New(a.editor(), a.log, cmd.OutOrStdout())
}

// rootFlags are the reconcile/install flags of the root command.
type rootFlags struct {
	install       string
	group         string
	listInstalled bool
	force         bool
	dryRun        bool
	workDir       string
}

// NewRootCmd builds the command tree. newEditor may be nil to use the
// configured editor binary.
func NewRootCmd(build BuildInfo, newEditor EditorFactory) *cobra.Command {
	if newEditor == nil {
		newEditor = defaultEditorFactory
	}
	a := &app{build: build, newEditor: newEditor}
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` reconciles the editor's installed extensions against per-stack
manifests (extensions/<group>.txt), installs what is missing and merges
recommended settings (language-settings/<group>.json) into a workspace.`,
		Example: `  extkit -l
  extkit -l -g cpp
  extkit -i '*' -g cpp -dir .
  extkit -i ms-python.python@2024.2.1 -f`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = logging.Sync(a.log)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, a, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.install, "install", "i", "", "Install the specified extension (vendor.name[@version]), or * for every extension of --group")
	f.StringVarP(&flags.group, "group", "g", "", "Group name (cpp, python, rust, ...) selecting extensions/<group>.txt")
	f.BoolVarP(&flags.listInstalled, "list-installed", "l", false, "List installed extensions")
	f.BoolVarP(&flags.force, "force", "f", false, "Reinstall installed extensions and override existing settings")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print what would be installed without installing")
	f.StringVar(&flags.workDir, workDirFlag, "", "Workspace directory whose .vscode/settings.json receives group settings (also -dir; . for the current directory)")

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default ~/"+branding.HomeDir()+"/config.yaml)")
	pf.String("editor", "", "Editor command to drive (default \"code\")")
	pf.String("extensions-dir", "", "Directory containing <group>.txt manifests")
	pf.String("settings-dir", "", "Directory containing <group>.json settings")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (console, json)")

	cmd.AddCommand(
		newGroupsCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

// persistentFlagKeys maps persistent flags to config keys.
var persistentFlagKeys = map[string]string{
	"editor":         config.KeyEditor,
	"extensions-dir": config.KeyExtensionsDir,
	"settings-dir":   config.KeySettingsDir,
	"log-level":      config.KeyLogLevel,
	"log-format":     config.KeyLogFormat,
}

// setup resolves configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.viper = config.New(a.configPath)
	for flag, key := range persistentFlagKeys {
		if err := a.viper.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logging.New(cfg.Logging(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log
	a.log.Debug("configuration resolved",
		zap.String("extensions_dir", cfg.ExtensionsDir),
		zap.String("settings_dir", cfg.SettingsDir),
		zap.String("editor", cfg.Editor))
	return nil
}

// NormalizeArgs rewrites the single-dash -dir flag to the long dir flag of
// the command args select: --dot_vscode_work_dir on the root, --dir on a
// subcommand that has one. pflag only accepts single-letter shorthands.
func NormalizeArgs(root *cobra.Command, args []string) []string {
	long := workDirFlag
	if sub, _, err := root.Find(args); err == nil && sub != root {
		if sub.Flags().Lookup(subDirFlag) == nil {
			return args
		}
		long = subDirFlag
	}

	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		switch {
		case arg == legacyWorkDirFlag:
			out = append(out, "--"+long)
		case strings.HasPrefix(arg, legacyWorkDirFlag+"="):
			out = append(out, "--"+long+strings.TrimPrefix(arg, legacyWorkDirFlag))
		default:
			out = append(out, arg)
		}
	}
	return out
}

// Execute runs the root command with build info injected via ldflags.
func Execute(build BuildInfo) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd(build, nil)
	cmd.SetArgs(NormalizeArgs(cmd, os.Args[1:]))
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
