package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// File and directory names used for settings.
const (
	FileExt       = ".json"
	WorkspaceDir  = ".vscode"
	WorkspaceFile = "settings.json"
)

// Permission constants.
const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// GroupPath returns the settings path for a group under dir.
func GroupPath(dir, group string) string {
	return filepath.Join(dir, group+FileExt)
}

// WorkspacePath returns <workdir>/.vscode/settings.json.
func WorkspacePath(workdir string) string {
	return filepath.Join(workdir, WorkspaceDir, WorkspaceFile)
}

// LoadFile reads and parses a settings file. The returned bool is false
// when the file does not exist, in which case the document is nil.
func LoadFile(path string) (*Document, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading settings %s: %w", path, err)
	}

	doc, err := ParseDocument(path, data)
	if err != nil {
		return nil, true, err
	}
	return doc, true, nil
}

// LoadGroup reads the recommended settings for group from dir. A group
// without a settings file yields a nil document and no error.
func LoadGroup(dir, group string, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}

	path := GroupPath(dir, group)
	doc, found, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Debug("no settings for group", zap.String("group", group), zap.String("path", path))
		return nil, nil
	}

	log.Info("loaded group settings",
		zap.String("group", group),
		zap.String("path", path),
		zap.Strings("keys", doc.Keys()))
	return doc, nil
}

// ApplyToWorkspace merges src into <workdir>/.vscode/settings.json, creating
// the directory and file when absent. An existing file that is not a JSON
// object aborts the merge with a *MalformedError and is left untouched, as
// is an existing file the merge did not change.
func ApplyToWorkspace(workdir string, src *Document, force bool, log *zap.Logger) (MergeResult, error) {
	if log == nil {
		log = zap.NewNop()
	}

	path := WorkspacePath(workdir)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return MergeResult{}, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	existing, found, err := LoadFile(path)
	if err != nil {
		return MergeResult{}, err
	}
	if !found {
		existing = NewDocument()
	}

	result := Merge(existing, src, force, log.With(zap.String("file", path)))
	if found && !result.Changed() {
		log.Info("settings already up to date",
			zap.String("file", path),
			zap.Int("skipped", len(result.Skipped)))
		return result, nil
	}

	data, err := existing.Encode()
	if err != nil {
		return result, err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return result, fmt.Errorf("writing settings %s: %w", path, err)
	}

	log.Info("updated settings written",
		zap.String("file", path),
		zap.Int("added", len(result.Added)),
		zap.Int("overridden", len(result.Overridden)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// ResolveWorkspace turns the workspace flag into an absolute directory.
// "." means the current working directory; any other path must exist.
func ResolveWorkspace(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if raw == "." {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving current directory: %w", err)
		}
		return wd, nil
	}

	info, err := os.Stat(raw)
	if err != nil {
		return "", fmt.Errorf("workspace directory %s does not exist: %w", raw, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace path %s is not a directory", raw)
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", raw, err)
	}
	return abs, nil
}
