package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// FileExt is the extension every manifest file carries.
const FileExt = ".txt"

// Manifest is one group's ordered list of raw extension identities.
type Manifest struct {
	Group   string
	Path    string
	Entries []string
}

// Repository discovers and reads manifests under Dir.
type Repository struct {
	Dir string
	Log *zap.Logger
}

// NewRepository returns a Repository rooted at dir.
func NewRepository(dir string, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{Dir: dir, Log: log}
}

func (r *Repository) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// Path returns the manifest path for a group.
func (r *Repository) Path(group string) string {
	return filepath.Join(r.Dir, group+FileExt)
}

// Groups returns the sorted group names found in Dir.
func (r *Repository) Groups() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.Dir, "*"+FileExt))
	if err != nil {
		return nil, fmt.Errorf("listing manifests in %s: %w", r.Dir, err)
	}

	groups := make([]string, 0, len(files))
	for _, f := range files {
		groups = append(groups, GroupName(f))
	}
	sort.Strings(groups)
	r.logger().Debug("found manifest files", zap.Strings("groups", groups), zap.String("dir", r.Dir))
	return groups, nil
}

// Discover reads every manifest in Dir, sorted by group name.
func (r *Repository) Discover() ([]*Manifest, error) {
	groups, err := r.Groups()
	if err != nil {
		return nil, err
	}

	manifests := make([]*Manifest, 0, len(groups))
	for _, g := range groups {
		manifests = append(manifests, r.Load(g))
	}
	return manifests, nil
}

// Load reads the manifest for group. A missing file yields an empty
// manifest; the problem is logged, not returned.
func (r *Repository) Load(group string) *Manifest {
	path := r.Path(group)
	return &Manifest{
		Group:   group,
		Path:    path,
		Entries: ReadEntries(path, r.logger()),
	}
}

// Exists reports whether a manifest file exists for group.
func (r *Repository) Exists(group string) bool {
	info, err := os.Stat(r.Path(group))
	return err == nil && !info.IsDir()
}

// AllEntries returns the entries of every manifest, in discovery order,
// without duplicates.
func (r *Repository) AllEntries() ([]string, error) {
	manifests, err := r.Discover()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var all []string
	for _, m := range manifests {
		for _, e := range m.Entries {
			if !seen[e] {
				seen[e] = true
				all = append(all, e)
			}
		}
	}
	return all, nil
}

// ReadEntries reads a manifest file. Lines are trimmed; blank lines and
// lines starting with "#" are skipped. Read failures are logged and yield
// an empty list.
func ReadEntries(path string, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error("manifest file does not exist", zap.String("path", path))
		} else {
			log.Error("reading manifest file", zap.String("path", path), zap.Error(err))
		}
		return []string{}
	}

	entries := ParseEntries(data)
	log.Debug("manifest entries", zap.String("path", path), zap.Strings("entries", entries))
	return entries
}

// ParseEntries extracts entries from manifest content. Lines of any length
// are accepted.
func ParseEntries(data []byte) []string {
	entries := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(data)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// GroupName derives the group key from a manifest path: its base name
// without extension.
func GroupName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
