package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseEntries(t *testing.T) {
	content := "#c\n\n a.b@1.0 \nx.y\n"
	got := ParseEntries([]byte(content))
	want := []string{"a.b@1.0", "x.y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseEntries() = %v, want %v", got, want)
	}
}

func TestParseEntries_EmptyAndCommentsOnly(t *testing.T) {
	got := ParseEntries([]byte("# only comments\n   \n#another\n"))
	if got == nil || len(got) != 0 {
		t.Errorf("ParseEntries() = %#v, want empty non-nil slice", got)
	}
}

func TestParseEntries_CRLF(t *testing.T) {
	got := ParseEntries([]byte("a.b@1.0\r\n# note\r\nc.d\r\n"))
	want := []string{"a.b@1.0", "c.d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseEntries() = %v, want %v", got, want)
	}
}

func TestParseEntries_LongLine(t *testing.T) {
	long := "a.long@" + strings.Repeat("1", 70*1024)
	got := ParseEntries([]byte(long + "\nc.d\n"))
	want := []string{long, "c.d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseEntries() returned %d entries, want 2 with the long line kept", len(got))
	}
}

func TestReadEntries_MissingFile(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	got := ReadEntries(filepath.Join(t.TempDir(), "nope.txt"), zap.New(core))

	if len(got) != 0 {
		t.Errorf("expected empty entries, got %v", got)
	}
	if logs.FilterMessage("manifest file does not exist").Len() != 1 {
		t.Errorf("expected missing-file error log, got %v", logs.All())
	}
}

func TestGroupName(t *testing.T) {
	tests := map[string]string{
		"/x/extensions/cpp.txt":    "cpp",
		"python.txt":               "python",
		"/x/extensions/web.v2.txt": "web.v2",
	}
	for path, want := range tests {
		if got := GroupName(path); got != want {
			t.Errorf("GroupName(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestRepository_Discover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rust.txt", "rust-lang.rust-analyzer@0.3.2\n")
	writeFile(t, dir, "cpp.txt", "# C/C++\nms-vscode.cpptools@1.20.5\nms-vscode.cmake-tools\n")
	writeFile(t, dir, "README.md", "not a manifest")

	repo := NewRepository(dir, nil)

	groups, err := repo.Groups()
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if !reflect.DeepEqual(groups, []string{"cpp", "rust"}) {
		t.Errorf("Groups() = %v", groups)
	}

	manifests, err := repo.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(manifests))
	}
	if manifests[0].Group != "cpp" || len(manifests[0].Entries) != 2 {
		t.Errorf("unexpected cpp manifest: %+v", manifests[0])
	}
	if manifests[1].Path != filepath.Join(dir, "rust.txt") {
		t.Errorf("rust manifest path = %q", manifests[1].Path)
	}
}

func TestRepository_LoadMissingGroup(t *testing.T) {
	repo := NewRepository(t.TempDir(), nil)
	if repo.Exists("go") {
		t.Error("expected go group not to exist")
	}
	m := repo.Load("go")
	if m.Group != "go" || len(m.Entries) != 0 {
		t.Errorf("unexpected manifest for missing group: %+v", m)
	}
}

func TestRepository_AllEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x.one@1.0\nx.shared@2.0\n")
	writeFile(t, dir, "b.txt", "x.shared@2.0\nx.two\n")

	all, err := NewRepository(dir, nil).AllEntries()
	if err != nil {
		t.Fatalf("AllEntries() error = %v", err)
	}
	want := []string{"x.one@1.0", "x.shared@2.0", "x.two"}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("AllEntries() = %v, want %v", all, want)
	}
}

func TestRepository_EmptyDir(t *testing.T) {
	manifests, err := NewRepository(filepath.Join(t.TempDir(), "missing"), nil).Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(manifests) != 0 {
		t.Errorf("expected no manifests, got %d", len(manifests))
	}
}
