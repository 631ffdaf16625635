package editor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/extkit-labs/extkit/internal/extid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFilterInstalled(t *testing.T) {
	lines := []string{"vend.ext@1.0.0", "garbage-line", "Vend2.Ext2@2.3.1"}

	got := FilterInstalled(lines, nil)
	want := []string{"vend.ext@1.0.0", "Vend2.Ext2@2.3.1"}

	if len(got) != len(want) {
		t.Fatalf("FilterInstalled() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FilterInstalled()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterInstalled_TrimsAndDropsBlanks(t *testing.T) {
	lines := []string{"  a.b@1.2.3  ", "", "   ", "a.b@beta", "a.b", "x_y.z-w@10.0\r"}
	got := FilterInstalled(lines, nil)
	if len(got) != 2 || got[0] != "a.b@1.2.3" || got[1] != "x_y.z-w@10.0" {
		t.Errorf("FilterInstalled() = %v", got)
	}
}

func TestFilterInstalled_LogsDroppedLines(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	FilterInstalled([]string{"not an extension"}, zap.New(core))

	dropped := logs.FilterMessage("invalid extension format").All()
	if len(dropped) != 1 {
		t.Fatalf("expected 1 dropped-line log, got %d", len(dropped))
	}
	if got := dropped[0].ContextMap()["line"]; got != "not an extension" {
		t.Errorf("logged line = %v", got)
	}
}

func TestOutput_OK(t *testing.T) {
	var nilOut *Output
	if nilOut.OK() {
		t.Error("nil output should not be OK")
	}
	if !(&Output{}).OK() {
		t.Error("zero exit should be OK")
	}
	if (&Output{ExitCode: 1}).OK() {
		t.Error("non-zero exit should not be OK")
	}
}

// writeMockEditor writes a shell script that mimics the editor CLI and
// appends every install invocation to calls.log in the same directory.
func writeMockEditor(t *testing.T) (bin, callsLog string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("mock editor is a shell script")
	}

	dir := t.TempDir()
	callsLog = filepath.Join(dir, "calls.log")
	bin = filepath.Join(dir, "mock-code")

	script := `#!/bin/sh
case "$1" in
--list-extensions)
	printf 'vend.ext@1.0.0\ngarbage-line\nVend2.Ext2@2.3.1\n'
	;;
--install-extension)
	echo "$@" >> "` + callsLog + `"
	if [ "$2" = "bad.ext@1.0" ]; then
		echo "Extension 'bad.ext' not found." >&2
		exit 3
	fi
	echo "Extension '$2' was successfully installed."
	;;
*)
	exit 64
	;;
esac
`
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return bin, callsLog
}

func TestCode_ListInstalled(t *testing.T) {
	bin, _ := writeMockEditor(t)
	c := NewCode(bin, nil)

	got, err := c.ListInstalled(context.Background())
	if err != nil {
		t.Fatalf("ListInstalled() error = %v", err)
	}
	if len(got) != 2 || got[0] != "vend.ext@1.0.0" || got[1] != "Vend2.Ext2@2.3.1" {
		t.Errorf("ListInstalled() = %v", got)
	}
}

func TestCode_Install(t *testing.T) {
	bin, callsLog := writeMockEditor(t)
	c := NewCode(bin, nil)

	out, err := c.Install(context.Background(), extid.Parse("v.ext@1.0"), InstallOptions{})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if !out.OK() {
		t.Errorf("expected zero exit, got %d", out.ExitCode)
	}
	if !strings.Contains(out.Stdout, "successfully installed") {
		t.Errorf("unexpected stdout: %q", out.Stdout)
	}

	if _, err := c.Install(context.Background(), extid.Parse("v.other@2.0"), InstallOptions{Force: true}); err != nil {
		t.Fatalf("Install(force) error = %v", err)
	}

	data, err := os.ReadFile(callsLog)
	if err != nil {
		t.Fatal(err)
	}
	calls := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %v", calls)
	}
	if calls[0] != "--install-extension v.ext@1.0" {
		t.Errorf("first call = %q", calls[0])
	}
	if calls[1] != "--install-extension v.other@2.0 --force" {
		t.Errorf("second call = %q", calls[1])
	}
}

func TestCode_InstallNonZeroExit(t *testing.T) {
	bin, _ := writeMockEditor(t)
	c := NewCode(bin, nil)

	out, err := c.Install(context.Background(), extid.Parse("bad.ext@1.0"), InstallOptions{})
	if err != nil {
		t.Fatalf("non-zero exit should not be an error, got %v", err)
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
	if !strings.Contains(out.Stderr, "not found") {
		t.Errorf("unexpected stderr: %q", out.Stderr)
	}
}

func TestCode_MissingBinary(t *testing.T) {
	c := NewCode(filepath.Join(t.TempDir(), "no-such-editor"), nil)
	_, err := c.ListInstalled(context.Background())
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}
