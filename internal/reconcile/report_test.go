package reconcile

import (
	"bytes"
	"testing"

	"github.com/extkit-labs/extkit/internal/extid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Partitions(t *testing.T) {
	entries := []string{
		"ms-vscode.cpptools@1.20.5",
		"ms-vscode.cmake-tools@1.17.0",
		"twxs.cmake",
		"llvm-vs-code-extensions.vscode-clangd@0.1.29",
	}
	installed := extid.ParseAll([]string{
		"ms-vscode.cpptools@1.20.5",
		"MS-VSCode.CMake-Tools@1.18.0",
		"twxs.cmake@0.0.17",
	})

	r := Build(entries, installed)

	assert.Equal(t, []string{"ms-vscode.cpptools@1.20.5"}, r.Compatible)
	require.Len(t, r.Incompatible, 2)
	assert.Equal(t, "ms-vscode.cmake-tools@1.17.0", r.Incompatible[0].Entry)
	assert.Equal(t, "1.18.0", r.Incompatible[0].Installed.Version)
	assert.Equal(t, "1.17.0", r.Incompatible[0].Wanted.Version)
	assert.Equal(t, "twxs.cmake", r.Incompatible[1].Entry)
	assert.Equal(t, []string{"llvm-vs-code-extensions.vscode-clangd@0.1.29"}, r.Missing)
}

func TestBuild_DisjointAndCovering(t *testing.T) {
	entries := []string{"a.one@1.0", "a.two@1.0", "a.three", "a.four@2.0", "a.five@1.0"}
	installed := extid.ParseAll([]string{"a.one@1.0", "a.two@2.0", "a.four@2.0", "z.other@1.0"})

	r := Build(entries, installed)
	require.Equal(t, len(entries), r.Len())

	seen := make(map[string]int)
	for _, e := range r.Compatible {
		seen[e]++
	}
	for _, m := range r.Incompatible {
		seen[m.Entry]++
	}
	for _, e := range r.Missing {
		seen[e]++
	}
	for _, e := range entries {
		assert.Equal(t, 1, seen[e], "entry %s should appear in exactly one partition", e)
	}
}

func TestBuild_NothingInstalled(t *testing.T) {
	r := Build([]string{"v.ext@1.0"}, nil)
	assert.Empty(t, r.Compatible)
	assert.Empty(t, r.Incompatible)
	assert.Equal(t, []string{"v.ext@1.0"}, r.Missing)
}

func TestUnmanaged(t *testing.T) {
	installed := []string{"a.b@1.0.0", "c.d@2.0.0", "E.F@3.0.0"}
	managed := []string{"a.b@9.9.9", "e.f"}

	assert.Equal(t, []string{"c.d@2.0.0"}, Unmanaged(installed, managed))
	assert.Empty(t, Unmanaged(nil, managed))
	assert.Equal(t, installed, Unmanaged(installed, nil))
}

func TestPrintReport(t *testing.T) {
	entries := []string{"a.ok@1.0.0", "a.old@2.0.0", "a.gone"}
	installed := extid.ParseAll([]string{"a.ok@1.0.0", "a.old@1.5.0"})

	var buf bytes.Buffer
	PrintReport(&buf, "cpp", Build(entries, installed))
	out := buf.String()

	assert.Contains(t, out, "cpp installed extensions (1):")
	assert.Contains(t, out, "✓ a.ok@1.0.0")
	assert.Contains(t, out, "installed: a.old@1.5.0, wanted version: 2.0.0 (installed is older)")
	assert.Contains(t, out, "cpp not installed (1):")
	assert.Contains(t, out, "✗ a.gone")
}
