// Package editor defines the CLI interface over the editor's command-line
// tool (list installed extensions, install one extension) and provides the
// implementation backed by VS Code's `code` binary.
package editor
