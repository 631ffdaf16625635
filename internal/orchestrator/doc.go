// Package orchestrator plans and runs extension installs: a single
// extension, every missing extension of a group, or one pattern within a
// group. Installs run one at a time in manifest order through an
// editor.CLI; a failed install is logged and counted, never retried.
package orchestrator
