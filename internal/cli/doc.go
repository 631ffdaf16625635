// Package cli defines the Cobra command tree for the extkit CLI. The root
// command carries the reconcile/install flags; each other file registers one
// subcommand. Command implementations delegate to internal packages for
// business logic and only handle flag parsing, I/O formatting and wiring.
package cli
