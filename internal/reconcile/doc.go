// Package reconcile compares a group manifest against the editor's installed
// extensions and partitions the manifest into compatible, version-mismatched
// and missing entries.
package reconcile
