// Package settings loads per-group recommended editor settings and merges
// them into a workspace's .vscode/settings.json. Documents keep their keys
// in file order so a merge only appends new keys and rewrites overridden
// values in place.
package settings
