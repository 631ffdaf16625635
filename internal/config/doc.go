// Package config resolves the settings extkit runs with: where group
// manifests, group settings and static assets live, which editor binary to
// drive, and how to log. Values come from flags, EXTKIT_* environment
// variables and ~/.extkit/config.yaml, in that order of precedence, and are
// collected into one Config constructed at startup.
package config
