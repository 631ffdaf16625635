// Package server serves a static asset directory for local development with
// permissive CORS headers and caching disabled.
package server
