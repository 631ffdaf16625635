// Package manifest reads group manifests: plain text files named
// <group>.txt, one extension identity per line, with "#" comment lines.
// A Repository discovers every group manifest in one directory.
package manifest
