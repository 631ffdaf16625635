// Package extid parses and compares editor extension identities of the form
// vendor.name or vendor.name@version, as printed by
// `code --list-extensions --show-versions` and written in group manifests.
package extid
