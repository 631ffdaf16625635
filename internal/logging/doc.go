// Package logging builds the zap logger shared by every command. The logger
// is constructed once per invocation from Config and passed explicitly to
// the components that log; there is no package-level logger.
package logging
