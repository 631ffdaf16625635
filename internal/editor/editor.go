package editor

import (
	"context"
	"regexp"
	"strings"

	"github.com/extkit-labs/extkit/internal/extid"
	"go.uber.org/zap"
)

// DefaultBinary is the editor command used when none is configured.
const DefaultBinary = "code"

// CLI is the capability the reconciliation and install logic needs from the
// editor. Implementations block until the underlying command exits.
type CLI interface {
	// ListInstalled returns raw vendor.name@version lines for every
	// installed extension that passes FilterInstalled.
	ListInstalled(ctx context.Context) ([]string, error)

	// Install installs one extension. A non-zero exit from the editor is
	// reported in Output.ExitCode, not as an error.
	Install(ctx context.Context, id extid.Identity, opts InstallOptions) (*Output, error)
}

// InstallOptions controls a single install call.
type InstallOptions struct {
	// Force reinstalls even when the editor already has the extension.
	Force bool
}

// Output captures the result of one editor invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the command exited zero.
func (o *Output) OK() bool { return o != nil && o.ExitCode == 0 }

// installedLine matches lines like EFanZh.graphviz-preview@1.7.2.
var installedLine = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)@([0-9.]+)$`)

// FilterInstalled trims each line and keeps only those in the
// vendor.name@version format. Dropped lines are logged at debug level.
func FilterInstalled(lines []string, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}

	valid := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !installedLine.MatchString(line) {
			log.Debug("invalid extension format", zap.String("line", line))
			continue
		}
		valid = append(valid, line)
	}
	log.Debug("installed extensions", zap.Strings("extensions", valid))
	return valid
}
