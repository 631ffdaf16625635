package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/extkit-labs/extkit/internal/extid"
	"go.uber.org/zap"
)

// Code drives VS Code (or a compatible fork) through its CLI.
type Code struct {
	// Bin is the editor executable name or path; defaults to DefaultBinary.
	Bin string
	Log *zap.Logger

	// Stdout and Stderr, when set, receive a copy of install output as it
	// is produced.
	Stdout io.Writer
	Stderr io.Writer
}

// NewCode returns a Code for the given binary.
func NewCode(bin string, log *zap.Logger) *Code {
	if log == nil {
		log = zap.NewNop()
	}
	return &Code{Bin: bin, Log: log}
}

func (c *Code) bin() string {
	if c.Bin == "" {
		return DefaultBinary
	}
	return c.Bin
}

func (c *Code) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// ListInstalled runs `<bin> --list-extensions --show-versions`.
func (c *Code) ListInstalled(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, nil, nil, "--list-extensions", "--show-versions")
	if err != nil {
		return nil, fmt.Errorf("listing installed extensions: %w", err)
	}
	if out.ExitCode != 0 {
		return nil, fmt.Errorf("listing installed extensions: %s exited with status %d: %s",
			c.bin(), out.ExitCode, strings.TrimSpace(out.Stderr))
	}
	return FilterInstalled(strings.Split(out.Stdout, "\n"), c.logger()), nil
}

// Install runs `<bin> --install-extension <id>`, adding --force when asked.
func (c *Code) Install(ctx context.Context, id extid.Identity, opts InstallOptions) (*Output, error) {
	args := []string{"--install-extension", id.String()}
	if opts.Force {
		args = append(args, "--force")
	}

	c.logger().Info("installing extension",
		zap.String("extension", id.String()),
		zap.String("command", c.bin()+" "+strings.Join(args, " ")))

	out, err := c.run(ctx, c.Stdout, c.Stderr, args...)
	if err != nil {
		return out, fmt.Errorf("installing %s: %w", id, err)
	}
	return out, nil
}

// run executes the editor binary, capturing stdout and stderr while also
// streaming them to the given writers when non-nil.
func (c *Code) run(ctx context.Context, stdout, stderr io.Writer, args ...string) (*Output, error) {
	bin, err := exec.LookPath(c.bin())
	if err != nil {
		return nil, fmt.Errorf("editor command %q not found: %w", c.bin(), err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = teeWriter(stdout, &stdoutBuf)
	cmd.Stderr = teeWriter(stderr, &stderrBuf)

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("executing %s: %w", c.bin(), err)
	}

	return output, nil
}

func teeWriter(w io.Writer, buf *bytes.Buffer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}
