package codegen

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

// Formatter shells out to an external formatter binary, adapted from the
// teacher's common.Formatter (garnet/go/src/fidl/compiler/backend/common/
// formatter.go) to fit Emit's string-in/string-out shape instead of a
// WriteCloser pipeline: this module has one blob to format, not a stream
// of files.
type Formatter struct {
	path string
	args []string
}

const formatTimeout = 2 * time.Minute

// NewFormatter builds a Formatter. An empty path means Format is a no-op,
// matching the teacher's "empty string disables formatting" contract.
func NewFormatter(path string, args ...string) Formatter {
	return Formatter{path: path, args: args}
}

// Format runs src through the configured formatter, returning src
// unchanged if no formatter is configured or formatting fails (the
// teacher's formatter.go always falls back to the unformatted input on
// error rather than losing the generated output).
func (f Formatter) Format(src string) (string, error) {
	if f.path == "" {
		return src, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), formatTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, f.path, f.args...)
	cmd.Stdin = bytes.NewBufferString(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() != 0 {
			return src, errors.Wrapf(err, "formatting: %s", stderr.String())
		}
		return src, errors.Wrap(err, "formatting")
	}
	return stdout.String(), nil
}
