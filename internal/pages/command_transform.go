package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/macko911/nextjs-sitemap-generator/internal/logfields"
	perrors "github.com/macko911/nextjs-sitemap-generator/internal/pages/errors"
)

// CommandTransform runs an external program to rewrite the path map. The current
// map is written to the program's stdin as a JSON object and the replacement is
// read from its stdout in the same shape.
type CommandTransform struct {
	// Command is the program followed by its arguments.
	Command []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
	// Timeout bounds the run. Zero waits for the program indefinitely.
	Timeout time.Duration
}

// Transform implements PathMapTransform.
func (c *CommandTransform) Transform(ctx context.Context, in PathMap) (PathMap, error) {
	if len(c.Command) == 0 || c.Command[0] == "" {
		return nil, fmt.Errorf("%w: no command configured", perrors.ErrTransformFailed)
	}
	name := strings.Join(c.Command, " ")

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if in == nil {
		in = PathMap{}
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: encode input: %w", perrors.ErrTransformFailed, err)
	}

	// #nosec G204 -- the command comes from the operator's own configuration
	cmd := exec.CommandContext(ctx, c.Command[0], c.Command[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	slog.Debug("Running path map command", logfields.Command(name), logfields.Count(len(in)))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", perrors.ErrTransformFailed, name, ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s: %w: %s", perrors.ErrTransformFailed, name, err, msg)
		}
		return nil, fmt.Errorf("%w: %s: %w", perrors.ErrTransformFailed, name, err)
	}

	var out PathMap
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("%w: %s: decode output: %w", perrors.ErrTransformFailed, name, err)
	}
	if out == nil {
		out = PathMap{}
	}
	slog.Debug("Path map command finished",
		logfields.Command(name),
		logfields.Count(len(out)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return out, nil
}
