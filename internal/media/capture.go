package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// FileCapturer picks a photo from disk.
type FileCapturer struct {
	Path string
}

// Capture reads and embeds the file.
func (f FileCapturer) Capture(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", captureErr("gallery", err)
	}
	if f.Path == "" {
		return "", captureErr("gallery", errors.New("no file selected"))
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", captureErr("gallery", err)
	}

	out, err := Embed(data)
	if err != nil {
		return "", captureErr("gallery", err)
	}

	slog.Debug("Embedded photo", "path", f.Path, "bytes", len(out))
	return out, nil
}

// CommandCapturer runs an external snapshot program that writes a single
// JPEG or PNG frame to stdout, e.g. "fswebcam --no-banner -".
type CommandCapturer struct {
	Command string
	Args    []string
	// Timeout applies when ctx has no deadline. Zero means 30 seconds.
	Timeout time.Duration
}

// ParseCommand splits a configured command line on whitespace.
func ParseCommand(line string) CommandCapturer {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return CommandCapturer{}
	}
	return CommandCapturer{Command: fields[0], Args: fields[1:]}
}

// Capture takes a snapshot and embeds it.
func (c CommandCapturer) Capture(ctx context.Context) (string, error) {
	if c.Command == "" {
		return "", captureErr("camera", errors.New("no camera command configured"))
	}

	path, err := exec.LookPath(c.Command)
	if err != nil {
		return "", captureErr("camera", fmt.Errorf("camera command not found: %w", err))
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timeout := c.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", captureErr("camera", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())))
		}
		return "", captureErr("camera", err)
	}

	out, err := Embed(stdout.Bytes())
	if err != nil {
		return "", captureErr("camera", err)
	}
	return out, nil
}

// CapturerFunc adapts a function to Capturer.
type CapturerFunc func(ctx context.Context) (string, error)

// Capture calls f.
func (f CapturerFunc) Capture(ctx context.Context) (string, error) {
	return f(ctx)
}

var (
	_ Capturer = FileCapturer{}
	_ Capturer = CommandCapturer{}
	_ Capturer = CapturerFunc(nil)
)
