// Package dispatch hands built requests to the operating system's URL handler.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"runtime"
	"strings"

	"github.com/amirbrooks/things-cli/internal/log"
)

var (
	ErrOpenerMissing  = errors.New("open handler not found")
	ErrDispatchFailed = errors.New("dispatch failed")
)

// ExitError reports a nonzero exit from the open handler.
// It satisfies errors.Is(err, ErrDispatchFailed).
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExitError) Is(target error) bool { return target == ErrDispatchFailed }

// Opener opens a URL with whatever the platform registered for its scheme.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Sink is the part of the output printer dispatch needs.
type Sink interface {
	WouldExecute(url string)
	Successf(format string, args ...any)
}

// DefaultOpenCommand is open on macOS and xdg-open elsewhere.
func DefaultOpenCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// ExecOpener runs Command with the URL as its only argument.
type ExecOpener struct {
	Command string
}

func (o ExecOpener) Open(ctx context.Context, url string) error {
	name := strings.TrimSpace(o.Command)
	if name == "" {
		name = DefaultOpenCommand()
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%w: %q (Things URLs can only be opened on macOS)", ErrOpenerMissing, name)
	}
	cmd := exec.CommandContext(ctx, path, url)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: name, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %v", ErrOpenerMissing, err)
		}
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	return nil
}

type Dispatcher struct {
	Opener Opener
	Sink   Sink
	Logger log.Logger
}

func New(opener Opener, sink Sink, logger log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Dispatcher{Opener: opener, Sink: sink, Logger: logger}
}

// Dispatch prints the URL on a dry run and opens it otherwise. There is no
// retry and no confirmation that Things applied the request.
func (d *Dispatcher) Dispatch(ctx context.Context, url string, dryRun bool) error {
	if dryRun {
		d.Logger.Debugf(ctx, "dry run: %s", url)
		d.Sink.WouldExecute(url)
		return nil
	}
	if d.Opener == nil {
		return ErrOpenerMissing
	}
	d.Logger.Debugf(ctx, "opening %s", redact(url))
	if err := d.Opener.Open(ctx, url); err != nil {
		d.Logger.Warnf(ctx, "dispatch failed: %v", err)
		return err
	}
	d.Sink.Successf("Command sent to Things")
	return nil
}

// redact hides the auth-token value in log lines.
func redact(url string) string {
	const key = "auth-token="
	i := strings.Index(url, key)
	if i < 0 {
		return url
	}
	start := i + len(key)
	end := strings.IndexByte(url[start:], '&')
	if end < 0 {
		return url[:start] + "***"
	}
	return url[:start] + "***" + url[start+end:]
}
