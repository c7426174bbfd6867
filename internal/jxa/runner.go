package jxa

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/amirbrooks/things-cli/internal/log"
)

const (
	DefaultInterpreter = "osascript"
	DefaultTimeout     = 30 * time.Second
)

// Runner executes one automation script and returns its standard output.
type Runner interface {
	Run(ctx context.Context, script string, args ...string) ([]byte, error)
}

// OsaRunner runs JavaScript for Automation through osascript. The script is
// fed on stdin and args are handed to its run(argv) handler.
type OsaRunner struct {
	Path    string
	Timeout time.Duration
	Logger  log.Logger
}

// LookupOsaRunner resolves the interpreter once; a missing binary means the
// platform cannot serve read queries.
func LookupOsaRunner(name string, timeout time.Duration, logger log.Logger) (*OsaRunner, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultInterpreter
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found (Things is only scriptable on macOS)", ErrUnsupported, name)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &OsaRunner{Path: path, Timeout: timeout, Logger: logger}, nil
}

func (r *OsaRunner) Run(ctx context.Context, script string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := append([]string{"-l", "JavaScript", "-"}, args...)
	cmd := exec.CommandContext(ctx, r.Path, argv...)
	cmd.Stdin = strings.NewReader(script)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger().Debugf(ctx, "osascript args=%q took=%s", args, time.Since(start).Round(time.Millisecond))

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	if err != nil {
		return nil, classify(err, stderr.String())
	}
	return bytes.TrimSpace(stdout.Bytes()), nil
}

func (r *OsaRunner) logger() log.Logger {
	if r.Logger == nil {
		return log.NewNop()
	}
	return r.Logger
}

func classify(err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %v", ErrScriptFailed, err)
	}
	msg := strings.TrimSpace(stderr)
	if strings.Contains(msg, "Things3") || strings.Contains(msg, "Application") {
		return fmt.Errorf("%w: make sure Things 3 is installed and running (%s)", ErrConnection, msg)
	}
	return &ScriptError{Stderr: msg, ExitCode: exitErr.ExitCode()}
}
