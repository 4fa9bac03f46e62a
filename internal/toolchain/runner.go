package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"pdftools/internal/logging"
	"pdftools/pkg/config"
)

const (
	// waitDelay bounds how long Wait blocks on pipes held open by grandchildren after a kill
	waitDelay = 2 * time.Second
)

var (
	redactedArgPrefixes = []string{"-sOwnerPassword=", "-sUserPassword=", "-sPDFPassword="}
)

type Command struct {
	Tool Tool
	Path string
	Args []string
	Dir  string
	// Stdout receives the process output instead of the capped capture buffer when set
	Stdout  io.Writer
	Timeout time.Duration
}

// String renders the command line for logs, with password arguments masked.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Path)
	for _, arg := range c.Args {
		for _, prefix := range redactedArgPrefixes {
			if strings.HasPrefix(arg, prefix) {
				arg = prefix + "***"
				break
			}
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Output joins stderr and stdout, which is where the tools print their diagnostics.
func (r Result) Output() string {
	return strings.TrimSpace(string(r.Stderr) + "\n" + string(r.Stdout))
}

type Runner struct {
	timeout     time.Duration
	outputLimit int
	slots       *semaphore.Weighted
	logger      *logging.Logger
}

func NewRunner(cfg config.ProcessConfig, logger *logging.Logger) *Runner {
	cfg.PopulateUnsetConfigVars()
	return &Runner{
		timeout:     cfg.ProcessTimeout,
		outputLimit: cfg.OutputLimit,
		slots:       semaphore.NewWeighted(int64(cfg.MaxConcurrentProcesses)),
		logger:      logger,
	}
}

func (r *Runner) Run(ctx context.Context, c Command) (Result, error) {
	if err := r.slots.Acquire(ctx, 1); err != nil {
		return Result{}, err
	}
	defer r.slots.Release(1)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout := &cappedBuffer{limit: r.outputLimit}
	stderr := &cappedBuffer{limit: r.outputLimit}

	cmd := exec.CommandContext(runCtx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = waitDelay
	cmd.Stderr = stderr
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	} else {
		cmd.Stdout = stdout
	}

	logger := r.logger.ForContext(ctx).WithAttrs("tool", c.Tool)
	logger.Debug("Running external tool", "command", c.String())

	start := time.Now()
	err := cmd.Run()
	result := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	logger.Debug("External tool finished", "exit_code", result.ExitCode, "duration", result.Duration.String(),
		"output", truncate(result.Output(), 2000))

	if err == nil {
		return result, nil
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return result, fmt.Errorf("%w: %s did not finish within %s", ErrTimeout, c.Tool, timeout)
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, &ExitError{Tool: c.Tool, ExitCode: exitErr.ExitCode(), Output: result.Output()}
	}
	return result, fmt.Errorf("running %s: %w", c.Tool, err)
}

type cappedBuffer struct {
	buf   []byte
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - len(b.buf); room > 0 {
		if len(p) > room {
			b.buf = append(b.buf, p[:room]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) Bytes() []byte {
	return b.buf
}
