package toolchain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"pdftools/internal/logging"
	"pdftools/pkg/config"
	"pdftools/test"
)

func newTestRunner(timeout time.Duration, concurrency int) *Runner {
	return NewRunner(config.ProcessConfig{
		ProcessTimeout:         timeout,
		MaxConcurrentProcesses: concurrency,
		OutputLimit:            64,
	}, logging.BuildLogger())
}

func TestRunCapturesOutput(t *testing.T) {
	tool := test.WriteFakeTool(t, t.TempDir(), "echo-tool", `echo "to stdout"
echo "to stderr" >&2
`)

	result, err := newTestRunner(5*time.Second, 1).Run(context.Background(), Command{Tool: Ghostscript, Path: tool})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if strings.TrimSpace(string(result.Stdout)) != "to stdout" {
		t.Errorf("Unexpected stdout %q", result.Stdout)
	}
	if strings.TrimSpace(string(result.Stderr)) != "to stderr" {
		t.Errorf("Unexpected stderr %q", result.Stderr)
	}
	if result.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", result.ExitCode)
	}
}

func TestRunRedirectsStdout(t *testing.T) {
	tool := test.WriteFakeTool(t, t.TempDir(), "html-tool", `echo "<html></html>"
`)

	out := bytes.NewBuffer(nil)
	result, err := newTestRunner(5*time.Second, 1).Run(context.Background(), Command{Tool: PdfToHTML, Path: tool, Stdout: out})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if strings.TrimSpace(out.String()) != "<html></html>" {
		t.Errorf("Expected redirected output, got %q", out.String())
	}
	if len(result.Stdout) != 0 {
		t.Errorf("Expected no captured stdout, got %q", result.Stdout)
	}
}

func TestRunCapsCapturedOutput(t *testing.T) {
	tool := test.WriteFakeTool(t, t.TempDir(), "noisy-tool", `i=0
while [ $i -lt 100 ]; do echo "0123456789"; i=$((i+1)); done
`)

	result, err := newTestRunner(5*time.Second, 1).Run(context.Background(), Command{Tool: Ghostscript, Path: tool})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if len(result.Stdout) != 64 {
		t.Errorf("Expected stdout capped at 64 bytes, got %d", len(result.Stdout))
	}
}

func TestRunReportsExitStatus(t *testing.T) {
	tool := test.WriteFakeTool(t, t.TempDir(), "failing-tool", test.FailingToolScript)

	result, err := newTestRunner(5*time.Second, 1).Run(context.Background(), Command{Tool: Calibre, Path: tool})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected ExitError, got %v", err)
	}
	if exitErr.ExitCode != 3 || result.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d/%d", exitErr.ExitCode, result.ExitCode)
	}
	if !strings.Contains(exitErr.Error(), "conversion failed") {
		t.Errorf("Expected tool output in error, got %q", exitErr.Error())
	}
}

func TestRunTimesOut(t *testing.T) {
	tool := test.WriteFakeTool(t, t.TempDir(), "hanging-tool", test.HangingToolScript)

	start := time.Now()
	_, err := newTestRunner(200*time.Millisecond, 1).Run(context.Background(), Command{Tool: LibreOffice, Path: tool})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Timeout took too long to be reported: %s", elapsed)
	}
}

func TestRunHonoursCallerCancellation(t *testing.T) {
	tool := test.WriteFakeTool(t, t.TempDir(), "hanging-tool", test.HangingToolScript)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := newTestRunner(time.Minute, 1).Run(ctx, Command{Tool: LibreOffice, Path: tool})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestRunWaitsForFreeSlot(t *testing.T) {
	tool := test.WriteFakeTool(t, t.TempDir(), "hanging-tool", test.HangingToolScript)
	runner := newTestRunner(time.Minute, 1)

	busyCtx, stopBusy := context.WithCancel(context.Background())
	defer stopBusy()
	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = runner.Run(busyCtx, Command{Tool: Ghostscript, Path: tool})
	}()
	<-started
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := runner.Run(ctx, Command{Tool: Ghostscript, Path: tool})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected to give up waiting for a slot, got %v", err)
	}
}

func TestCommandStringRedactsPasswords(t *testing.T) {
	c := Command{
		Path: "gs",
		Args: []string{"-sDEVICE=pdfwrite", "-sOwnerPassword=owner", "-sUserPassword=user", "-sPDFPassword=secret", "in.pdf"},
	}

	rendered := c.String()
	for _, secret := range []string{"owner", "user", "secret"} {
		if strings.Contains(rendered, "="+secret) {
			t.Errorf("Password %s leaked into %q", secret, rendered)
		}
	}
	if !strings.Contains(rendered, "-sDEVICE=pdfwrite") || !strings.HasSuffix(rendered, "in.pdf") {
		t.Errorf("Non-secret arguments missing from %q", rendered)
	}
}

func TestRunLogsCarryRequestID(t *testing.T) {
	tool := test.WriteFakeTool(t, t.TempDir(), "quiet-tool", "exit 0\n")

	buf := bytes.NewBuffer(nil)
	logging.SetOutput(buf)
	defer logging.SetOutput(os.Stdout)
	if err := logging.SetLevel("debug"); err != nil {
		t.Fatal(err)
	}
	defer logging.SetLevel("info")

	ctx := logging.ContextWithRequestID(context.Background(), "req-7")
	if _, err := newTestRunner(5*time.Second, 1).Run(ctx, Command{Tool: Ghostscript, Path: tool}); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) == 0 || len(lines[0]) == 0 {
		t.Fatalf("Expected debug log lines for the tool run")
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("Log line is not valid JSON: %s", err)
		}
		if entry[logging.RequestIDKey] != "req-7" {
			t.Errorf("Expected request_id req-7 in %s", line)
		}
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short", "abc", 5, "abc"},
		{"ascii", "abcdef", 3, "abc..."},
		{"cut inside rune", "aé", 2, "a..."},
		{"cut inside three byte rune", "ab€c", 4, "ab..."},
		{"cut at rune start", "éa", 2, "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8 %q", tt.input, tt.max, got)
			}
		})
	}
}
