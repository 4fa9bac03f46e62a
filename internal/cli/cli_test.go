package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pdftools/pkg/document"
	"pdftools/test"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout := bytes.NewBuffer(nil)
	err := Execute(context.Background(), args, stdout, bytes.NewBuffer(nil))
	return stdout.String(), err
}

func TestProcessConfigFromFlags(t *testing.T) {
	opts := globalOpts{maxUploadSize: "10MB", timeout: 3 * time.Second, maxConcurrent: 2}

	c, err := opts.processConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if c.MaxUploadSize != 10*1000*1000 {
		t.Errorf("Expected 10MB to parse to 10000000 bytes, got %d", c.MaxUploadSize)
	}
	if c.ProcessTimeout != 3*time.Second || c.MaxConcurrentProcesses != 2 {
		t.Errorf("Unexpected config %+v", c)
	}
	if c.TempDir == "" {
		t.Errorf("Expected temp dir default to be populated")
	}

	opts.maxUploadSize = "lots"
	if _, err = opts.processConfig(); err == nil {
		t.Errorf("Expected an invalid size to be rejected")
	}
}

func TestCompressCommand(t *testing.T) {
	dir := t.TempDir()
	gs := test.WriteFakeTool(t, dir, "gs", test.CopyToolScript)
	input := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(input, test.SamplePDF(), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "compress", "--input", input, "--quality", "low", "--ghostscript-path", gs, "--temp-dir", t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	expectedOutput := filepath.Join(dir, "compressed_report.pdf")
	content, err := os.ReadFile(expectedOutput)
	if err != nil {
		t.Fatalf("Expected %s to be written: %s", expectedOutput, err)
	}
	if !bytes.Equal(content, test.SamplePDF()) {
		t.Errorf("Unexpected output content")
	}
	if !strings.Contains(out, expectedOutput) {
		t.Errorf("Expected the output path to be printed, got %q", out)
	}
}

func TestLockCommandRequiresPassword(t *testing.T) {
	_, err := runCommand(t, "lock", "--input", "contract.pdf")
	if err == nil || !strings.Contains(err.Error(), "password") {
		t.Errorf("Expected a missing password error, got %v", err)
	}
}

func TestConvertCommandRejectsUnknownExtension(t *testing.T) {
	_, err := runCommand(t, "convert", "--input", "notes.txt")
	if !errors.Is(err, document.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	soffice := test.WriteFakeTool(t, dir, "soffice", test.OfficeToolScript)
	input := filepath.Join(dir, "letter.docx")
	if err := os.WriteFile(input, test.SampleDOCX(), 0600); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "converted.pdf")

	out, err := runCommand(t, "convert", "--input", input, "--output", output, "--engine", "libreoffice",
		"--libreoffice-path", soffice, "--temp-dir", t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if _, err = os.Stat(output); err != nil {
		t.Errorf("Expected %s to be written: %s", output, err)
	}
	if !strings.Contains(out, "engine libreoffice") {
		t.Errorf("Expected the engine to be reported, got %q", out)
	}
}

func TestEnginesCommand(t *testing.T) {
	dir := t.TempDir()
	gs := test.WriteFakeTool(t, dir, "gs", test.CopyToolScript)
	missing := filepath.Join(dir, "missing")

	out, err := runCommand(t, "engines", "--ghostscript-path", gs, "--libreoffice-path", missing, "--calibre-path", missing,
		"--java-path", missing, "--python-path", missing, "--pdftohtml-path", missing)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !strings.Contains(out, gs) {
		t.Errorf("Expected ghostscript path in output, got %q", out)
	}
	if !strings.Contains(out, "libreoffice  missing") {
		t.Errorf("Expected libreoffice to be reported missing, got %q", out)
	}
	if !strings.Contains(out, "pdf2docx     unavailable") {
		t.Errorf("Expected pdf2docx to be reported unavailable, got %q", out)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runCommand(t, "engines", "--log-level", "loud")
	if err == nil {
		t.Errorf("Expected an invalid log level to be rejected")
	}
}

func TestProfilesAreWrittenWhenCommandFails(t *testing.T) {
	dir := t.TempDir()
	cpuProfile := filepath.Join(dir, "cpu.prof")
	memProfile := filepath.Join(dir, "mem.prof")

	_, err := runCommand(t, "convert", "--input", "notes.txt", "--cpu-profile", cpuProfile, "--mem-profile", memProfile)
	if !errors.Is(err, document.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}

	for _, path := range []string{cpuProfile, memProfile} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("Expected %s to be written: %s", path, err)
		} else if info.Size() == 0 {
			t.Errorf("Expected %s to be flushed, it is empty", path)
		}
	}

	// A second run can only start CPU profiling if the first one was stopped
	if _, err = runCommand(t, "engines", "--cpu-profile", cpuProfile); err != nil {
		t.Errorf("Expected the CPU profiler to be free again, got %s", err)
	}
}
