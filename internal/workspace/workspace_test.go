package workspace

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"pdftools/test"
)

func TestWorkspaceLifecycle(t *testing.T) {
	root := t.TempDir()
	ws, err := New(root)
	if err != nil {
		t.Fatalf("Error creating workspace: %s", err)
	}
	if !strings.Contains(ws.Dir(), ws.ID) {
		t.Errorf("Expected workspace dir %s to contain its ID %s", ws.Dir(), ws.ID)
	}

	content := test.GenerateRandomBytes(4096)
	path, written, err := ws.WriteInput("input.pdf", bytes.NewReader(content), 8192)
	if err != nil {
		t.Fatalf("Error writing input: %s", err)
	}
	if written != int64(len(content)) {
		t.Errorf("Expected %d bytes written, got %d", len(content), written)
	}

	readBack, err := ws.ReadOutput(path)
	if err != nil || !bytes.Equal(readBack, content) {
		t.Errorf("Input was not stored intact (%v)", err)
	}

	if err = ws.Cleanup(); err != nil {
		t.Fatalf("Error cleaning up: %s", err)
	}
	test.AssertDirEmpty(t, root)
}

func TestWriteInputRefusesOversizedStreams(t *testing.T) {
	root := t.TempDir()
	ws, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup()

	_, _, err = ws.WriteInput("input.pdf", bytes.NewReader(test.GenerateRandomBytes(1025)), 1024)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("Expected ErrInputTooLarge, got %v", err)
	}
}

func TestWriteInputKeepsNamesInsideWorkspace(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup()

	path, _, err := ws.WriteInput("../../escape.pdf", bytes.NewReader([]byte("%PDF-")), 1024)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(path, ws.Dir()) {
		t.Errorf("Expected %s to live in %s", path, ws.Dir())
	}
}

func TestReadOutputReportsMissingAndEmptyFiles(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup()

	if _, err = ws.ReadOutput(ws.OutputPath("missing.pdf")); !errors.Is(err, ErrOutputMissing) {
		t.Errorf("Expected ErrOutputMissing for absent file, got %v", err)
	}

	empty := ws.OutputPath("empty.pdf")
	if err = os.WriteFile(empty, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if _, err = ws.ReadOutput(empty); !errors.Is(err, ErrOutputMissing) {
		t.Errorf("Expected ErrOutputMissing for empty file, got %v", err)
	}
	if ws.Exists(empty) {
		t.Errorf("Empty output should not count as produced")
	}
}
