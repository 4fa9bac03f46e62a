package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	dirPrefix = "pdftools-"
	outputDir = "out"
)

var (
	ErrInputTooLarge = errors.New("input exceeds the allowed size")
	ErrOutputMissing = errors.New("expected output file was not produced")
)

// Workspace is a scratch directory owned by a single operation. Everything in it is removed by
// Cleanup, whatever the outcome of the operation.
type Workspace struct {
	ID  string
	dir string
}

func New(root string) (*Workspace, error) {
	id := uuid.NewString()
	dir, err := os.MkdirTemp(root, dirPrefix+id+"-")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	if err = os.Mkdir(filepath.Join(dir, outputDir), 0700); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("creating workspace output dir: %w", err)
	}
	return &Workspace{ID: id, dir: dir}, nil
}

func (w *Workspace) Dir() string {
	return w.dir
}

func (w *Workspace) OutputDir() string {
	return filepath.Join(w.dir, outputDir)
}

func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, filepath.Base(name))
}

func (w *Workspace) OutputPath(name string) string {
	return filepath.Join(w.OutputDir(), filepath.Base(name))
}

// WriteInput copies at most maxSize bytes from r into the workspace. A larger stream is refused
// with ErrInputTooLarge.
func (w *Workspace) WriteInput(name string, r io.Reader, maxSize int64) (path string, written int64, err error) {
	path = w.Path(name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return "", 0, fmt.Errorf("creating input file: %w", err)
	}
	defer f.Close()

	written, err = io.Copy(f, io.LimitReader(r, maxSize+1))
	if err != nil {
		return "", written, fmt.Errorf("writing input file: %w", err)
	}
	if written > maxSize {
		return "", written, ErrInputTooLarge
	}
	return path, written, f.Close()
}

// ReadOutput returns the content of a produced file, failing when it is absent or empty.
func (w *Workspace) ReadOutput(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrOutputMissing, filepath.Base(path))
	} else if err != nil {
		return nil, fmt.Errorf("reading output file: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrOutputMissing, filepath.Base(path))
	}
	return content, nil
}

// Exists reports whether path was produced.
func (w *Workspace) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.dir)
}
