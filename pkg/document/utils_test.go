package document

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pdftools/internal/logging"
	"pdftools/pkg/config"
	"pdftools/pkg/model"
)

type testEnv struct {
	root      string
	toolDir   string
	processor *Processor
}

// missingTools points every tool at a path that does not exist, so tests never pick up whatever
// happens to be installed on the machine running them.
func missingTools(dir string) config.ToolPaths {
	return config.ToolPaths{
		Ghostscript: filepath.Join(dir, "missing-gs"),
		LibreOffice: filepath.Join(dir, "missing-soffice"),
		Calibre:     filepath.Join(dir, "missing-ebook-convert"),
		Java:        filepath.Join(dir, "missing-java"),
		Python:      filepath.Join(dir, "missing-python"),
		PdfToHTML:   filepath.Join(dir, "missing-pdftohtml"),
	}
}

func newTestEnv(t *testing.T, configure func(toolDir string, tools *config.ToolPaths)) *testEnv {
	t.Helper()
	env := &testEnv{root: t.TempDir(), toolDir: t.TempDir()}

	tools := missingTools(env.toolDir)
	if configure != nil {
		configure(env.toolDir, &tools)
	}
	env.processor = NewProcessor(config.ProcessConfig{
		TempDir:                env.root,
		MaxUploadSize:          64 * 1024,
		ProcessTimeout:         5 * time.Second,
		MaxConcurrentProcesses: 2,
		Tools:                  tools,
	}, logging.BuildLogger())
	return env
}

func inputFile(name string, content []byte) model.InputFile {
	return model.InputFile{Name: name, Content: bytes.NewReader(content), Size: int64(len(content))}
}

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("Error writing %s: %s", path, err)
	}
	return path
}
