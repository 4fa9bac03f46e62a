package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"pdftools/pkg/config"
)

// Locator finds the executables of external tools. Lookups are cached until Refresh is called.
type Locator struct {
	overrides map[Tool]string

	goos     string
	lookPath func(string) (string, error)
	getenv   func(string) string
	glob     func(string) ([]string, error)
	stat     func(string) (os.FileInfo, error)

	mu    sync.Mutex
	cache map[Tool]string
}

func NewLocator(paths config.ToolPaths) *Locator {
	return &Locator{
		overrides: map[Tool]string{
			Ghostscript: paths.Ghostscript,
			LibreOffice: paths.LibreOffice,
			Calibre:     paths.Calibre,
			Java:        paths.Java,
			Python:      paths.Python,
			PdfToHTML:   paths.PdfToHTML,
		},
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
		glob:     filepath.Glob,
		stat:     os.Stat,
		cache:    map[Tool]string{},
	}
}

func (l *Locator) Find(tool Tool) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if path, found := l.cache[tool]; found {
		return path, nil
	}

	path, err := l.search(tool)
	if err != nil {
		return "", err
	}
	l.cache[tool] = path
	return path, nil
}

func (l *Locator) Refresh() {
	l.mu.Lock()
	l.cache = map[Tool]string{}
	l.mu.Unlock()
}

func (l *Locator) search(tool Tool) (string, error) {
	if override := l.overrides[tool]; override != "" {
		if l.isFile(override) {
			return override, nil
		}
		return "", fmt.Errorf("%w: %s is not available at configured path %s", ErrToolNotFound, tool, override)
	}

	for _, name := range l.commandNames(tool) {
		if path, err := l.lookPath(name); err == nil {
			return path, nil
		}
	}

	for _, pattern := range l.installLocations(tool) {
		matches, err := l.glob(pattern)
		if err != nil {
			continue
		}
		// Versioned directories (gs10.06.0, gs10.05.0, ...) sort so the newest comes first
		sort.Sort(sort.Reverse(sort.StringSlice(matches)))
		for _, match := range matches {
			if l.isFile(match) {
				return match, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s, %s", ErrToolNotFound, tool, tool.InstallHint())
}

func (l *Locator) isFile(path string) bool {
	info, err := l.stat(path)
	return err == nil && !info.IsDir()
}

func (l *Locator) commandNames(tool Tool) []string {
	windows := l.goos == "windows"
	switch tool {
	case Ghostscript:
		if windows {
			return []string{"gswin64c", "gswin32c", "gs"}
		}
		return []string{"gs"}
	case LibreOffice:
		return []string{"soffice", "libreoffice"}
	case Calibre:
		return []string{"ebook-convert"}
	case Java:
		return []string{"java"}
	case Python:
		if windows {
			return []string{"python", "py"}
		}
		return []string{"python3", "python"}
	case PdfToHTML:
		return []string{"pdftohtml"}
	}
	return nil
}

func (l *Locator) installLocations(tool Tool) []string {
	switch l.goos {
	case "windows":
		switch tool {
		case Ghostscript:
			return []string{
				`C:\Program Files\gs\gs*\bin\gswin64c.exe`,
				`C:\Program Files (x86)\gs\gs*\bin\gswin32c.exe`,
			}
		case LibreOffice:
			return []string{
				`C:\Program Files\LibreOffice\program\soffice.exe`,
				`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
			}
		case Calibre:
			return []string{`C:\Program Files\Calibre2\ebook-convert.exe`}
		}
	case "darwin":
		switch tool {
		case LibreOffice:
			return []string{"/Applications/LibreOffice.app/Contents/MacOS/soffice"}
		case Calibre:
			return []string{"/Applications/calibre.app/Contents/MacOS/ebook-convert"}
		}
	}

	if tool == Java {
		if javaHome := l.getenv("JAVA_HOME"); javaHome != "" {
			binary := "java"
			if l.goos == "windows" {
				binary = "java.exe"
			}
			return []string{filepath.Join(javaHome, "bin", binary)}
		}
	}
	return nil
}
