package toolchain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

type Tool string

const (
	Ghostscript Tool = "ghostscript"
	LibreOffice Tool = "libreoffice"
	Calibre     Tool = "calibre"
	Java        Tool = "java"
	Python      Tool = "python"
	PdfToHTML   Tool = "pdftohtml"
)

var (
	AllTools = []Tool{Ghostscript, LibreOffice, Calibre, Java, Python, PdfToHTML}

	ErrToolNotFound = errors.New("external tool not found")
	ErrTimeout      = errors.New("external tool timed out")

	installHints = map[Tool]string{
		Ghostscript: "install Ghostscript from https://ghostscript.com/releases/gsdnld.html",
		LibreOffice: "install LibreOffice from https://www.libreoffice.org/download/",
		Calibre:     "install Calibre from https://calibre-ebook.com/download",
		Java:        "install a Java runtime (17 or newer)",
		Python:      "install Python 3 with the pdf2docx, PyMuPDF and python-docx packages",
		PdfToHTML:   "install the Poppler utilities (poppler-utils)",
	}
)

func (t Tool) InstallHint() string {
	return installHints[t]
}

// ExitError reports a tool that ran to completion with a non-zero exit status.
type ExitError struct {
	Tool     Tool
	ExitCode int
	Output   string
}

func (e *ExitError) Error() string {
	output := strings.TrimSpace(e.Output)
	if output == "" {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.ExitCode, truncate(output, 500))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
