package config

import (
	"os"
	"runtime"
	"time"
)

const (
	DefaultMaxUploadSize  = 50 * 1000 * 1000
	DefaultProcessTimeout = 120 * time.Second
	DefaultOutputLimit    = 1 << 20
)

// ToolPaths pins external executables to explicit locations. An empty field means the tool is
// searched for on PATH and in the platform's usual install directories.
type ToolPaths struct {
	Ghostscript  string
	LibreOffice  string
	Calibre      string
	Java         string
	ConverterJar string
	Python       string
	PdfToHTML    string
}

type ProcessConfig struct {
	TempDir                string
	MaxUploadSize          int64
	ProcessTimeout         time.Duration
	MaxConcurrentProcesses int
	// OutputLimit caps how many bytes of stdout/stderr are kept per process
	OutputLimit int
	Tools       ToolPaths
}

func (c *ProcessConfig) PopulateUnsetConfigVars() {
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.MaxUploadSize < 1 {
		c.MaxUploadSize = DefaultMaxUploadSize
	}
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = DefaultProcessTimeout
	}
	if c.MaxConcurrentProcesses < 1 {
		c.MaxConcurrentProcesses = runtime.NumCPU()
	}
	if c.OutputLimit < 1 {
		c.OutputLimit = DefaultOutputLimit
	}
}
