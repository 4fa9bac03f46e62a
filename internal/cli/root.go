package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pdftools/internal/logging"
	"pdftools/pkg/config"
	"pdftools/pkg/document"
)

type globalOpts struct {
	logLevel      string
	cpuProfile    string
	memProfile    string
	tempDir       string
	maxUploadSize string
	timeout       time.Duration
	maxConcurrent int
	tools         config.ToolPaths
}

func (o *globalOpts) processConfig() (config.ProcessConfig, error) {
	maxUploadSize, err := humanize.ParseBytes(o.maxUploadSize)
	if err != nil {
		return config.ProcessConfig{}, fmt.Errorf("invalid max upload size %q: %w", o.maxUploadSize, err)
	}

	c := config.ProcessConfig{
		TempDir:                o.tempDir,
		MaxUploadSize:          int64(maxUploadSize),
		ProcessTimeout:         o.timeout,
		MaxConcurrentProcesses: o.maxConcurrent,
		Tools:                  o.tools,
	}
	c.PopulateUnsetConfigVars()
	return c, nil
}

func (o *globalOpts) newProcessor() (*document.Processor, error) {
	c, err := o.processConfig()
	if err != nil {
		return nil, err
	}
	return document.NewProcessor(c, logging.BuildLogger()), nil
}

// Execute runs the command line with args. Profilers started by the command are stopped once it
// returns, whether or not it failed.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd, prof := rootCommand()
	defer prof.stop()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

type profiling struct {
	stopProfilers func()
}

func (p *profiling) stop() {
	if p.stopProfilers != nil {
		p.stopProfilers()
		p.stopProfilers = nil
	}
}

func rootCommand() (*cobra.Command, *profiling) {
	opts := &globalOpts{}
	prof := &profiling{}

	rootCmd := &cobra.Command{
		Use:           "pdftools",
		Short:         "Compress, password protect and convert documents using locally installed tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.SetLevel(opts.logLevel); err != nil {
				return err
			}
			stop, err := startProfilers(opts.cpuProfile, opts.memProfile)
			if err != nil {
				return err
			}
			prof.stopProfilers = stop
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level. Options are debug, info, warn, error")
	flags.StringVar(&opts.cpuProfile, "cpu-profile", "", "Dump a CPU profile into the supplied file")
	flags.StringVar(&opts.memProfile, "mem-profile", "", "Dump a heap profile into the supplied file on exit")
	flags.StringVar(&opts.tempDir, "temp-dir", "", "Directory in which per request workspaces are created. Defaults to the system temp dir")
	flags.StringVar(&opts.maxUploadSize, "max-upload-size", humanize.Bytes(config.DefaultMaxUploadSize), "Largest accepted input file, e.g. 50MB")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultProcessTimeout, "Time after which an external tool is killed")
	flags.IntVar(&opts.maxConcurrent, "max-concurrent-processes", 0, "External tools allowed to run at once. Defaults to the number of CPUs")

	flags.StringVar(&opts.tools.Ghostscript, "ghostscript-path", os.Getenv("GHOSTSCRIPT_PATH"), "Ghostscript executable, searched for when empty")
	flags.StringVar(&opts.tools.LibreOffice, "libreoffice-path", os.Getenv("LIBREOFFICE_PATH"), "LibreOffice (soffice) executable, searched for when empty")
	flags.StringVar(&opts.tools.Calibre, "calibre-path", os.Getenv("CALIBRE_PATH"), "Calibre ebook-convert executable, searched for when empty")
	flags.StringVar(&opts.tools.Java, "java-path", os.Getenv("JAVA_PATH"), "Java executable, searched for when empty")
	flags.StringVar(&opts.tools.ConverterJar, "converter-jar", os.Getenv("PDF_CONVERTER_JAR"), "Jar used by the java PDF to DOCX engine. The engine is disabled when empty")
	flags.StringVar(&opts.tools.Python, "python-path", os.Getenv("PYTHON_PATH"), "Python 3 interpreter, searched for when empty")
	flags.StringVar(&opts.tools.PdfToHTML, "pdftohtml-path", os.Getenv("PDFTOHTML_PATH"), "Poppler pdftohtml executable, searched for when empty")

	rootCmd.AddCommand(
		ServeAppCommand(opts),
		compressCommand(opts),
		lockCommand(opts),
		unlockCommand(opts),
		convertCommand(opts),
		enginesCommand(opts),
	)
	return rootCmd, prof
}
