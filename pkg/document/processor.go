package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"pdftools/internal/logging"
	"pdftools/internal/toolchain"
	"pdftools/internal/workspace"
	"pdftools/pkg/config"
	"pdftools/pkg/model"
)

const (
	probeTimeout = 20 * time.Second
)

// Processor runs document operations by delegating them to external tools. It is safe for
// concurrent use; every operation gets its own scratch workspace.
type Processor struct {
	cfg     config.ProcessConfig
	locator *toolchain.Locator
	runner  *toolchain.Runner
	logger  *logging.Logger

	probeMu sync.Mutex
	probes  map[string]error
}

type Result struct {
	File  model.OutputFile
	Stats model.ProcessStats
}

func NewProcessor(cfg config.ProcessConfig, logger *logging.Logger) *Processor {
	cfg.PopulateUnsetConfigVars()
	return &Processor{
		cfg:     cfg,
		locator: toolchain.NewLocator(cfg.Tools),
		runner:  toolchain.NewRunner(cfg, logger),
		logger:  logger,
		probes:  map[string]error{},
	}
}

func (p *Processor) MaxUploadSize() int64 {
	return p.cfg.MaxUploadSize
}

type job struct {
	operation  string
	input      model.InputFile
	from       Format
	to         Format
	outputName string
	// inspect runs on the stored input before any tool is started
	inspect func(inputPath string) error
	step    func(ctx context.Context, r *run) (outputPath string, engine string, err error)
}

// run carries the per-operation state handed to command builders.
type run struct {
	p         *Processor
	ws        *workspace.Workspace
	inputPath string
	logger    *logging.Logger
	toolTime  time.Duration
}

func (r *run) exec(ctx context.Context, c toolchain.Command) (toolchain.Result, error) {
	if c.Dir == "" {
		c.Dir = r.ws.Dir()
	}
	result, err := r.p.runner.Run(ctx, c)
	r.toolTime += result.Duration
	if err == nil || errors.Is(err, ErrTimeout) || ctx.Err() != nil {
		return result, err
	}
	return result, fmt.Errorf("%w: %w", ErrToolFailed, err)
}

func (p *Processor) process(ctx context.Context, j job) (*Result, error) {
	start := time.Now()

	if j.input.Size > p.cfg.MaxUploadSize {
		return nil, p.tooLarge(j.input.Size)
	}
	if err := j.from.CheckName(j.input.Name); err != nil {
		return nil, err
	}

	ws, err := workspace.New(p.cfg.TempDir)
	if err != nil {
		return nil, err
	}
	logger := p.logger.ForContext(ctx).WithAttrs("operation", j.operation, "workspace", ws.ID)
	defer func() {
		if cleanupErr := ws.Cleanup(); cleanupErr != nil {
			logger.WithError(cleanupErr).Warn("Error removing workspace")
		}
	}()

	inputPath, written, err := ws.WriteInput("input"+j.from.Extension, j.input.Content, p.cfg.MaxUploadSize)
	if errors.Is(err, workspace.ErrInputTooLarge) {
		return nil, p.tooLarge(written)
	} else if err != nil {
		return nil, err
	}
	if err = j.from.checkFile(inputPath); err != nil {
		return nil, err
	}
	if j.inspect != nil {
		if err = j.inspect(inputPath); err != nil {
			return nil, err
		}
	}

	r := &run{p: p, ws: ws, inputPath: inputPath, logger: logger}
	outputPath, engine, err := j.step(ctx, r)
	if err != nil {
		return nil, err
	}

	content, err := ws.ReadOutput(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrToolFailed, err)
	}

	return &Result{
		File: model.OutputFile{
			Name:        j.outputName,
			ContentType: j.to.ContentType,
			Content:     content,
		},
		Stats: model.ProcessStats{
			Operation:  j.operation,
			Engine:     engine,
			InputSize:  written,
			OutputSize: int64(len(content)),
			ToolTime:   r.toolTime,
			Total:      time.Since(start),
		},
	}, nil
}

func (p *Processor) tooLarge(size int64) error {
	return fmt.Errorf("%w: upload of %s exceeds the %s limit", ErrFileTooLarge,
		humanize.Bytes(uint64(size)), humanize.Bytes(uint64(p.cfg.MaxUploadSize)))
}

func (p *Processor) find(tool toolchain.Tool) (string, error) {
	return p.locator.Find(tool)
}

// probePython checks that the interpreter can import every module. Results are cached until the
// next Refresh.
func (p *Processor) probePython(ctx context.Context, python string, modules ...string) error {
	key := strings.Join(modules, ",")

	p.probeMu.Lock()
	probeErr, cached := p.probes[key]
	p.probeMu.Unlock()
	if cached {
		return probeErr
	}

	_, err := p.runner.Run(ctx, toolchain.Command{
		Tool:    toolchain.Python,
		Path:    python,
		Args:    []string{"-c", "import " + key},
		Dir:     os.TempDir(),
		Timeout: probeTimeout,
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		probeErr = fmt.Errorf("%w: python modules %s are not importable", ErrDependencyMissing, key)
	}

	p.probeMu.Lock()
	p.probes[key] = probeErr
	p.probeMu.Unlock()
	return probeErr
}

// Refresh forgets every cached tool location and module probe.
func (p *Processor) Refresh() {
	p.locator.Refresh()
	p.probeMu.Lock()
	p.probes = map[string]error{}
	p.probeMu.Unlock()
}
