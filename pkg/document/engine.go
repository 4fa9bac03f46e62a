package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"pdftools/internal/toolchain"
)

type Engine string

const (
	EngineAuto        Engine = "auto"
	EnginePDF2DOCX    Engine = "pdf2docx"
	EnginePyMuPDF     Engine = "pymupdf"
	EngineJava        Engine = "java"
	EngineLibreOffice Engine = "libreoffice"
	EnginePoppler     Engine = "poppler"
	EngineCalibre     Engine = "calibre"
)

// converter describes one way of turning a document into another format and what it needs
// installed to do so.
type converter struct {
	engine        Engine
	tools         []toolchain.Tool
	pythonModules []string
	needsJar      bool
	convert       func(ctx context.Context, r *run, tools toolPaths, to Format) (outputPath string, err error)
}

type toolPaths map[toolchain.Tool]string

var (
	// Ordered by preference: the first available engine is tried first in auto mode
	pdfToDocxConverters = []converter{
		{engine: EnginePDF2DOCX, tools: []toolchain.Tool{toolchain.Python}, pythonModules: []string{"pdf2docx"}, convert: pythonConvert(pdf2docxScript)},
		{engine: EnginePyMuPDF, tools: []toolchain.Tool{toolchain.Python}, pythonModules: []string{"fitz", "docx"}, convert: pythonConvert(pymupdfScript)},
		{engine: EngineJava, tools: []toolchain.Tool{toolchain.Java}, needsJar: true, convert: javaConvert},
		{engine: EngineLibreOffice, tools: []toolchain.Tool{toolchain.LibreOffice}, convert: officeConvert},
		{engine: EnginePoppler, tools: []toolchain.Tool{toolchain.PdfToHTML, toolchain.LibreOffice}, convert: popplerConvert},
		{engine: EngineCalibre, tools: []toolchain.Tool{toolchain.Calibre}, convert: calibreConvert},
	}

	docxToPdfConverters = []converter{
		{engine: EngineLibreOffice, tools: []toolchain.Tool{toolchain.LibreOffice}, convert: officeConvert},
		{engine: EngineCalibre, tools: []toolchain.Tool{toolchain.Calibre}, convert: calibreConvert},
	}
)

func ParseEngine(s string) Engine {
	if s == "" {
		return EngineAuto
	}
	return Engine(strings.ToLower(strings.TrimSpace(s)))
}

func engineNames(converters []converter) []string {
	names := make([]string, 0, len(converters))
	for _, c := range converters {
		names = append(names, string(c.engine))
	}
	return names
}

func selectConverters(engine Engine, converters []converter) ([]converter, error) {
	if engine == EngineAuto {
		return converters, nil
	}
	for _, c := range converters {
		if c.engine == engine {
			return []converter{c}, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown engine %q, expected auto or one of %s", ErrInvalidInput, engine,
		strings.Join(engineNames(converters), ", "))
}

// resolve locates everything c needs, failing with ErrDependencyMissing when something is absent.
func (p *Processor) resolve(ctx context.Context, c converter) (toolPaths, error) {
	paths := toolPaths{}
	for _, tool := range c.tools {
		path, err := p.find(tool)
		if err != nil {
			return nil, err
		}
		paths[tool] = path
	}
	if c.needsJar {
		if p.cfg.Tools.ConverterJar == "" {
			return nil, fmt.Errorf("%w: %s engine needs the converter jar, none is configured", ErrDependencyMissing, c.engine)
		}
		if info, err := os.Stat(p.cfg.Tools.ConverterJar); err != nil || info.IsDir() {
			return nil, fmt.Errorf("%w: converter jar not found at %s", ErrDependencyMissing, p.cfg.Tools.ConverterJar)
		}
	}
	if len(c.pythonModules) > 0 {
		if err := p.probePython(ctx, paths[toolchain.Python], c.pythonModules...); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
