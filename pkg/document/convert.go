package document

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"pdftools/internal/toolchain"
	"pdftools/pkg/model"
)

const (
	pdf2docxScript = `import sys
from pdf2docx import Converter
cv = Converter(sys.argv[1])
try:
    cv.convert(sys.argv[2])
finally:
    cv.close()
`

	pymupdfScript = `import sys
import fitz
from docx import Document
from docx.shared import Pt
src = fitz.open(sys.argv[1])
doc = Document()
for number, page in enumerate(src):
    if number:
        doc.add_page_break()
    for block in page.get_text("dict")["blocks"]:
        for line in block.get("lines", []):
            spans = [s for s in line["spans"] if s["text"].strip()]
            if not spans:
                continue
            paragraph = doc.add_paragraph()
            for span in spans:
                run = paragraph.add_run(span["text"])
                run.font.size = Pt(max(1, round(span["size"])))
                run.bold = bool(span["flags"] & 16)
                run.italic = bool(span["flags"] & 2)
doc.save(sys.argv[2])
`

	officeDocxFilter = "docx:MS Word 2007 XML"
	officePDFImport  = "writer_pdf_import"
	officeHTMLImport = "HTML (StarWriter)"
)

// PdfToDocx converts a PDF into a Word document. With EngineAuto every installed engine is tried
// in order of preference until one succeeds.
func (p *Processor) PdfToDocx(ctx context.Context, in model.InputFile, engine Engine) (*Result, error) {
	return p.convert(ctx, "pdf-to-docx", in, FormatPDF, FormatDOCX, engine, pdfToDocxConverters)
}

// DocxToPdf converts a Word document into a PDF.
func (p *Processor) DocxToPdf(ctx context.Context, in model.InputFile, engine Engine) (*Result, error) {
	return p.convert(ctx, "docx-to-pdf", in, FormatDOCX, FormatPDF, engine, docxToPdfConverters)
}

func (p *Processor) convert(ctx context.Context, operation string, in model.InputFile, from, to Format, engine Engine,
	converters []converter) (*Result, error) {

	candidates, err := selectConverters(engine, converters)
	if err != nil {
		return nil, err
	}

	return p.process(ctx, job{
		operation:  operation,
		input:      in,
		from:       from,
		to:         to,
		outputName: Stem(in.Name) + to.Extension,
		step: func(ctx context.Context, r *run) (string, string, error) {
			var lastErr error
			attempted := 0
			for _, c := range candidates {
				paths, err := p.resolve(ctx, c)
				if err != nil {
					if len(candidates) == 1 || ctx.Err() != nil {
						return "", "", err
					}
					r.logger.Debug("Skipping unavailable engine", "engine", c.engine, "reason", err.Error())
					continue
				}

				attempted++
				outputPath, err := c.convert(ctx, r, paths, to)
				if err == nil && !r.ws.Exists(outputPath) {
					err = fmt.Errorf("%w: %s engine produced no output", ErrToolFailed, c.engine)
				}
				if err == nil {
					return outputPath, string(c.engine), nil
				}
				if ctx.Err() != nil {
					return "", "", err
				}
				r.logger.WithError(err).Warn("Conversion engine failed", "engine", c.engine)
				lastErr = err
			}

			if attempted == 0 {
				return "", "", fmt.Errorf("%w: none of the %s engines (%s) are installed", ErrDependencyMissing,
					operation, strings.Join(engineNames(candidates), ", "))
			}
			return "", "", lastErr
		},
	})
}

func pythonConvert(script string) func(context.Context, *run, toolPaths, Format) (string, error) {
	return func(ctx context.Context, r *run, tools toolPaths, to Format) (string, error) {
		outputPath := r.ws.OutputPath(Stem(r.inputPath) + to.Extension)
		_, err := r.exec(ctx, toolchain.Command{
			Tool: toolchain.Python,
			Path: tools[toolchain.Python],
			Args: []string{"-c", script, r.inputPath, outputPath},
		})
		return outputPath, err
	}
}

func javaConvert(ctx context.Context, r *run, tools toolPaths, to Format) (string, error) {
	outputPath := r.ws.OutputPath(Stem(r.inputPath) + to.Extension)
	_, err := r.exec(ctx, toolchain.Command{
		Tool: toolchain.Java,
		Path: tools[toolchain.Java],
		Args: []string{"-jar", r.p.cfg.Tools.ConverterJar, r.inputPath, outputPath},
	})
	return outputPath, err
}

func calibreConvert(ctx context.Context, r *run, tools toolPaths, to Format) (string, error) {
	outputPath := r.ws.OutputPath(Stem(r.inputPath) + to.Extension)
	_, err := r.exec(ctx, toolchain.Command{
		Tool: toolchain.Calibre,
		Path: tools[toolchain.Calibre],
		Args: []string{r.inputPath, outputPath},
	})
	return outputPath, err
}

func officeConvert(ctx context.Context, r *run, tools toolPaths, to Format) (string, error) {
	if to.Extension == FormatDOCX.Extension {
		return runOffice(ctx, r, tools[toolchain.LibreOffice], r.inputPath, officePDFImport, officeDocxFilter)
	}
	return runOffice(ctx, r, tools[toolchain.LibreOffice], r.inputPath, "", strings.TrimPrefix(to.Extension, "."))
}

// popplerConvert renders the PDF to HTML with pdftohtml and lets LibreOffice turn the HTML into DOCX.
func popplerConvert(ctx context.Context, r *run, tools toolPaths, to Format) (string, error) {
	htmlPath := r.ws.Path(Stem(r.inputPath) + ".html")
	htmlFile, err := os.Create(htmlPath)
	if err != nil {
		return "", err
	}
	_, err = r.exec(ctx, toolchain.Command{
		Tool:   toolchain.PdfToHTML,
		Path:   tools[toolchain.PdfToHTML],
		Args:   []string{"-s", "-i", "-noframes", "-q", "-stdout", r.inputPath},
		Stdout: htmlFile,
	})
	if closeErr := htmlFile.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}
	if !r.ws.Exists(htmlPath) {
		return "", fmt.Errorf("%w: pdftohtml produced no output", ErrToolFailed)
	}
	return runOffice(ctx, r, tools[toolchain.LibreOffice], htmlPath, officeHTMLImport, officeDocxFilter)
}

// runOffice runs a headless LibreOffice conversion with a profile private to the workspace, so
// concurrent conversions do not fight over the user profile lock.
func runOffice(ctx context.Context, r *run, soffice, inputPath, inFilter, convertTo string) (string, error) {
	args := []string{
		"--headless",
		"--norestore",
		"--nolockcheck",
		"-env:UserInstallation=" + fileURL(r.ws.Path("office-profile")),
	}
	if inFilter != "" {
		args = append(args, "--infilter="+inFilter)
	}
	args = append(args, "--convert-to", convertTo, "--outdir", r.ws.OutputDir(), inputPath)

	_, err := r.exec(ctx, toolchain.Command{
		Tool: toolchain.LibreOffice,
		Path: soffice,
		Args: args,
	})
	ext, _, _ := strings.Cut(convertTo, ":")
	return r.ws.OutputPath(Stem(inputPath) + "." + ext), err
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return (&url.URL{Scheme: "file", Path: slashed}).String()
}
