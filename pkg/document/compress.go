package document

import (
	"context"
	"fmt"

	"pdftools/internal/toolchain"
	"pdftools/pkg/model"
)

// pdfWriteArgs are the Ghostscript flags shared by every operation that rewrites a PDF.
func pdfWriteArgs(outputPath string) []string {
	return []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile=" + outputPath,
	}
}

func compressArgs(quality Quality, inputPath, outputPath string) []string {
	args := pdfWriteArgs(outputPath)
	args = append(args, "-dPDFSETTINGS="+quality.PDFSettings())
	return append(args, inputPath)
}

// Compress rewrites a PDF through Ghostscript using the preset for quality.
func (p *Processor) Compress(ctx context.Context, in model.InputFile, quality Quality) (*Result, error) {
	if quality == "" {
		quality = DefaultQuality
	}
	if quality.PDFSettings() == "" {
		return nil, fmt.Errorf("%w: invalid quality setting %q", ErrInvalidInput, quality)
	}

	return p.process(ctx, job{
		operation:  "compress",
		input:      in,
		from:       FormatPDF,
		to:         FormatPDF,
		outputName: "compressed_" + Stem(in.Name) + FormatPDF.Extension,
		step: func(ctx context.Context, r *run) (string, string, error) {
			gs, err := p.find(toolchain.Ghostscript)
			if err != nil {
				return "", "", err
			}
			outputPath := r.ws.OutputPath("compressed.pdf")
			_, err = r.exec(ctx, toolchain.Command{
				Tool: toolchain.Ghostscript,
				Path: gs,
				Args: compressArgs(quality, r.inputPath, outputPath),
			})
			return outputPath, string(toolchain.Ghostscript), err
		},
	})
}
