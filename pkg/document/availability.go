package document

import (
	"context"

	"pdftools/internal/toolchain"
)

type ToolStatus struct {
	Tool      toolchain.Tool
	Available bool
	Path      string
	Hint      string
}

type Availability struct {
	Tools     []ToolStatus
	PdfToDocx map[Engine]bool
	DocxToPdf map[Engine]bool
}

// Availability reports which external tools and conversion engines can be used right now.
// With refresh set, cached lookups are discarded first.
func (p *Processor) Availability(ctx context.Context, refresh bool) Availability {
	if refresh {
		p.Refresh()
	}

	availability := Availability{
		PdfToDocx: map[Engine]bool{},
		DocxToPdf: map[Engine]bool{},
	}
	for _, tool := range toolchain.AllTools {
		status := ToolStatus{Tool: tool}
		if path, err := p.find(tool); err == nil {
			status.Available = true
			status.Path = path
		} else {
			status.Hint = tool.InstallHint()
		}
		availability.Tools = append(availability.Tools, status)
	}

	for _, c := range pdfToDocxConverters {
		_, err := p.resolve(ctx, c)
		availability.PdfToDocx[c.engine] = err == nil
	}
	for _, c := range docxToPdfConverters {
		_, err := p.resolve(ctx, c)
		availability.DocxToPdf[c.engine] = err == nil
	}
	return availability
}

// CanCompress reports whether Ghostscript, needed by compress, lock and unlock, is installed.
func (a Availability) CanCompress() bool {
	for _, status := range a.Tools {
		if status.Tool == toolchain.Ghostscript {
			return status.Available
		}
	}
	return false
}
