package document

import (
	"fmt"
	"strings"
)

// Quality is a compression preset, from smallest output (low) to best fidelity (maximum).
type Quality string

const (
	QualityLow     Quality = "low"
	QualityMedium  Quality = "medium"
	QualityHigh    Quality = "high"
	QualityMaximum Quality = "maximum"

	DefaultQuality = QualityMedium
)

var (
	Qualities = []Quality{QualityLow, QualityMedium, QualityHigh, QualityMaximum}

	pdfSettings = map[Quality]string{
		QualityLow:     "/screen",   // 72 dpi
		QualityMedium:  "/ebook",    // 150 dpi
		QualityHigh:    "/printer",  // 300 dpi
		QualityMaximum: "/prepress", // 300 dpi, colour preserving
	}
)

func ParseQuality(s string) (Quality, error) {
	if s == "" {
		return DefaultQuality, nil
	}
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if _, found := pdfSettings[q]; !found {
		return "", fmt.Errorf("%w: invalid quality setting %q, expected one of low, medium, high, maximum", ErrInvalidInput, s)
	}
	return q, nil
}

func (q Quality) PDFSettings() string {
	return pdfSettings[q]
}
