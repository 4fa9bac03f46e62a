package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	sniffLength = 3072
)

var (
	// encryptKey matches /Encrypt used as a trailer or xref stream key, pointing at an indirect
	// object or an inline dictionary. Text that merely mentions /Encrypt does not match.
	encryptKey = regexp.MustCompile(`/Encrypt\s*(\d+\s+\d+\s+R\b|<<)`)
)

type Format struct {
	Name        string
	Extension   string
	ContentType string
	// accepted lists the detected MIME types (or ancestors) that count as this format
	accepted []string
}

var (
	FormatPDF = Format{
		Name:        "PDF",
		Extension:   ".pdf",
		ContentType: "application/pdf",
		accepted:    []string{"application/pdf"},
	}
	FormatDOCX = Format{
		Name:        "DOCX",
		Extension:   ".docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		// Word files whose first zip entries are not under word/ are only recognised as a zip
		accepted: []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	}
)

// CheckName validates the upload's file name extension.
func (f Format) CheckName(name string) error {
	if !strings.EqualFold(filepath.Ext(name), f.Extension) {
		return fmt.Errorf("%w: file must be a %s (%s)", ErrInvalidInput, f.Name, f.Extension)
	}
	return nil
}

// CheckContent validates the magic bytes at the start of content.
func (f Format) CheckContent(head []byte) error {
	detected := mimetype.Detect(head)
	for m := detected; m != nil; m = m.Parent() {
		for _, accepted := range f.accepted {
			if m.Is(accepted) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: file content is not a valid %s (detected %s)", ErrInvalidInput, f.Name, detected.String())
}

func (f Format) checkFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}
	return f.CheckContent(head[:n])
}

// Stem strips the directory and extension from name, falling back to "document".
func Stem(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		return "document"
	}
	return stem
}

func isEncryptedPDF(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return encryptKey.Match(content), nil
}
