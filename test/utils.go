package test

import (
	"archive/zip"
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

const (
	// CopyToolScript mimics Ghostscript: copies the last argument to the -sOutputFile= target
	CopyToolScript = `out=""
in=""
for a in "$@"; do
  case "$a" in
    -sOutputFile=*) out="${a#-sOutputFile=}" ;;
  esac
  in="$a"
done
cp "$in" "$out"
`

	// OfficeToolScript mimics soffice --convert-to: writes <outdir>/<input stem>.<ext>
	OfficeToolScript = `outdir=""
prev=""
in=""
for a in "$@"; do
  if [ "$prev" = "--outdir" ]; then outdir="$a"; fi
  prev="$a"
  in="$a"
done
base=$(basename "$in")
base="${base%.*}"
ext=docx
case "$*" in
  *"--convert-to pdf"*) ext=pdf ;;
esac
cp "$in" "$outdir/$base.$ext"
`

	// ArgsToolScript mimics tools called as "<tool> [flags] <input> <output>"
	ArgsToolScript = `for a in "$@"; do
  in="$out"
  out="$a"
done
cp "$in" "$out"
`

	FailingToolScript = `echo "conversion failed" >&2
exit 3
`

	HangingToolScript = `exec sleep 30
`
)

func GenerateRandomBytes(numOfBytesToGenerate int) []byte {
	generatedBytes := make([]byte, numOfBytesToGenerate)
	_, err := rand.Read(generatedBytes)
	if err != nil {
		panic(err)
	}
	return generatedBytes
}

func SamplePDF() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
		"2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n" +
		"trailer\n<< /Root 1 0 R >>\n%%EOF\n")
}

// SamplePDFWithText is an unencrypted PDF with a single page whose uncompressed content stream is ops.
func SamplePDFWithText(ops string) []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n" +
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /Contents 4 0 R >>\nendobj\n" +
		"4 0 obj\n<< /Length " + strconv.Itoa(len(ops)) + " >>\nstream\n" + ops + "\nendstream\nendobj\n" +
		"trailer\n<< /Root 1 0 R >>\n%%EOF\n")
}

func SampleEncryptedPDF() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
		"3 0 obj\n<< /Filter /Standard /V 2 /R 3 /Length 128 >>\nendobj\n" +
		"trailer\n<< /Root 1 0 R /Encrypt 3 0 R >>\n%%EOF\n")
}

func SampleDOCX() []byte {
	buf := bytes.NewBuffer(nil)
	zw := zip.NewWriter(buf)
	entries := []struct{ name, body string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`},
	}
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			panic(err)
		}
		if _, err = w.Write([]byte(entry.body)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// SkipWithoutShell skips tests that rely on fake tools written as POSIX shell scripts.
func SkipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}
}

// WriteFakeTool creates an executable shell script standing in for an external tool.
func WriteFakeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	SkipWithoutShell(t)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("Error writing fake tool %s: %s", name, err)
	}
	return path
}

// AssertDirEmpty fails when scratch files were left behind in dir.
func AssertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Error reading %s: %s", dir, err)
	}
	for _, entry := range entries {
		t.Errorf("Expected %s to be empty, found %s", dir, entry.Name())
	}
}
