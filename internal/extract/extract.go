// Package extract converts uploaded resume documents into normalized
// plain text.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// IsSupported reports whether the filename carries a document extension
// the extractor understands.
func IsSupported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

// FromUpload extracts the textual content of an uploaded document.
// The extension of filename selects the parser. Unsupported extensions
// yield empty text and no error; callers must treat empty text as an
// input error before using it.
//
// Output is lower-cased with whitespace collapsed, so extracting the
// same file twice yields identical text.
func FromUpload(r io.ReaderAt, size int64, filename string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(r, size)
	case ".docx":
		text, err = extractDOCX(r, size)
	default:
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", filepath.Base(filename), err)
	}

	return Normalize(text), nil
}

// Normalize lower-cases text and collapses runs of whitespace into
// single spaces.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
