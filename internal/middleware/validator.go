package middleware

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Upload validation and sanitization utilities

// ErrNotPDF is returned for uploads whose filename lacks the .pdf suffix.
var ErrNotPDF = errors.New("File must be a PDF")

// ValidatePDFFilename checks the uploaded filename. The suffix check is
// case-sensitive on purpose: ".PDF" uploads are rejected like any other
// extension.
func ValidatePDFFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNotPDF
	}
	if !strings.HasSuffix(name, ".pdf") {
		return ErrNotPDF
	}
	return nil
}

// ValidateFileSize enforces the configured upload cap
func ValidateFileSize(size, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("file too large: %d bytes (max %d)", size, maxBytes)
	}
	return nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeArtifactKey turns an uploaded filename into a safe object key
// component: path stripped, unsafe characters replaced.
func SanitizeArtifactKey(name string) string {
	base := filepath.Base(name)
	base = unsafeKeyChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "upload.pdf"
	}
	return base
}
