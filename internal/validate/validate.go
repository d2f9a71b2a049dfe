// Package validate performs the pre-staging checks applied to every
// user-supplied file: content-sniffed MIME type and size ceiling. Results are
// values rather than errors so a batch can keep going past a bad file.
package validate

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxFileSize is the ceiling applied when no limit is configured.
const DefaultMaxFileSize = 30 << 20

// Result reports whether a file may be staged and, if not, why.
type Result struct {
	OK     bool
	Reason string
}

// Check inspects file contents and size. The MIME type is sniffed from the
// bytes; file names and extensions are never trusted. maxSize <= 0 falls back
// to DefaultMaxFileSize.
func Check(data []byte, maxSize int64) Result {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if int64(len(data)) > maxSize {
		return Result{Reason: fmt.Sprintf("file is too large (%d bytes, limit %d)", len(data), maxSize)}
	}
	if len(data) == 0 {
		return Result{Reason: "file is empty"}
	}
	mime := SniffMIME(data)
	if !strings.HasPrefix(mime, "image/") {
		return Result{Reason: fmt.Sprintf("unsupported file type %q, expected an image", mime)}
	}
	return Result{OK: true}
}

// SniffMIME returns the content-sniffed MIME type for the given bytes.
func SniffMIME(data []byte) string {
	return http.DetectContentType(data)
}
