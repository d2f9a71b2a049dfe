package staging

import (
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lightbox/internal/imaging"
)

// Image is one user-selected image awaiting upload. Rotation and CropArea
// hold pending, uncommitted edit state; once an edit is applied they reset to
// identity because the transform is baked into Asset.
type Image struct {
	ID         string
	SourceName string
	Title      string
	Asset      imaging.Asset
	Preview    *Preview
	Rotation   int
	CropArea   *imaging.Rect
	Edited     bool
	CreatedAt  time.Time
}

// FileError records why a single file could not be staged. It never aborts
// the rest of a batch.
type FileError struct {
	Name   string
	Reason string
}

func (e FileError) String() string {
	return e.Name + ": " + e.Reason
}

func titleFromName(name string) string {
	base := strings.TrimSpace(filepath.Base(name))
	ext := filepath.Ext(base)
	base = strings.TrimSuffix(base, ext)
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Untitled"
	}
	return cases.Title(language.Und).String(base)
}
