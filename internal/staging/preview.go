package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lightbox/internal/imaging"
)

// Preview is a scoped-ownership reference to the on-disk preview of a staged
// image. Exactly one staged image owns a Preview at a time; Release is
// idempotent so the owner can release defensively on every replacement path.
type Preview struct {
	mu       sync.Mutex
	path     string
	released bool
}

func newPreview(dir, id string, a imaging.Asset) (*Preview, error) {
	path := filepath.Join(dir, id+previewExtension(a.MIMEType))
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write preview %s: %w", id, err)
	}
	return &Preview{path: path}, nil
}

// URL returns a display-usable reference to the preview file, or the empty
// string once released.
func (p *Preview) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return ""
	}
	return "file://" + p.path
}

// Path returns the preview file path, or the empty string once released.
func (p *Preview) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return ""
	}
	return p.path
}

// Release removes the preview file. Calling it again is a no-op.
func (p *Preview) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release preview: %w", err)
	}
	p.released = true
	return nil
}

// Released reports whether the preview has been released.
func (p *Preview) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

func previewExtension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	default:
		return ".img"
	}
}
