package upload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lightbox/internal/logging"
)

// DirUploader places batches into a local directory. Files are written to a
// temporary name and renamed into place so a partially written file never
// appears under its final name. The primary item is placed first and carries
// a "primary" marker in its file name so position survives the hand-off.
type DirUploader struct {
	dir       string
	overwrite bool
	logger    *slog.Logger
}

// NewDirUploader constructs an uploader targeting dir.
func NewDirUploader(dir string, overwrite bool, logger *slog.Logger) *DirUploader {
	return &DirUploader{
		dir:       dir,
		overwrite: overwrite,
		logger:    logging.NewComponentLogger(logger, "upload"),
	}
}

// Upload writes each item to the target directory and reports per-item
// outcomes. One bad item does not stop the rest of the batch.
func (u *DirUploader) Upload(ctx context.Context, items []Item) ([]Result, error) {
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	results := make([]Result, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := u.place(item)
		if err != nil {
			u.logger.Error("item placement failed",
				logging.Args(
					logging.String(logging.FieldFileName, item.Name),
					logging.Int("index", item.Index),
					logging.Error(err),
				)...)
		}
		results = append(results, Result{Index: item.Index, Err: err})
	}

	if failed := Failed(results); len(failed) > 0 {
		return results, &BatchError{Failed: len(failed), Total: len(items)}
	}
	u.logger.Info("batch placed",
		logging.Args(
			logging.Int(logging.FieldBatchSize, len(items)),
			logging.String("dir", u.dir),
		)...)
	return results, nil
}

func (u *DirUploader) place(item Item) error {
	if len(item.Data) == 0 {
		return fmt.Errorf("item %d has no data", item.Index)
	}

	target := filepath.Join(u.dir, targetName(item))
	if !u.overwrite {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("target %q already exists", target)
		}
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, item.Data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func targetName(item Item) string {
	base := strings.TrimSpace(item.Name)
	if base != "" {
		base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	}
	if base == "" {
		base = "image"
	}
	marker := ""
	if item.Primary {
		marker = "-primary"
	}
	return fmt.Sprintf("%03d%s-%s%s", item.Index, marker, base, extensionFor(item.MIMEType))
}

func extensionFor(mimeType string) string {
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
