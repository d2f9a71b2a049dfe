package staging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"lightbox/internal/blobstore"
	"lightbox/internal/compose"
	"lightbox/internal/config"
	"lightbox/internal/imaging"
	"lightbox/internal/logging"
	"lightbox/internal/upload"
	"lightbox/internal/validate"
)

// ErrNotFound indicates no staged image carries the requested identifier.
var ErrNotFound = errors.New("staged image not found")

// ErrLocked indicates another process holds the staging area.
var ErrLocked = errors.New("staging area is locked by another process")

// File is one raw user-supplied input.
type File struct {
	Name string
	Data []byte
}

// Manager owns the ordered staging list. All operations are safe for
// concurrent use, but callers must serialize edit operations per image id;
// two concurrent edits of the same image would race on asset replacement.
type Manager struct {
	mu     sync.Mutex
	cfg    *config.Config
	logger *slog.Logger
	lock   *flock.Flock
	images []*Image
}

// NewManager acquires the staging area and returns a Manager. Exactly one
// process may hold the staging area at a time.
func NewManager(cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.StagingDir, "staging.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire staging lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	return &Manager{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "staging"),
		lock:   lock,
	}, nil
}

// Close releases every staged preview and the staging lock.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for _, img := range m.images {
		if err := img.Preview.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.images = nil

	if m.lock != nil {
		if err := m.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// AddFiles validates, downsizes, and stages each file in input order. A bad
// file is reported and skipped; it never aborts the rest of the batch. The
// returned images are in the same relative order as their inputs.
func (m *Manager) AddFiles(ctx context.Context, files []File) ([]*Image, []FileError, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		added    []*Image
		failures []FileError
	)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return added, failures, err
		}

		if result := validate.Check(file.Data, m.cfg.MaxFileSizeBytes()); !result.OK {
			failures = append(failures, FileError{Name: file.Name, Reason: result.Reason})
			m.logger.Warn("file rejected",
				logging.Args(
					logging.String(logging.FieldFileName, file.Name),
					logging.String("reason", result.Reason),
				)...)
			continue
		}

		asset := imaging.Asset{Data: file.Data, MIMEType: validate.SniffMIME(file.Data)}
		resized, err := imaging.Resize(asset, m.cfg.Images.MaxWidth, m.cfg.Images.MaxHeight, m.cfg.Images.JPEGQuality)
		if err != nil {
			failures = append(failures, FileError{Name: file.Name, Reason: err.Error()})
			m.logger.Error("resize failed",
				logging.Args(logging.String(logging.FieldFileName, file.Name), logging.Error(err))...)
			continue
		}

		id := uuid.NewString()
		preview, err := newPreview(m.cfg.Paths.StagingDir, id, resized)
		if err != nil {
			failures = append(failures, FileError{Name: file.Name, Reason: err.Error()})
			m.logger.Error("preview creation failed",
				logging.Args(logging.String(logging.FieldFileName, file.Name), logging.Error(err))...)
			continue
		}

		img := &Image{
			ID:         id,
			SourceName: file.Name,
			Title:      titleFromName(file.Name),
			Asset:      resized,
			Preview:    preview,
			CreatedAt:  time.Now().UTC(),
		}
		m.images = append(m.images, img)
		added = append(added, img)
		m.logger.Info("image staged",
			logging.Args(
				logging.String(logging.FieldImageID, id),
				logging.String(logging.FieldFileName, file.Name),
			)...)
	}

	return added, failures, nil
}

// List returns a snapshot of the staged images in order.
func (m *Manager) List() []*Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Image, len(m.images))
	copy(out, m.images)
	return out
}

// Len returns the number of staged images.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.images)
}

// Get returns the staged image with the given id.
func (m *Manager) Get(id string) (*Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, img := m.find(id)
	return img, img != nil
}

// Primary returns the image at position 0, the implicit primary. List order
// is the only source of truth for primacy.
func (m *Manager) Primary() *Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.images) == 0 {
		return nil
	}
	return m.images[0]
}

// Remove releases the entry's preview and then drops it from the list.
// Releasing first guarantees no preview file outlives its entry.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, img := m.find(id)
	if img == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := img.Preview.Release(); err != nil {
		return err
	}
	m.images = append(m.images[:idx], m.images[idx+1:]...)
	m.logger.Info("image removed", logging.Args(logging.String(logging.FieldImageID, id))...)
	return nil
}

// Reorder moves the element at from to position to. Identity, rotation, and
// edit state of every entry are untouched; this is a pure ordering change.
func (m *Manager) Reorder(from, to int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if from < 0 || from >= len(m.images) || to < 0 || to >= len(m.images) {
		return fmt.Errorf("reorder: indexes %d -> %d out of range for %d images", from, to, len(m.images))
	}
	if from == to {
		return nil
	}

	img := m.images[from]
	m.images = append(m.images[:from], m.images[from+1:]...)
	m.images = append(m.images[:to], append([]*Image{img}, m.images[to:]...)...)
	return nil
}

// SetPrimary moves the named entry to position 0.
func (m *Manager) SetPrimary(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, img := m.find(id)
	if img == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if idx == 0 {
		return nil
	}
	m.images = append(m.images[:idx], m.images[idx+1:]...)
	m.images = append([]*Image{img}, m.images...)
	m.logger.Info("primary changed", logging.Args(logging.String(logging.FieldImageID, id))...)
	return nil
}

// ApplyEdit folds the given rotation and crop into the image's asset. An
// identity edit only clears stale crop state. Otherwise the old preview is
// released before the new asset and preview are installed, and the pending
// fields reset because the edit is now baked in.
func (m *Manager) ApplyEdit(ctx context.Context, id string, rotation int, crop *imaging.Rect) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, img := m.find(id)
	if img == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if compose.Identity(rotation, crop) {
		img.CropArea = nil
		return nil
	}

	edited, err := compose.Process(img.Asset, rotation, crop)
	if err != nil {
		return err
	}

	if err := img.Preview.Release(); err != nil {
		return err
	}
	preview, err := newPreview(m.cfg.Paths.StagingDir, img.ID, edited)
	if err != nil {
		return err
	}

	img.Asset = edited
	img.Preview = preview
	img.Rotation = 0
	img.CropArea = nil
	img.Edited = true

	logging.WithContext(logging.WithImageID(ctx, id), m.logger).Info("edit applied",
		logging.Args(logging.Int("rotation", rotation), logging.Bool("cropped", compose.Croppable(crop)))...)
	return nil
}

// Flush hands the full ordered batch to the uploader. On full success the
// staged list is cleared and every preview released; on any failure the list
// is left intact so the user can retry.
func (m *Manager) Flush(ctx context.Context, uploader upload.Uploader) ([]upload.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.images) == 0 {
		return nil, nil
	}

	items := make([]upload.Item, 0, len(m.images))
	for i, img := range m.images {
		items = append(items, upload.Item{
			Name:     img.SourceName,
			Data:     img.Asset.Data,
			MIMEType: img.Asset.MIMEType,
			Index:    i,
			Primary:  i == 0,
		})
	}

	results, err := uploader.Upload(ctx, items)
	if err != nil {
		m.logger.Error("flush failed",
			logging.Args(logging.Int(logging.FieldBatchSize, len(items)), logging.Error(err))...)
		return results, err
	}

	for _, img := range m.images {
		if releaseErr := img.Preview.Release(); releaseErr != nil {
			m.logger.Warn("preview release failed during flush",
				logging.Args(logging.String(logging.FieldImageID, img.ID), logging.Error(releaseErr))...)
		}
	}
	m.images = nil
	m.logger.Info("batch flushed", logging.Args(logging.Int(logging.FieldBatchSize, len(items)))...)
	return results, nil
}

// KeepLocal persists the image's current working asset into the binary object
// store and returns the stored object id. The staged entry is unaffected.
func (m *Manager) KeepLocal(ctx context.Context, store *blobstore.Store, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, img := m.find(id)
	if img == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	objectID, err := store.Put(ctx, img.Asset.Data, img.Asset.MIMEType)
	if err != nil {
		return "", err
	}
	m.logger.Info("working copy persisted",
		logging.Args(
			logging.String(logging.FieldImageID, id),
			logging.String(logging.FieldObjectID, objectID),
		)...)
	return objectID, nil
}

func (m *Manager) find(id string) (int, *Image) {
	for i, img := range m.images {
		if img.ID == id {
			return i, img
		}
	}
	return -1, nil
}
