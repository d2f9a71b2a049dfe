// Package editsession drives the interactive crop/rotate flow for a single
// staged image. It tracks pending rotation, an in-progress or committed crop
// rectangle, and an optional locked aspect ratio, and commits the result to
// the staging manager on save.
package editsession

import (
	"context"
	"errors"
	"fmt"

	"lightbox/internal/compose"
	"lightbox/internal/imaging"
	"lightbox/internal/staging"
)

// State names a position in the session's state machine.
type State int

const (
	// StateIdle means crop mode is off.
	StateIdle State = iota
	// StateCropping means crop mode is on and no drag is in progress.
	StateCropping
	// StateDragging means a pointer drag is defining a rectangle.
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCropping:
		return "cropping"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session holds the pending edit state for one staged image. It is not safe
// for concurrent use; one session drives one image at a time, which also
// serializes edit application per image id.
type Session struct {
	imageID string
	width   int
	height  int

	state    State
	rotation int
	rect     *imaging.Rect
	aspect   float64
	anchorX  int
	anchorY  int
}

// New opens a session against the staged image's current raster dimensions.
func New(img *staging.Image) (*Session, error) {
	if img == nil {
		return nil, errors.New("edit session: nil image")
	}
	width, height, err := img.Asset.Dimensions()
	if err != nil {
		return nil, err
	}
	return &Session{imageID: img.ID, width: width, height: height}, nil
}

// ImageID returns the id of the image under edit.
func (s *Session) ImageID() string { return s.imageID }

// State returns the current machine state.
func (s *Session) State() State { return s.state }

// Rotation returns the pending rotation in degrees.
func (s *Session) Rotation() int { return s.rotation }

// Surface returns the dimensions of the current (post-pending-rotation) raster.
func (s *Session) Surface() (int, int) { return s.width, s.height }

// Rect returns a copy of the pending crop rectangle, or nil.
func (s *Session) Rect() *imaging.Rect {
	if s.rect == nil {
		return nil
	}
	r := *s.rect
	return &r
}

// EnableCrop turns crop mode on. A rectangle drawn earlier is preserved so
// re-entering crop mode does not lose the user's last selection.
func (s *Session) EnableCrop() {
	if s.state == StateIdle {
		s.state = StateCropping
	}
}

// DisableCrop turns crop mode off without discarding the pending rectangle.
func (s *Session) DisableCrop() {
	if s.state == StateCropping {
		s.state = StateIdle
	}
}

// LockAspect constrains future drags to the given width/height ratio.
func (s *Session) LockAspect(ratio float64) error {
	if ratio <= 0 {
		return fmt.Errorf("aspect ratio %v must be positive", ratio)
	}
	s.aspect = ratio
	return nil
}

// UnlockAspect removes the aspect constraint.
func (s *Session) UnlockAspect() {
	s.aspect = 0
}

// Rotate adds a clockwise quarter turn to the pending rotation. The crop
// rectangle is cleared because its coordinates were expressed against the
// previous orientation, and the tracked surface dimensions swap.
func (s *Session) Rotate() {
	s.rotation = (s.rotation + 90) % 360
	s.width, s.height = s.height, s.width
	s.rect = nil
	if s.state == StateDragging {
		s.state = StateCropping
	}
}

// PointerDown starts a drag at the anchor point. It is ignored outside crop
// mode.
func (s *Session) PointerDown(x, y int) {
	if s.state != StateCropping {
		return
	}
	s.anchorX = clamp(x, 0, s.width)
	s.anchorY = clamp(y, 0, s.height)
	s.rect = &imaging.Rect{X: s.anchorX, Y: s.anchorY}
	s.state = StateDragging
}

// PointerMove updates the far corner of the rectangle while dragging.
func (s *Session) PointerMove(x, y int) {
	if s.state != StateDragging {
		return
	}
	s.rect = s.dragRect(x, y)
}

// PointerUp ends the drag but keeps the rectangle visible so the user can
// keep adjusting or proceed to save.
func (s *Session) PointerUp(x, y int) {
	if s.state != StateDragging {
		return
	}
	s.rect = s.dragRect(x, y)
	s.state = StateCropping
}

// dragRect builds the rectangle between the anchor and the pointer. Under a
// locked aspect ratio the far corner is recomputed so width/height matches the
// ratio without exceeding the pointer extent on either axis, preserving the
// drag direction.
func (s *Session) dragRect(x, y int) *imaging.Rect {
	px := clamp(x, 0, s.width)
	py := clamp(y, 0, s.height)

	dx := px - s.anchorX
	dy := py - s.anchorY
	width := abs(dx)
	height := abs(dy)

	if s.aspect > 0 {
		bound := float64(width)
		if byHeight := float64(height) * s.aspect; byHeight < bound {
			bound = byHeight
		}
		width = int(bound)
		height = int(bound / s.aspect)
	}

	rect := &imaging.Rect{X: s.anchorX, Y: s.anchorY, Width: width, Height: height}
	if dx < 0 {
		rect.X = s.anchorX - width
	}
	if dy < 0 {
		rect.Y = s.anchorY - height
	}
	return rect
}

// Pending returns the edit state a save would commit. Sub-threshold
// rectangles count as no crop requested.
func (s *Session) Pending() (int, *imaging.Rect) {
	rect := s.Rect()
	if !compose.Croppable(rect) {
		rect = nil
	}
	return s.rotation, rect
}

// Save commits the pending rotation and crop through the staging manager and
// resets the session.
func (s *Session) Save(ctx context.Context, manager *staging.Manager) error {
	rotation, rect := s.Pending()
	if err := manager.ApplyEdit(ctx, s.imageID, rotation, rect); err != nil {
		return err
	}
	s.reset()
	return nil
}

// Cancel discards all pending state and leaves the staged entry unchanged.
func (s *Session) Cancel() {
	if s.rotation%180 != 0 {
		s.width, s.height = s.height, s.width
	}
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.rotation = 0
	s.rect = nil
	s.anchorX = 0
	s.anchorY = 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
