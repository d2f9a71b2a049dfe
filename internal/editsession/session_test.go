package editsession

import (
	"context"
	"testing"

	"lightbox/internal/imaging"
	"lightbox/internal/staging"
	"lightbox/internal/testsupport"
)

func stageOne(t *testing.T) (*staging.Manager, *staging.Image) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustNewManager(t, cfg)

	asset := testsupport.NewJPEG(t, 400, 300)
	added, failures, err := manager.AddFiles(context.Background(), []staging.File{
		{Name: "front.jpg", Data: asset.Data},
	})
	if err != nil {
		t.Fatalf("AddFiles: %v", err)
	}
	if len(failures) != 0 || len(added) != 1 {
		t.Fatalf("AddFiles: added=%d failures=%v", len(added), failures)
	}
	return manager, added[0]
}

func TestDragDefinesRect(t *testing.T) {
	_, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	session.EnableCrop()
	session.PointerDown(10, 20)
	if got := session.State(); got != StateDragging {
		t.Fatalf("state after PointerDown = %v, want %v", got, StateDragging)
	}
	session.PointerMove(110, 120)
	session.PointerUp(110, 120)

	if got := session.State(); got != StateCropping {
		t.Fatalf("state after PointerUp = %v, want %v", got, StateCropping)
	}
	rect := session.Rect()
	if rect == nil {
		t.Fatal("rect is nil after drag")
	}
	want := imaging.Rect{X: 10, Y: 20, Width: 100, Height: 100}
	if *rect != want {
		t.Fatalf("rect = %+v, want %+v", *rect, want)
	}
}

func TestPointerIgnoredOutsideCropMode(t *testing.T) {
	_, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	session.PointerDown(10, 10)
	session.PointerMove(50, 50)
	if session.Rect() != nil {
		t.Fatal("drag outside crop mode produced a rect")
	}
	if got := session.State(); got != StateIdle {
		t.Fatalf("state = %v, want %v", got, StateIdle)
	}
}

func TestAspectLockBindsShorterAxis(t *testing.T) {
	_, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := session.LockAspect(1); err != nil {
		t.Fatalf("LockAspect: %v", err)
	}
	session.EnableCrop()
	session.PointerDown(0, 0)
	session.PointerMove(100, 40)
	session.PointerUp(100, 40)

	rect := session.Rect()
	if rect == nil {
		t.Fatal("rect is nil after locked drag")
	}
	if rect.Width != 40 || rect.Height != 40 {
		t.Fatalf("locked 1:1 drag to (100,40) = %dx%d, want 40x40", rect.Width, rect.Height)
	}
}

func TestAspectLockPreservesDragDirection(t *testing.T) {
	_, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := session.LockAspect(2); err != nil {
		t.Fatalf("LockAspect: %v", err)
	}
	session.EnableCrop()
	session.PointerDown(200, 200)
	session.PointerUp(100, 140)

	rect := session.Rect()
	if rect == nil {
		t.Fatal("rect is nil after locked drag")
	}
	// |dx|=100, |dy|*aspect=120: width binds at 100, height 50, growing
	// up-left from the anchor.
	want := imaging.Rect{X: 100, Y: 150, Width: 100, Height: 50}
	if *rect != want {
		t.Fatalf("rect = %+v, want %+v", *rect, want)
	}
}

func TestDragClampedToSurface(t *testing.T) {
	_, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	session.EnableCrop()
	session.PointerDown(350, 250)
	session.PointerUp(9999, 9999)

	rect := session.Rect()
	if rect == nil {
		t.Fatal("rect is nil after drag")
	}
	width, height := session.Surface()
	if rect.X+rect.Width > width || rect.Y+rect.Height > height {
		t.Fatalf("rect %+v escapes %dx%d surface", *rect, width, height)
	}
}

func TestRotateClearsRectAndSwapsSurface(t *testing.T) {
	_, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	session.EnableCrop()
	session.PointerDown(0, 0)
	session.PointerUp(100, 100)
	if session.Rect() == nil {
		t.Fatal("rect missing before rotate")
	}

	session.Rotate()
	if session.Rect() != nil {
		t.Fatal("rotate kept a rect expressed against the old orientation")
	}
	if got := session.Rotation(); got != 90 {
		t.Fatalf("rotation = %d, want 90", got)
	}
	width, height := session.Surface()
	if width != 300 || height != 400 {
		t.Fatalf("surface after rotate = %dx%d, want 300x400", width, height)
	}
}

func TestReenterCropKeepsRect(t *testing.T) {
	_, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	session.EnableCrop()
	session.PointerDown(20, 20)
	session.PointerUp(120, 120)
	before := session.Rect()

	session.DisableCrop()
	session.EnableCrop()

	after := session.Rect()
	if after == nil || *after != *before {
		t.Fatalf("rect after re-entering crop = %+v, want %+v", after, before)
	}
}

func TestSaveCommitsEditAndResets(t *testing.T) {
	manager, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	session.Rotate()
	session.EnableCrop()
	session.PointerDown(0, 0)
	session.PointerUp(120, 80)

	if err := session.Save(context.Background(), manager); err != nil {
		t.Fatalf("Save: %v", err)
	}

	staged, ok := manager.Get(img.ID)
	if !ok {
		t.Fatal("image missing after save")
	}
	width, height := testsupport.MustDimensions(t, staged.Asset)
	if width != 120 || height != 80 {
		t.Fatalf("saved asset = %dx%d, want 120x80", width, height)
	}
	if !staged.Edited {
		t.Fatal("saved image not marked edited")
	}

	if got := session.State(); got != StateIdle {
		t.Fatalf("state after save = %v, want %v", got, StateIdle)
	}
	if session.Rotation() != 0 || session.Rect() != nil {
		t.Fatal("session still carries pending state after save")
	}
}

func TestTinyRectSkipsCropOnSave(t *testing.T) {
	manager, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	origWidth, origHeight := testsupport.MustDimensions(t, img.Asset)

	session.EnableCrop()
	session.PointerDown(0, 0)
	session.PointerUp(5, 5)

	rotation, rect := session.Pending()
	if rotation != 0 || rect != nil {
		t.Fatalf("Pending() = (%d, %+v), want identity", rotation, rect)
	}

	if err := session.Save(context.Background(), manager); err != nil {
		t.Fatalf("Save: %v", err)
	}
	staged, _ := manager.Get(img.ID)
	width, height := testsupport.MustDimensions(t, staged.Asset)
	if width != origWidth || height != origHeight {
		t.Fatalf("asset changed to %dx%d by a sub-threshold crop", width, height)
	}
	if staged.Edited {
		t.Fatal("identity save marked the image edited")
	}
}

func TestCancelDiscardsPendingState(t *testing.T) {
	manager, img := stageOne(t)
	session, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	origWidth, origHeight := testsupport.MustDimensions(t, img.Asset)

	session.Rotate()
	session.EnableCrop()
	session.PointerDown(0, 0)
	session.PointerUp(100, 100)

	session.Cancel()
	if session.Rotation() != 0 || session.Rect() != nil || session.State() != StateIdle {
		t.Fatal("cancel left pending state behind")
	}
	width, height := session.Surface()
	if width != origWidth || height != origHeight {
		t.Fatalf("surface after cancel = %dx%d, want %dx%d", width, height, origWidth, origHeight)
	}

	staged, _ := manager.Get(img.ID)
	width, height = testsupport.MustDimensions(t, staged.Asset)
	if width != origWidth || height != origHeight {
		t.Fatal("cancel modified the staged asset")
	}
}
