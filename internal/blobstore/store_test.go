package blobstore_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"lightbox/internal/testsupport"
)

func TestPutGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	asset := testsupport.NewJPEG(t, 40, 30)
	id, err := store.Put(ctx, asset.Data, asset.MIMEType)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	ref, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ref == nil {
		t.Fatal("expected a reference for stored object")
	}
	if ref.MIMEType != "image/jpeg" {
		t.Fatalf("unexpected MIME type: %q", ref.MIMEType)
	}
	path := strings.TrimPrefix(ref.URL, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read materialized reference: %v", err)
	}
	if len(data) != len(asset.Data) {
		t.Fatalf("materialized bytes differ: got %d want %d", len(data), len(asset.Data))
	}
}

func TestGetUnknownIDReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ref, err := store.Get(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ref != nil {
		t.Fatalf("expected nil for unknown id, got %+v", ref)
	}
}

func TestGetSniffsMissingMIMEType(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	asset := testsupport.NewPNG(t, 10, 10)
	id, err := store.Put(ctx, asset.Data, "")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	ref, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ref.MIMEType != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", ref.MIMEType)
	}
}

func TestDeleteThenGetReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	asset := testsupport.NewJPEG(t, 20, 20)
	id, err := store.Put(ctx, asset.Data, asset.MIMEType)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	existed, err := store.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !existed {
		t.Fatal("expected Delete to report the object existed")
	}

	ref, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ref != nil {
		t.Fatal("expected nil after deletion")
	}

	existed, err = store.Delete(ctx, id)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if existed {
		t.Fatal("expected second Delete to report missing")
	}
}

func TestListAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		asset := testsupport.NewJPEG(t, 10+i, 10)
		if _, err := store.Put(ctx, asset.Data, asset.MIMEType); err != nil {
			t.Fatalf("Put %d failed: %v", i, err)
		}
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(ids))
	}

	count, bytes, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if count != 3 || bytes == 0 {
		t.Fatalf("unexpected stats: count=%d bytes=%d", count, bytes)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected Clear to remove 3, got %d", removed)
	}

	ids, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List after Clear failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty store, got %d ids", len(ids))
	}
}

func TestPutRejectsEmptyData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.Put(context.Background(), nil, "image/jpeg"); err == nil {
		t.Fatal("expected error for empty data")
	}
}
