package object

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/domain/repository"
)

func newStore(t *testing.T) *DiskStore {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080/", logger)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestUploadAndOpen(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	opts := repository.UploadOptions{CacheControl: "3600", ContentType: "image/png"}
	if err := store.Upload(ctx, "orders/abc.png", strings.NewReader("png-bytes"), opts); err != nil {
		t.Fatalf("upload: %v", err)
	}

	body, meta, err := store.Open(ctx, "orders/abc.png")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected body %q", data)
	}
	if meta.ContentType != "image/png" || meta.CacheControl != "3600" {
		t.Fatalf("unexpected meta %+v", meta)
	}
}

func TestUploadRefusesOverwrite(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Upload(ctx, "orders/dup.jpg", strings.NewReader("one"), repository.UploadOptions{}); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	err := store.Upload(ctx, "orders/dup.jpg", strings.NewReader("two"), repository.UploadOptions{})
	if !errors.Is(err, domainErrors.ErrObjectExists) {
		t.Fatalf("expected ErrObjectExists, got %v", err)
	}

	if err := store.Upload(ctx, "orders/dup.jpg", strings.NewReader("two"), repository.UploadOptions{Upsert: true}); err != nil {
		t.Fatalf("upsert upload: %v", err)
	}

	body, _, err := store.Open(ctx, "orders/dup.jpg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "two" {
		t.Fatalf("expected upsert to replace body, got %q", data)
	}
}

func TestUploadRejectsTraversal(t *testing.T) {
	store := newStore(t)
	if err := store.Upload(context.Background(), "../escape.jpg", strings.NewReader("x"), repository.UploadOptions{}); err == nil {
		t.Fatal("expected error for path traversal")
	}
	if err := store.Upload(context.Background(), "/abs.jpg", strings.NewReader("x"), repository.UploadOptions{}); err == nil {
		t.Fatal("expected error for absolute path")
	}
}

func TestPublicURL(t *testing.T) {
	store := newStore(t)
	url := store.PublicURL("orders/abc.png")
	if url != "http://localhost:8080/attachments/orders/abc.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if store.PublicURL("../escape") != "" {
		t.Fatal("expected empty url for invalid path")
	}
}

func TestListSkipsSidecars(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Upload(ctx, "orders/a.jpg", strings.NewReader("a"), repository.UploadOptions{}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := store.Upload(ctx, "orders/b.jpg", strings.NewReader("b"), repository.UploadOptions{}); err != nil {
		t.Fatalf("upload: %v", err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected two objects, got %d: %+v", len(infos), infos)
	}
	for _, info := range infos {
		if strings.HasSuffix(info.Path, metaSuffix) {
			t.Fatalf("sidecar leaked into listing: %q", info.Path)
		}
		if !strings.HasPrefix(info.Path, "orders/") {
			t.Fatalf("expected slash-separated relative path, got %q", info.Path)
		}
	}
}

func TestRemove(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Upload(ctx, "orders/gone.jpg", strings.NewReader("x"), repository.UploadOptions{}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := store.Remove(ctx, "orders/gone.jpg"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, "orders/gone.jpg"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := store.Open(ctx, "orders/gone.jpg"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found after remove, got %v", err)
	}
}
