package object

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/domain/repository"
)

const metaSuffix = ".meta"

// DiskStore implements the attachment object store on the local filesystem.
// Object metadata lives in a JSON sidecar next to each object.
type DiskStore struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// NewDiskStore creates the store rooted at dir, serving public URLs under
// baseURL.
func NewDiskStore(dir, baseURL string, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachments dir: %w", err)
	}
	return &DiskStore{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

func (s *DiskStore) resolve(path string) (string, string, error) {
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == "" || clean == "." || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, "..") {
		return "", "", fmt.Errorf("invalid object path %q", path)
	}
	return clean, filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Upload writes the object. With opts.Upsert false an existing key fails with
// ErrObjectExists instead of being overwritten.
func (s *DiskStore) Upload(ctx context.Context, path string, r io.Reader, opts repository.UploadOptions) error {
	_, full, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.Upsert {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(full, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return domainErrors.ErrObjectExists
		}
		return fmt.Errorf("create object: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return fmt.Errorf("write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}

	meta := repository.ObjectMeta{CacheControl: opts.CacheControl, ContentType: opts.ContentType}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode object meta: %w", err)
	}
	if err := os.WriteFile(full+metaSuffix, encoded, 0o644); err != nil {
		return fmt.Errorf("write object meta: %w", err)
	}
	return nil
}

// Open returns the object body and its recorded metadata.
func (s *DiskStore) Open(ctx context.Context, path string) (io.ReadCloser, *repository.ObjectMeta, error) {
	_, full, err := s.resolve(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, domainErrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("open object: %w", err)
	}

	meta := &repository.ObjectMeta{}
	if encoded, err := os.ReadFile(full + metaSuffix); err == nil {
		_ = json.Unmarshal(encoded, meta)
	}
	return f, meta, nil
}

// PublicURL derives the externally reachable URL for the object path.
func (s *DiskStore) PublicURL(path string) string {
	clean, _, err := s.resolve(path)
	if err != nil {
		return ""
	}
	return s.baseURL + "/attachments/" + clean
}

// List enumerates stored objects, skipping metadata sidecars.
func (s *DiskStore) List(ctx context.Context) ([]repository.ObjectInfo, error) {
	var out []repository.ObjectInfo
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, metaSuffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		out = append(out, repository.ObjectInfo{
			Path:    filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	return out, nil
}

// Remove deletes the object and its metadata sidecar.
func (s *DiskStore) Remove(ctx context.Context, path string) error {
	_, full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domainErrors.ErrNotFound
		}
		return fmt.Errorf("remove object: %w", err)
	}
	_ = os.Remove(full + metaSuffix)
	return nil
}

var _ repository.ObjectStore = (*DiskStore)(nil)
