package test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	ListFn    func(context.Context) ([]model.Order, error)
	GetByIDFn func(context.Context, int64) (*model.Order, error)
	InsertFn  func(context.Context, model.OrderDraft) (*model.Order, error)
	UpdateFn  func(context.Context, int64, model.OrderDraft) error
	DeleteFn  func(context.Context, int64) error

	Orders  []model.Order
	Inserts []model.OrderDraft
	Updates []OrderUpdateCall
	Deletes []int64
}

// OrderUpdateCall records a single update invocation.
type OrderUpdateCall struct {
	ID    int64
	Draft model.OrderDraft
}

// List returns configured orders or delegates to the override.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Orders, nil
}

// GetByID looks up the configured slice unless overridden.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Insert records the draft and returns a synthetic row.
func (s *OrderRepositoryStub) Insert(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	s.Inserts = append(s.Inserts, draft)
	if s.InsertFn != nil {
		return s.InsertFn(ctx, draft)
	}
	return &model.Order{ID: int64(len(s.Inserts)), CustomerName: draft.CustomerName}, nil
}

// Update records the invocation and delegates when overridden.
func (s *OrderRepositoryStub) Update(ctx context.Context, id int64, draft model.OrderDraft) error {
	s.Updates = append(s.Updates, OrderUpdateCall{ID: id, Draft: draft})
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, draft)
	}
	return nil
}

// Delete records the invocation and delegates when overridden.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.Deletes = append(s.Deletes, id)
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// StoredObject captures one uploaded object inside ObjectStoreStub.
type StoredObject struct {
	Data    []byte
	Opts    repository.UploadOptions
	ModTime time.Time
}

// ObjectStoreStub keeps uploaded objects in memory.
type ObjectStoreStub struct {
	mu       sync.Mutex
	Objects  map[string]StoredObject
	BaseURL  string
	UploadFn func(context.Context, string, io.Reader, repository.UploadOptions) error
	Removed  []string
}

// NewObjectStoreStub constructs an empty in-memory object store.
func NewObjectStoreStub() *ObjectStoreStub {
	return &ObjectStoreStub{Objects: make(map[string]StoredObject), BaseURL: "http://objects.test"}
}

// Upload stores the object unless overridden or the key already exists.
func (s *ObjectStoreStub) Upload(ctx context.Context, path string, r io.Reader, opts repository.UploadOptions) error {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, path, r, opts)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Objects[path]; exists && !opts.Upsert {
		return domainErrors.ErrObjectExists
	}
	s.Objects[path] = StoredObject{Data: data, Opts: opts, ModTime: time.Now()}
	return nil
}

// Open returns the stored object body and metadata.
func (s *ObjectStoreStub) Open(ctx context.Context, path string) (io.ReadCloser, *repository.ObjectMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.Objects[path]
	if !ok {
		return nil, nil, domainErrors.ErrNotFound
	}
	meta := &repository.ObjectMeta{CacheControl: obj.Opts.CacheControl, ContentType: obj.Opts.ContentType}
	return io.NopCloser(bytes.NewReader(obj.Data)), meta, nil
}

// PublicURL derives a stable URL for the path.
func (s *ObjectStoreStub) PublicURL(path string) string {
	return s.BaseURL + "/attachments/" + path
}

// List enumerates stored objects.
func (s *ObjectStoreStub) List(ctx context.Context) ([]repository.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []repository.ObjectInfo
	for path, obj := range s.Objects {
		out = append(out, repository.ObjectInfo{Path: path, Size: int64(len(obj.Data)), ModTime: obj.ModTime})
	}
	return out, nil
}

// Remove deletes the object and records the invocation.
func (s *ObjectStoreStub) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Objects[path]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Objects, path)
	s.Removed = append(s.Removed, path)
	return nil
}

var _ repository.UserRepository = (*UserRepositoryStub)(nil)
var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
var _ repository.ObjectStore = (*ObjectStoreStub)(nil)
