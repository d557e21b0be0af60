package app

import (
	"context"
	"io"

	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/domain/repository"
	"suppliertracker/internal/identity"
	"suppliertracker/internal/tracker"
)

// TrackerFacade aggregates identity, order-page and attachment operations
// behind the single surface the HTTP layer talks to.
type TrackerFacade struct {
	ident   *identity.Service
	pages   *tracker.Manager
	objects repository.ObjectStore
}

func NewTrackerFacade(ident *identity.Service, pages *tracker.Manager, objects repository.ObjectStore) *TrackerFacade {
	return &TrackerFacade{ident: ident, pages: pages, objects: objects}
}

func (f *TrackerFacade) Register(ctx context.Context, email, password string) (*model.Session, error) {
	return f.ident.Register(ctx, email, password)
}

func (f *TrackerFacade) Authenticate(ctx context.Context, email, password string) (*model.Session, error) {
	return f.ident.SignInWithPassword(ctx, email, password)
}

func (f *TrackerFacade) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	return f.ident.CurrentSession(ctx, token)
}

func (f *TrackerFacade) SignOut(ctx context.Context, token string) error {
	return f.ident.SignOut(ctx, token)
}

func (f *TrackerFacade) PageFor(userID int64) *tracker.Page {
	return f.pages.PageFor(userID)
}

func (f *TrackerFacade) OpenAttachment(ctx context.Context, path string) (io.ReadCloser, *repository.ObjectMeta, error) {
	return f.objects.Open(ctx, path)
}
