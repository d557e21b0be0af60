package handlers

import (
	"context"
	"io"

	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/domain/repository"
	"suppliertracker/internal/tracker"
)

// AuthFacade describes the identity capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (*model.Session, error)
	Authenticate(ctx context.Context, email, password string) (*model.Session, error)
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
}

// PageFacade hands out per-user order pages.
type PageFacade interface {
	PageFor(userID int64) *tracker.Page
}

// AttachmentFacade reads stored attachment objects.
type AttachmentFacade interface {
	OpenAttachment(ctx context.Context, path string) (io.ReadCloser, *repository.ObjectMeta, error)
}

// TrackerFacade aggregates the full set of operations used across handlers.
type TrackerFacade interface {
	AuthFacade
	PageFacade
	AttachmentFacade
}
