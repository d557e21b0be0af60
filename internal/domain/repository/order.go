package repository

import (
	"context"

	"suppliertracker/internal/domain/model"
)

// OrderRepository describes the remote order collection. List returns the
// full collection ordered by last_updated descending.
type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	Insert(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	Update(ctx context.Context, id int64, draft model.OrderDraft) error
	Delete(ctx context.Context, id int64) error
}
