package repository

import (
	"context"

	"suppliertracker/internal/domain/model"
)

// UserRepository describes persistence operations for identity accounts.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
