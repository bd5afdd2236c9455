package repository

import (
	"context"

	"library-service/internal/domain/user"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateLastConnected(ctx context.Context, id int64) error
}
