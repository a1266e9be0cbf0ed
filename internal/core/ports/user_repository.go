package ports

import (
	"context"

	"github.com/JesloDev/e-library/internal/core/domain"
)

// UserRepository defines persistence operations for member accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListPending returns unapproved, non-admin users, newest first.
	ListPending(ctx context.Context) ([]*domain.User, error)
	// Approve sets the approved flag on the target user.
	Approve(ctx context.Context, id string) error
}
