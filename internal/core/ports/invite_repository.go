package ports

import (
	"context"

	"github.com/JesloDev/e-library/internal/core/domain"
)

// InviteRepository defines persistence operations for registration links.
type InviteRepository interface {
	Create(ctx context.Context, link *domain.RegistrationLink) (*domain.RegistrationLink, error)
	FindByToken(ctx context.Context, token string) (*domain.RegistrationLink, error)
	// List returns all outstanding links, newest first.
	List(ctx context.Context) ([]*domain.RegistrationLink, error)
	Delete(ctx context.Context, id string) error
}
