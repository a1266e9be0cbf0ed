package ports

import (
	"context"

	"github.com/JesloDev/e-library/internal/core/domain"
)

// BookRepository defines persistence operations for catalog records.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	// List returns the full catalog, newest first.
	List(ctx context.Context) ([]*domain.Book, error)
	Delete(ctx context.Context, id string) error
}
