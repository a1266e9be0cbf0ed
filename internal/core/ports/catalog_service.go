package ports

import (
	"context"

	"github.com/JesloDev/e-library/internal/core/domain"
)

// CreateBookInput carries a pre-uploaded catalog record: both artifact URLs
// already exist in the object store.
type CreateBookInput struct {
	Title       string
	Author      string
	Category    string
	CoverURL    string
	DownloadURL string
	Department  string
	CourseCode  string
	CourseTitle string
	Level       string
}

// CatalogService defines browse and admin mutation of the book catalog.
type CatalogService interface {
	// List returns the catalog newest first, narrowed by the filter.
	List(ctx context.Context, filter domain.Filter) ([]*domain.Book, error)
	Create(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}
