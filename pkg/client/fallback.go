package client

import (
	"context"

	"github.com/JesloDev/e-library/internal/core/domain"
)

// demoCatalog is the bundled read-only catalog shown when the books endpoint
// is unreachable or misconfigured.
var demoCatalog = []domain.Book{
	{
		ID:          "demo-1",
		Title:       "Introduction to Computer Science",
		Author:      "E-Library Collection",
		Category:    domain.CategoryAcademic,
		Department:  "Computer Science",
		CourseCode:  "CSC101",
		CourseTitle: "Introduction to Computer Science",
		Level:       "100",
	},
	{
		ID:         "demo-2",
		Title:      "Engineering Mathematics I",
		Author:     "E-Library Collection",
		Category:   domain.CategoryAcademic,
		Department: "Mathematics",
		CourseCode: "MTH110", CourseTitle: "Engineering Mathematics I",
		Level: "100",
	},
	{
		ID:       "demo-3",
		Title:    "Things Fall Apart",
		Author:   "Chinua Achebe",
		Category: domain.CategoryNovel,
	},
	{
		ID:       "demo-4",
		Title:    "Purple Hibiscus",
		Author:   "Chimamanda Ngozi Adichie",
		Category: domain.CategoryNovel,
	},
}

// LoadBooks fetches the catalog, falling back to the bundled demo catalog
// when the endpoint cannot be reached. The second return value reports
// whether the fallback was used, so callers can surface a notice banner.
func (c *Client) LoadBooks(ctx context.Context, filter domain.Filter) ([]domain.Book, bool, error) {
	books, err := c.Books(ctx, filter)
	if err == nil {
		return books, false, nil
	}

	fallback := domain.FilterBooks(booksToPointers(demoCatalog), filter)
	out := make([]domain.Book, 0, len(fallback))
	for _, b := range fallback {
		out = append(out, *b)
	}
	return out, true, nil
}

func booksToPointers(books []domain.Book) []*domain.Book {
	out := make([]*domain.Book, 0, len(books))
	for i := range books {
		out = append(out, &books[i])
	}
	return out
}
