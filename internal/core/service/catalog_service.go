package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// DefaultAuthor is recorded when a submission leaves the author field blank.
const DefaultAuthor = "E-Library Collection"

// CatalogService implements browse and admin mutation of the book catalog.
type CatalogService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.BookRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// List fetches the catalog newest first and narrows it with the filter. The
// filter predicates are pure, so an unfiltered request returns the store's
// order untouched.
func (s *CatalogService) List(ctx context.Context, filter domain.Filter) ([]*domain.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterBooks(books, filter), nil
}

// Create validates and inserts a pre-uploaded catalog record. Academic records
// must carry all four course fields; the title of an academic record is its
// course title.
func (s *CatalogService) Create(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	book := buildBook(input, time.Now().UTC())
	if err := book.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Str("title", book.Title).Msg("failed to insert catalog record")
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("category", string(created.Category)).Msg("catalog record created")
	return created, nil
}

// Delete removes a record by id.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("book_id", id).Msg("catalog record deleted")
	return nil
}

// buildBook maps a create input onto a domain record, applying the title and
// author defaulting rules shared with the upload pipeline.
func buildBook(input ports.CreateBookInput, now time.Time) *domain.Book {
	category := domain.Category(input.Category)

	title := input.Title
	if category == domain.CategoryAcademic && input.CourseTitle != "" {
		title = input.CourseTitle
	}

	author := input.Author
	if author == "" {
		author = DefaultAuthor
	}

	book := &domain.Book{
		Title:       title,
		Author:      author,
		Category:    category,
		CoverURL:    input.CoverURL,
		DownloadURL: input.DownloadURL,
		CreatedAt:   now,
	}
	if category == domain.CategoryAcademic {
		book.Department = input.Department
		book.CourseCode = input.CourseCode
		book.CourseTitle = input.CourseTitle
		book.Level = input.Level
	}
	return book
}
