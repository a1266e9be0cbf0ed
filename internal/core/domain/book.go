package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category is the catalog shelf a book belongs to. Exactly two shelves exist.
type Category string

const (
	CategoryAcademic Category = "academic"
	CategoryNovel    Category = "novel"
)

var ErrBookNotFound = errors.New("book not found")
var ErrInvalidBook = errors.New("invalid book record")

// Valid reports whether c is one of the two known categories.
func (c Category) Valid() bool {
	return c == CategoryAcademic || c == CategoryNovel
}

// Book is a catalog entry. The four course fields are carried only when the
// category is academic; novels carry none of them.
type Book struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Title       string   `json:"title" bson:"title"`
	Author      string   `json:"author" bson:"author"`
	Category    Category `json:"category" bson:"category"`
	CoverURL    string   `json:"cover_url" bson:"cover_url"`
	DownloadURL string   `json:"download_url" bson:"download_url"`

	Department  string `json:"department,omitempty" bson:"department,omitempty"`
	CourseCode  string `json:"course_code,omitempty" bson:"course_code,omitempty"`
	CourseTitle string `json:"course_title,omitempty" bson:"course_title,omitempty"`
	Level       string `json:"level,omitempty" bson:"level,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Validate checks the record's structural invariants: a known category,
// a title, all four course fields on academic records and none on novels.
func (b *Book) Validate() error {
	if !b.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidBook, b.Category)
	}
	if b.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidBook)
	}
	if b.Category == CategoryAcademic {
		if b.Department == "" || b.CourseCode == "" || b.CourseTitle == "" || b.Level == "" {
			return fmt.Errorf("%w: academic records require department, course code, course title and level", ErrInvalidBook)
		}
		return nil
	}
	if b.Department != "" || b.CourseCode != "" || b.CourseTitle != "" || b.Level != "" {
		return fmt.Errorf("%w: course fields are only allowed on academic records", ErrInvalidBook)
	}
	return nil
}

// Filter holds the catalog filter selections. Empty search matches everything;
// an empty or "all" category/department/level leaves that axis unfiltered.
type Filter struct {
	Search     string
	Category   string
	Department string
	Level      string
}

const filterAll = "all"

// Matches applies the four filter predicates to a single book. The predicates
// are independent, so the result does not depend on any application order.
func (f Filter) Matches(b *Book) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) &&
			!strings.Contains(strings.ToLower(b.CourseCode), q) &&
			!strings.Contains(strings.ToLower(b.CourseTitle), q) {
			return false
		}
	}
	if f.Category != "" && f.Category != filterAll && string(b.Category) != f.Category {
		return false
	}
	if f.Department != "" && f.Department != filterAll {
		if b.Category != CategoryAcademic || b.Department != f.Department {
			return false
		}
	}
	if f.Level != "" && f.Level != filterAll {
		if b.Category != CategoryAcademic || b.Level != f.Level {
			return false
		}
	}
	return true
}

// FilterBooks returns the books matching f, preserving input order.
func FilterBooks(books []*Book, f Filter) []*Book {
	out := make([]*Book, 0, len(books))
	for _, b := range books {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}
