package ports

import (
	"context"
	"io"

	"github.com/JesloDev/e-library/internal/core/domain"
)

// ObjectStore abstracts the public-read blob store holding PDFs and covers.
// Put returns the public URL of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// CoverRenderer rasterizes the first page of a PDF into a compressed JPEG.
type CoverRenderer interface {
	Render(pdfData []byte) ([]byte, error)
}

// Mailer sends the best-effort approval notification.
type Mailer interface {
	SendApprovalNotice(ctx context.Context, email, name string) error
}

// SubmitMaterialInput carries one add-material form submission: the raw PDF
// plus its catalog metadata.
type SubmitMaterialInput struct {
	FileName string
	PDF      []byte

	Title       string
	Author      string
	Category    string
	Department  string
	CourseCode  string
	CourseTitle string
	Level       string
}

// UploadService runs the four-phase add-material pipeline:
// render → upload PDF → upload thumbnail → persist record.
type UploadService interface {
	Submit(ctx context.Context, input SubmitMaterialInput) (*domain.Book, error)
	// Store uploads a single raw blob and returns its public URL. Backs the
	// split upload endpoint.
	Store(ctx context.Context, fileName string, r io.Reader, size int64, contentType string) (string, error)
}
