package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JesloDev/e-library/internal/api/metrics"
	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// UploadService runs the add-material pipeline. The four phases execute
// strictly in order and any failure aborts the remaining phases; the caller
// gets a single phase-tagged error and must resubmit from the first phase.
type UploadService struct {
	catalog  ports.CatalogService
	store    ports.ObjectStore
	renderer ports.CoverRenderer
	logger   zerolog.Logger
}

func NewUploadService(
	catalog ports.CatalogService,
	store ports.ObjectStore,
	renderer ports.CoverRenderer,
	logger zerolog.Logger,
) *UploadService {
	return &UploadService{catalog: catalog, store: store, renderer: renderer, logger: logger}
}

// Submit executes the pipeline: render → upload PDF → upload thumbnail →
// persist record. There is no partial-success state and no retry.
func (s *UploadService) Submit(ctx context.Context, input ports.SubmitMaterialInput) (*domain.Book, error) {
	if len(input.PDF) == 0 {
		return nil, &domain.PhaseError{Phase: domain.PhaseRender, Err: errors.New("empty pdf submission")}
	}

	base := objectKeyBase(input.FileName)

	// Phase 1: rasterize page one and encode the cover JPEG.
	cover, err := s.runPhase(domain.PhaseRender, func() ([]byte, error) {
		return s.renderer.Render(input.PDF)
	})
	if err != nil {
		return nil, err
	}

	// Phase 2: store the raw PDF.
	downloadURL, err := s.runPhase(domain.PhaseUploadPDF, func() ([]byte, error) {
		url, putErr := s.store.Put(ctx, base+".pdf", bytes.NewReader(input.PDF), int64(len(input.PDF)), "application/pdf")
		return []byte(url), putErr
	})
	if err != nil {
		return nil, err
	}

	// Phase 3: store the cover under the same key base.
	coverURL, err := s.runPhase(domain.PhaseUploadThumbnail, func() ([]byte, error) {
		url, putErr := s.store.Put(ctx, base+".jpg", bytes.NewReader(cover), int64(len(cover)), "image/jpeg")
		return []byte(url), putErr
	})
	if err != nil {
		return nil, err
	}

	// Phase 4: build and insert the catalog record.
	book, err := s.catalog.Create(ctx, ports.CreateBookInput{
		Title:       input.Title,
		Author:      input.Author,
		Category:    input.Category,
		CoverURL:    string(coverURL),
		DownloadURL: string(downloadURL),
		Department:  input.Department,
		CourseCode:  input.CourseCode,
		CourseTitle: input.CourseTitle,
		Level:       input.Level,
	})
	if err != nil {
		metrics.UploadErrorsTotal.WithLabelValues(string(domain.PhasePersist)).Inc()
		return nil, &domain.PhaseError{Phase: domain.PhasePersist, Err: err}
	}

	metrics.UploadsTotal.WithLabelValues(string(book.Category)).Inc()
	s.logger.Info().
		Str("book_id", book.ID).
		Str("download_url", book.DownloadURL).
		Msg("material submitted")

	return book, nil
}

// Store uploads a single raw blob and returns its public URL.
func (s *UploadService) Store(ctx context.Context, fileName string, r io.Reader, size int64, contentType string) (string, error) {
	key := objectKeyBase(fileName) + strings.ToLower(path.Ext(fileName))
	url, err := s.store.Put(ctx, key, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("store blob: %w", err)
	}
	return url, nil
}

// runPhase times a phase and records its outcome before tagging any failure
// with the phase name.
func (s *UploadService) runPhase(phase domain.UploadPhase, fn func() ([]byte, error)) ([]byte, error) {
	start := time.Now()
	out, err := fn()
	metrics.UploadPhaseDuration.WithLabelValues(string(phase)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UploadErrorsTotal.WithLabelValues(string(phase)).Inc()
		s.logger.Error().Err(err).Str("phase", string(phase)).Msg("upload pipeline aborted")
		return nil, &domain.PhaseError{Phase: phase, Err: err}
	}
	return out, nil
}

// objectKeyBase derives a collision-free object key from the submitted file
// name, keeping a readable slug for operators browsing the bucket.
func objectKeyBase(fileName string) string {
	slug := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	if slug == "" {
		slug = "material"
	}
	return uuid.NewString()[:8] + "-" + slug
}
