// Package pdfcover turns the first page of an uploaded PDF into a catalog
// cover image.
package pdfcover

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"
)

// go-fitz renders at 144 DPI by default; halfScaleDPI keeps covers at half
// that, matching the thumbnail size the catalog grid displays.
const (
	halfScaleDPI = 72
	jpegQuality  = 80
)

var ErrNoPages = errors.New("pdf has no pages")
var ErrEmptyCover = errors.New("cover rendering produced no output")

// Renderer rasterizes PDF covers. The zero value is ready to use.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render decodes the first page of the PDF at half scale and encodes it as a
// compressed JPEG. An unreadable document, an empty document, or an empty
// encoding result all fail the submission.
func (r *Renderer) Render(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, ErrNoPages
	}

	img, err := doc.ImageDPI(0, halfScaleDPI)
	if err != nil {
		return nil, fmt.Errorf("rasterize first page: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode cover jpeg: %w", err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyCover
	}
	return buf.Bytes(), nil
}
