package pdfcover

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// Metadata is the document information embedded in a PDF, used to prefill the
// add-material form when the operator leaves fields blank.
type Metadata struct {
	Title  string
	Author string
	Pages  int
}

// Sniff reads the embedded document information dictionary. Malformed PDFs
// yield empty metadata rather than an error; the pipeline's render phase is
// the authoritative validity check.
func Sniff(pdfData []byte) (meta Metadata) {
	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		_ = recover()
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return meta
	}

	meta.Pages = reader.NumPage()

	info := reader.Trailer().Key("Info")
	if !info.IsNull() {
		meta.Title = info.Key("Title").Text()
		meta.Author = info.Key("Author").Text()
	}

	return meta
}
