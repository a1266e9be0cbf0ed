package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JesloDev/e-library/internal/core/ports"
	"github.com/JesloDev/e-library/internal/pdfcover"
)

// maxUploadBytes caps a single material submission at 64 MiB.
const maxUploadBytes = 64 << 20

// UploadHandler handles raw blob uploads and composed material submissions.
type UploadHandler struct {
	uploads ports.UploadService
}

func NewUploadHandler(uploads ports.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload stores a single multipart blob and returns its public URL.
//
// @Summary      Upload a raw file
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File to store"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/admin/upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploads.Store(c.Request().Context(), fh.Filename, src, fh.Size, contentType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}

// SubmitMaterial runs the full four-phase pipeline for one add-material form:
// thumbnail render, PDF upload, thumbnail upload, record creation. Metadata
// left blank is prefilled from the PDF's embedded document information.
//
// @Summary      Submit a material through the upload pipeline
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file          formData  file    true   "PDF to publish"
// @Param        category      formData  string  true   "academic or novel"
// @Param        title         formData  string  false  "Title (novels)"
// @Param        author        formData  string  false  "Author"
// @Param        department    formData  string  false  "Department (academic)"
// @Param        course_code   formData  string  false  "Course code (academic)"
// @Param        course_title  formData  string  false  "Course title (academic)"
// @Param        level         formData  string  false  "Level (academic)"
// @Success      201  {object}  domain.Book
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/admin/materials [post]
func (h *UploadHandler) SubmitMaterial(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	pdfData, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}

	input := ports.SubmitMaterialInput{
		FileName:    fh.Filename,
		PDF:         pdfData,
		Title:       c.FormValue("title"),
		Author:      c.FormValue("author"),
		Category:    c.FormValue("category"),
		Department:  c.FormValue("department"),
		CourseCode:  c.FormValue("course_code"),
		CourseTitle: c.FormValue("course_title"),
		Level:       c.FormValue("level"),
	}

	if input.Title == "" || input.Author == "" {
		meta := pdfcover.Sniff(pdfData)
		if input.Title == "" {
			input.Title = meta.Title
		}
		if input.Author == "" {
			input.Author = meta.Author
		}
	}

	book, err := h.uploads.Submit(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}
