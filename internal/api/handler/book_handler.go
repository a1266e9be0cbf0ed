package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// BookHandler handles catalog browsing and admin record mutation.
type BookHandler struct {
	catalog ports.CatalogService
}

func NewBookHandler(catalog ports.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

type createBookRequest struct {
	Title       string `json:"title"        validate:"required_if=Category novel"`
	Author      string `json:"author"`
	Category    string `json:"category"     validate:"required,oneof=academic novel"`
	CoverURL    string `json:"cover_url"    validate:"required,url"`
	DownloadURL string `json:"download_url" validate:"required,url"`
	Department  string `json:"department"   validate:"required_if=Category academic"`
	CourseCode  string `json:"course_code"  validate:"required_if=Category academic"`
	CourseTitle string `json:"course_title" validate:"required_if=Category academic"`
	Level       string `json:"level"        validate:"required_if=Category academic"`
}

// List returns the catalog, newest first, narrowed by optional query filters
// (search, category, department, level).
//
// @Summary      Browse the catalog
// @Tags         books
// @Produce      json
// @Param        search      query  string  false  "Free-text search over title, author and course fields"
// @Param        category    query  string  false  "academic, novel, or all"
// @Param        department  query  string  false  "Department filter, or all"
// @Param        level       query  string  false  "Level filter, or all"
// @Success      200  {array}  domain.Book
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	filter := domain.Filter{
		Search:     c.QueryParam("search"),
		Category:   c.QueryParam("category"),
		Department: c.QueryParam("department"),
		Level:      c.QueryParam("level"),
	}

	books, err := h.catalog.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if books == nil {
		books = []*domain.Book{}
	}
	return c.JSON(http.StatusOK, books)
}

// Create inserts a catalog record whose artifacts were already uploaded.
//
// @Summary      Create a catalog record
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book record"
// @Success      201   {object}  domain.Book
// @Failure      422   {object}  map[string]string
// @Router       /api/admin/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	book, err := h.catalog.Create(c.Request().Context(), ports.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
		DownloadURL: req.DownloadURL,
		Department:  req.Department,
		CourseCode:  req.CourseCode,
		CourseTitle: req.CourseTitle,
		Level:       req.Level,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, book)
}

// Delete removes a catalog record.
//
// @Summary      Delete a catalog record
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
