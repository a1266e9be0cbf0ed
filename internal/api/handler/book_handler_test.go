package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

type stubCatalogService struct {
	listFn   func(ctx context.Context, filter domain.Filter) ([]*domain.Book, error)
	createFn func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubCatalogService) List(ctx context.Context, filter domain.Filter) ([]*domain.Book, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCatalogService) Create(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	return s.createFn(ctx, input)
}

func (s *stubCatalogService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestBookHandler_List_PassesQueryFilter(t *testing.T) {
	e := newTestEcho()
	var gotFilter domain.Filter
	catalog := &stubCatalogService{
		listFn: func(ctx context.Context, filter domain.Filter) ([]*domain.Book, error) {
			gotFilter = filter
			return []*domain.Book{{ID: "b1", Title: "Intro to CS", Category: domain.CategoryAcademic}}, nil
		},
	}
	handler := NewBookHandler(catalog)

	req := httptest.NewRequest(http.MethodGet, "/api/books?search=intro&category=academic&department=Computer+Science&level=100", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	want := domain.Filter{Search: "intro", Category: "academic", Department: "Computer Science", Level: "100"}
	if gotFilter != want {
		t.Fatalf("got filter %+v, want %+v", gotFilter, want)
	}
}

func TestBookHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	catalog := &stubCatalogService{
		listFn: func(ctx context.Context, filter domain.Filter) ([]*domain.Book, error) {
			return nil, nil
		},
	}
	handler := NewBookHandler(catalog)

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestBookHandler_Create_Academic(t *testing.T) {
	e := newTestEcho()
	catalog := &stubCatalogService{
		createFn: func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
			return &domain.Book{ID: "b1", Title: input.CourseTitle, Category: domain.Category(input.Category)}, nil
		},
	}
	handler := NewBookHandler(catalog)

	body := strings.NewReader(`{
		"category": "academic",
		"cover_url": "http://store/cover.jpg",
		"download_url": "http://store/material.pdf",
		"department": "Computer Science",
		"course_code": "CSC101",
		"course_title": "Intro to CS",
		"level": "100"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/books", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["title"] != "Intro to CS" {
		t.Fatalf("unexpected title: %v", resp["title"])
	}
}

func TestBookHandler_Create_AcademicMissingCourseFields(t *testing.T) {
	e := newTestEcho()
	handler := NewBookHandler(&stubCatalogService{})

	body := strings.NewReader(`{
		"category": "academic",
		"cover_url": "http://store/cover.jpg",
		"download_url": "http://store/material.pdf"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/books", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %v, want 422", err)
	}
	msg, _ := httpErr.Message.(string)
	if !strings.Contains(msg, "required for academic materials") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestBookHandler_Create_UnknownCategory(t *testing.T) {
	e := newTestEcho()
	handler := NewBookHandler(&stubCatalogService{})

	body := strings.NewReader(`{
		"title": "Zine",
		"category": "magazine",
		"cover_url": "http://store/cover.jpg",
		"download_url": "http://store/material.pdf"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/books", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %v, want 422", err)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	e := newTestEcho()
	var deleted string
	catalog := &stubCatalogService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewBookHandler(catalog)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/books/b1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "b1" {
		t.Fatalf("deleted wrong book: %q", deleted)
	}
}

func TestBookHandler_Delete_Unknown(t *testing.T) {
	e := newTestEcho()
	catalog := &stubCatalogService{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrBookNotFound
		},
	}
	handler := NewBookHandler(catalog)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/books/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("got %v, want ErrBookNotFound", err)
	}
}
