// Package http provides HTTP handlers for book catalog operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	booksDomain "github.com/allisson/books/internal/books/domain"
	"github.com/allisson/books/internal/books/http/dto"
	booksUseCase "github.com/allisson/books/internal/books/usecase"
	"github.com/allisson/books/internal/httputil"
	customValidation "github.com/allisson/books/internal/validation"
)

// BookHandler handles HTTP requests for book CRUD operations.
type BookHandler struct {
	bookUseCase booksUseCase.BookUseCase
	logger      *slog.Logger
}

// NewBookHandler creates a new book handler with required dependencies.
func NewBookHandler(
	bookUseCase booksUseCase.BookUseCase,
	logger *slog.Logger,
) *BookHandler {
	return &BookHandler{
		bookUseCase: bookUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a new book.
// POST /books - Requires authenticated identity.
// Returns 201 Created with the created book including its assigned id.
func (h *BookHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateBookRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	book := &booksDomain.Book{
		Title:   req.Title,
		Author:  req.Author,
		Content: req.Content,
	}

	created, err := h.bookUseCase.Create(c.Request.Context(), book)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapBookToResponse(created))
}

// ListHandler retrieves all books.
// GET /books - Requires authenticated identity.
// Returns 200 OK with the full book list.
func (h *BookHandler) ListHandler(c *gin.Context) {
	books, err := h.bookUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBooksToListResponse(books))
}

// GetHandler retrieves a single book by its id.
// GET /books/:id - Requires authenticated identity.
// Returns 200 OK with the book, or 404 when the id is absent.
func (h *BookHandler) GetHandler(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	book, err := h.bookUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBookToResponse(book))
}

// UpdateHandler updates an existing book.
// PUT /books/:id - Requires authenticated identity.
// Returns 200 OK with the updated book, or 404 when the id is absent.
func (h *BookHandler) UpdateHandler(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateBookRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	book := &booksDomain.Book{
		ID:      id,
		Title:   req.Title,
		Author:  req.Author,
		Content: req.Content,
	}

	updated, err := h.bookUseCase.Update(c.Request.Context(), book)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBookToResponse(updated))
}

// DeleteHandler removes a book by its id.
// DELETE /books/:id - Requires authenticated identity.
// Returns 200 OK with a confirmation, or 404 when the id is absent.
func (h *BookHandler) DeleteHandler(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.bookUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteBookResponse{Message: "book deleted"})
}

// parseBookID extracts and validates the id path parameter.
func parseBookID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, fmt.Errorf("invalid id parameter: must be an integer")
	}
	return id, nil
}
