// Package usecase implements business logic orchestration for book operations.
package usecase

import (
	"context"

	booksDomain "github.com/allisson/books/internal/books/domain"
)

// BookRepository defines persistence operations for books.
type BookRepository interface {
	// Create stores a new book and assigns it a fresh id.
	Create(ctx context.Context, book *booksDomain.Book) error
	// Get returns the book with the given id, or ErrNotFound.
	Get(ctx context.Context, id int) (*booksDomain.Book, error)
	// List returns all books ordered by id.
	List(ctx context.Context) ([]*booksDomain.Book, error)
	// Update replaces the fields of an existing book, or returns ErrNotFound.
	Update(ctx context.Context, book *booksDomain.Book) error
	// Delete removes the book with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id int) error
}

// BookUseCase defines CRUD operations over the book catalog.
type BookUseCase interface {
	Create(ctx context.Context, book *booksDomain.Book) (*booksDomain.Book, error)
	Get(ctx context.Context, id int) (*booksDomain.Book, error)
	List(ctx context.Context) ([]*booksDomain.Book, error)
	Update(ctx context.Context, book *booksDomain.Book) (*booksDomain.Book, error)
	Delete(ctx context.Context, id int) error
}
