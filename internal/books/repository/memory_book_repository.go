// Package repository provides persistence implementations for books.
package repository

import (
	"context"
	"sort"
	"sync"

	booksDomain "github.com/allisson/books/internal/books/domain"
	booksUseCase "github.com/allisson/books/internal/books/usecase"
	apperrors "github.com/allisson/books/internal/errors"
)

// memoryBookRepository implements BookRepository with an in-memory map keyed
// by auto-increment id. State lives for the process lifetime.
type memoryBookRepository struct {
	mu     sync.RWMutex
	books  map[int]*booksDomain.Book
	nextID int
}

// Create stores a new book and assigns the next id.
func (r *memoryBookRepository) Create(ctx context.Context, book *booksDomain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book.ID = r.nextID
	r.nextID++

	stored := *book
	r.books[stored.ID] = &stored

	return nil
}

// Get returns a copy of the book with the given id.
func (r *memoryBookRepository) Get(ctx context.Context, id int) (*booksDomain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "book not found")
	}

	found := *book
	return &found, nil
}

// List returns copies of all books ordered by id.
func (r *memoryBookRepository) List(ctx context.Context) ([]*booksDomain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]*booksDomain.Book, 0, len(r.books))
	for _, book := range r.books {
		found := *book
		books = append(books, &found)
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].ID < books[j].ID
	})

	return books, nil
}

// Update replaces the mutable fields of an existing book.
func (r *memoryBookRepository) Update(ctx context.Context, book *booksDomain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.books[book.ID]
	if !ok {
		return apperrors.Wrap(apperrors.ErrNotFound, "book not found")
	}

	existing.Title = book.Title
	existing.Author = book.Author
	existing.Content = book.Content

	return nil
}

// Delete removes the book with the given id.
func (r *memoryBookRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return apperrors.Wrap(apperrors.ErrNotFound, "book not found")
	}

	delete(r.books, id)
	return nil
}

// NewMemoryBookRepository creates an empty in-memory book repository.
// Ids start at 1 and increment per created book.
func NewMemoryBookRepository() booksUseCase.BookRepository {
	return &memoryBookRepository{
		books:  make(map[int]*booksDomain.Book),
		nextID: 1,
	}
}
