package usecase

import (
	"context"
	"log/slog"

	booksDomain "github.com/allisson/books/internal/books/domain"
	apperrors "github.com/allisson/books/internal/errors"
)

// bookUseCase implements BookUseCase on top of a BookRepository.
type bookUseCase struct {
	bookRepo BookRepository
	logger   *slog.Logger
}

// Create stores a new book and returns it with its assigned id.
func (b *bookUseCase) Create(ctx context.Context, book *booksDomain.Book) (*booksDomain.Book, error) {
	if err := b.bookRepo.Create(ctx, book); err != nil {
		return nil, apperrors.Wrap(err, "failed to create book")
	}

	b.logger.Info("book created",
		slog.Int("id", book.ID),
		slog.String("title", book.Title))

	return book, nil
}

// Get returns the book with the given id.
func (b *bookUseCase) Get(ctx context.Context, id int) (*booksDomain.Book, error) {
	book, err := b.bookRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// List returns all books.
func (b *bookUseCase) List(ctx context.Context) ([]*booksDomain.Book, error) {
	books, err := b.bookRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list books")
	}
	return books, nil
}

// Update replaces the fields of an existing book and returns the result.
func (b *bookUseCase) Update(ctx context.Context, book *booksDomain.Book) (*booksDomain.Book, error) {
	if err := b.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	b.logger.Info("book updated",
		slog.Int("id", book.ID))

	return b.bookRepo.Get(ctx, book.ID)
}

// Delete removes the book with the given id.
func (b *bookUseCase) Delete(ctx context.Context, id int) error {
	if err := b.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	b.logger.Info("book deleted",
		slog.Int("id", id))

	return nil
}

// NewBookUseCase creates a BookUseCase with required dependencies.
func NewBookUseCase(bookRepo BookRepository, logger *slog.Logger) BookUseCase {
	return &bookUseCase{
		bookRepo: bookRepo,
		logger:   logger,
	}
}
