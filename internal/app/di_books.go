package app

import (
	booksHTTP "github.com/allisson/books/internal/books/http"
	booksRepository "github.com/allisson/books/internal/books/repository"
	booksUseCase "github.com/allisson/books/internal/books/usecase"
)

// BookRepository returns the in-memory book repository.
func (c *Container) BookRepository() booksUseCase.BookRepository {
	c.bookRepoInit.Do(func() {
		c.bookRepo = booksRepository.NewMemoryBookRepository()
	})
	return c.bookRepo
}

// BookUseCase returns the book use case.
func (c *Container) BookUseCase() booksUseCase.BookUseCase {
	c.bookUseCaseInit.Do(func() {
		c.bookUseCase = booksUseCase.NewBookUseCase(
			c.BookRepository(),
			c.Logger(),
		)
	})
	return c.bookUseCase
}

// BookHandler returns the book HTTP handler.
func (c *Container) BookHandler() *booksHTTP.BookHandler {
	c.bookHandlerInit.Do(func() {
		c.bookHandler = booksHTTP.NewBookHandler(
			c.BookUseCase(),
			c.Logger(),
		)
	})
	return c.bookHandler
}
