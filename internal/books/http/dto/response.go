// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	booksDomain "github.com/allisson/books/internal/books/domain"
)

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// MapBookToResponse converts a domain book to an API response.
func MapBookToResponse(book *booksDomain.Book) BookResponse {
	return BookResponse{
		ID:      book.ID,
		Title:   book.Title,
		Author:  book.Author,
		Content: book.Content,
	}
}

// ListBooksResponse represents the full book list in API responses.
type ListBooksResponse struct {
	Data []BookResponse `json:"data"`
}

// MapBooksToListResponse converts a slice of domain books to a list API response.
func MapBooksToListResponse(books []*booksDomain.Book) ListBooksResponse {
	bookResponses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		bookResponses = append(bookResponses, MapBookToResponse(book))
	}
	return ListBooksResponse{
		Data: bookResponses,
	}
}

// DeleteBookResponse confirms a successful deletion.
type DeleteBookResponse struct {
	Message string `json:"message"`
}
