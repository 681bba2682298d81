// Package domain contains the core entities for the book catalog.
package domain

// Book is a catalog entry. The ID is assigned on creation and immutable
// afterwards.
type Book struct {
	ID      int
	Title   string
	Author  string
	Content string
}
