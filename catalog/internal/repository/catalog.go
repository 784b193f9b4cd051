package repository

import (
	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

// CatalogStore holds book records keyed by ISBN and remembers insertion order.
// Stores do not validate and are not safe for concurrent use; the owner serializes access.
type CatalogStore interface {
	Get(isbn string) (model.Book, bool)
	Insert(book model.Book) error
	Replace(book model.Book) error
	Remove(isbn string) bool
	List() []model.Book
	Len() int
}

type catalogStore struct {
	books map[string]model.Book
	order []string
}

func NewCatalogStore() *catalogStore {
	return &catalogStore{
		books: make(map[string]model.Book),
	}
}

func (s *catalogStore) Get(isbn string) (model.Book, bool) {
	b, ok := s.books[isbn]
	return b, ok
}

func (s *catalogStore) Insert(book model.Book) error {
	if _, ok := s.books[book.ISBN]; ok {
		return errs.ErrDuplicateISBN
	}
	s.books[book.ISBN] = book
	s.order = append(s.order, book.ISBN)
	return nil
}

func (s *catalogStore) Replace(book model.Book) error {
	if _, ok := s.books[book.ISBN]; !ok {
		return errs.ErrBookNotFound
	}
	s.books[book.ISBN] = book
	return nil
}

func (s *catalogStore) Remove(isbn string) bool {
	if _, ok := s.books[isbn]; !ok {
		return false
	}
	delete(s.books, isbn)
	for i, v := range s.order {
		if v == isbn {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *catalogStore) List() []model.Book {
	books := make([]model.Book, 0, len(s.order))
	for _, isbn := range s.order {
		books = append(books, s.books[isbn])
	}
	return books
}

func (s *catalogStore) Len() int {
	return len(s.books)
}
