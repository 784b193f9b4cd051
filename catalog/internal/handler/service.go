package handler

import (
	"context"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	AddBook(ctx context.Context, book model.Book) error
	AddMember(ctx context.Context, member model.Member) error
	SearchBooks(ctx context.Context, criteria model.SearchCriteria, value string) model.ListBooks
	UpdateBook(ctx context.Context, isbn string, patch model.BookPatch) (model.Book, error)
	DeleteBook(ctx context.Context, isbn string) error
	BorrowBook(ctx context.Context, isbn, memberID string) error
	ReturnBook(ctx context.Context, isbn, memberID string) error
	GetBook(ctx context.Context, isbn string) (model.Book, error)
	ListBooks(ctx context.Context) model.ListBooks
	GetMember(ctx context.Context, id string) (model.Member, error)
	ListMembers(ctx context.Context) model.ListMembers
	Availability(ctx context.Context, isbn string) (model.Availability, error)
	MemberLoans(ctx context.Context, id string) (model.MemberLoans, error)
}

var _ CatalogService = (*service.Service)(nil)
