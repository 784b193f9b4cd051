package model

import (
	"time"
)

type Genre string

const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "Non-Fiction"
	GenreSciFi      Genre = "Sci-Fi"
)

// Valid reports whether g is one of the catalog genres. The match is exact.
func (g Genre) Valid() bool {
	switch g {
	case GenreFiction, GenreNonFiction, GenreSciFi:
		return true
	}
	return false
}

type Book struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       Genre  `json:"genre"`
	TotalCopies int    `json:"totalCopies"`
}

// BookPatch carries the fields of an update. A nil field keeps the current value.
type BookPatch struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Genre       *Genre  `json:"genre"`
	TotalCopies *int    `json:"totalCopies"`
}

// Apply returns b with the non-nil patch fields overwritten.
func (p BookPatch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.TotalCopies != nil {
		b.TotalCopies = *p.TotalCopies
	}
	return b
}

type SearchCriteria string

const (
	SearchByTitle  SearchCriteria = "title"
	SearchByAuthor SearchCriteria = "author"
	SearchByGenre  SearchCriteria = "genre"
)

type Member struct {
	ID    string `json:"memberId"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Availability struct {
	ISBN        string   `json:"isbn"`
	TotalCopies int      `json:"totalCopies"`
	OnLoan      int      `json:"onLoan"`
	Available   int      `json:"available"`
	Holders     []string `json:"holders"`
}

type MemberLoans struct {
	MemberID  string   `json:"memberId"`
	ISBNs     []string `json:"isbns"`
	Remaining int      `json:"remaining"`
}

type CreateBookRequest struct {
	ISBN        string `json:"isbn" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       Genre  `json:"genre" validate:"required"`
	TotalCopies int    `json:"totalCopies"`
}

func (r CreateBookRequest) Book() Book {
	return Book{
		ISBN:        r.ISBN,
		Title:       r.Title,
		Author:      r.Author,
		Genre:       r.Genre,
		TotalCopies: r.TotalCopies,
	}
}

type CreateMemberRequest struct {
	ID    string `json:"memberId" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type LendingRequest struct {
	MemberID string `json:"memberId" validate:"required"`
}

type ListBooks struct {
	Items []Book `json:"items"`
}

type ListMembers struct {
	Items []Member `json:"items"`
}

type LendingEventType string

const (
	LendingBorrowed LendingEventType = "BORROWED"
	LendingReturned LendingEventType = "RETURNED"
)

type LendingEvent struct {
	EventUid   string           `json:"eventUid"`
	Type       LendingEventType `json:"type"`
	ISBN       string           `json:"isbn"`
	MemberID   string           `json:"memberId"`
	OccurredAt time.Time        `json:"occurredAt"`
}
