// Package library holds the catalog aggregate: the book, member and loan stores
// together with the catalog and lending rules that act on them.
//
// Every exported method of Library runs as a single critical section, so one
// Library may be shared by concurrent callers. A nil error means the operation
// succeeded; every failure is a rejected precondition matching errs.ErrRejected.
package library

import (
	"strings"
	"sync"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/repository"
)

// MaxLoansPerMember is the default number of distinct ISBNs a member may hold at once.
const MaxLoansPerMember = 3

type Library struct {
	mu      sync.RWMutex
	books   repository.CatalogStore
	members repository.MemberStore
	loans   repository.LoanLedger

	maxLoans        int
	validateUpdates bool
}

type Option func(*Library)

// WithMaxLoans overrides the per-member cap. Values below 1 are ignored.
func WithMaxLoans(n int) Option {
	return func(l *Library) {
		if n > 0 {
			l.maxLoans = n
		}
	}
}

// WithUpdateValidation makes UpdateBook apply the AddBook genre and copies rules,
// and refuse to drop total copies below the copies currently on loan.
func WithUpdateValidation() Option {
	return func(l *Library) {
		l.validateUpdates = true
	}
}

func New(ops ...Option) *Library {
	l := &Library{
		books:    repository.NewCatalogStore(),
		members:  repository.NewMemberStore(),
		loans:    repository.NewLoanLedger(),
		maxLoans: MaxLoansPerMember,
	}
	for _, op := range ops {
		op(l)
	}
	return l
}

func (l *Library) MaxLoans() int {
	return l.maxLoans
}

// AddBook inserts a book and opens its empty loan set.
func (l *Library) AddBook(book model.Book) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.books.Get(book.ISBN); ok {
		return errs.ErrDuplicateISBN
	}
	if !book.Genre.Valid() {
		return errs.ErrInvalidGenre
	}
	if book.TotalCopies < 1 {
		return errs.ErrInvalidCopies
	}
	if err := l.books.Insert(book); err != nil {
		return err
	}
	l.loans.Open(book.ISBN)
	return nil
}

func (l *Library) AddMember(member model.Member) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.members.Insert(member)
}

// SearchBooks matches title and author by case-insensitive substring and genre by
// case-insensitive equality, in catalog insertion order. Unknown criteria match nothing.
func (l *Library) SearchBooks(criteria model.SearchCriteria, value string) []model.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var match func(model.Book) bool
	v := strings.ToLower(value)
	switch criteria {
	case model.SearchByTitle:
		match = func(b model.Book) bool { return strings.Contains(strings.ToLower(b.Title), v) }
	case model.SearchByAuthor:
		match = func(b model.Book) bool { return strings.Contains(strings.ToLower(b.Author), v) }
	case model.SearchByGenre:
		match = func(b model.Book) bool { return strings.ToLower(string(b.Genre)) == v }
	default:
		return []model.Book{}
	}

	result := make([]model.Book, 0)
	for _, b := range l.books.List() {
		if match(b) {
			result = append(result, b)
		}
	}
	return result
}

// UpdateBook overwrites the fields set in patch. Without WithUpdateValidation the
// new values are stored as given.
func (l *Library) UpdateBook(isbn string, patch model.BookPatch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.books.Get(isbn)
	if !ok {
		return errs.ErrBookNotFound
	}
	updated := patch.Apply(current)
	if l.validateUpdates {
		if !updated.Genre.Valid() {
			return errs.ErrInvalidGenre
		}
		if updated.TotalCopies < 1 {
			return errs.ErrInvalidCopies
		}
		if updated.TotalCopies < len(l.loans.Holders(isbn)) {
			return errs.ErrCopiesBelowLoans
		}
	}
	return l.books.Replace(updated)
}

// DeleteBook removes a book and its loan set, unless a copy is on loan.
func (l *Library) DeleteBook(isbn string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.books.Get(isbn); !ok {
		return errs.ErrBookNotFound
	}
	if l.loans.HasHolders(isbn) {
		return errs.ErrBookOnLoan
	}
	l.books.Remove(isbn)
	l.loans.Drop(isbn)
	return nil
}

func (l *Library) BorrowBook(isbn, memberID string) error {
	_, err := l.Lend(isbn, memberID)
	return err
}

// Lend is BorrowBook that also reports whether a new loan was recorded. Borrowing
// a book the member already holds passes the same checks and changes nothing.
func (l *Library) Lend(isbn, memberID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.members.Get(memberID); !ok {
		return false, errs.ErrMemberNotRegistered
	}
	book, ok := l.books.Get(isbn)
	if !ok {
		return false, errs.ErrBookNotFound
	}
	if len(l.loans.Holders(isbn)) >= book.TotalCopies {
		return false, errs.ErrNoCopyAvailable
	}
	if l.loans.CountHeldBy(memberID) >= l.maxLoans {
		return false, errs.ErrLoanLimitReached
	}
	return l.loans.Add(isbn, memberID), nil
}

func (l *Library) ReturnBook(isbn, memberID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loans.Remove(isbn, memberID) {
		return errs.ErrNotBorrowed
	}
	return nil
}

func (l *Library) GetBook(isbn string) (model.Book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.books.Get(isbn)
	if !ok {
		return model.Book{}, errs.ErrBookNotFound
	}
	return b, nil
}

func (l *Library) ListBooks() []model.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.books.List()
}

func (l *Library) GetMember(id string) (model.Member, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, ok := l.members.Get(id)
	if !ok {
		return model.Member{}, errs.ErrMemberNotFound
	}
	return m, nil
}

func (l *Library) ListMembers() []model.Member {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.members.List()
}

func (l *Library) IsHolder(isbn, memberID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.loans.IsHolder(isbn, memberID)
}

func (l *Library) Availability(isbn string) (model.Availability, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.books.Get(isbn)
	if !ok {
		return model.Availability{}, errs.ErrBookNotFound
	}
	holders := l.loans.Holders(isbn)
	available := b.TotalCopies - len(holders)
	if available < 0 {
		available = 0
	}
	return model.Availability{
		ISBN:        isbn,
		TotalCopies: b.TotalCopies,
		OnLoan:      len(holders),
		Available:   available,
		Holders:     holders,
	}, nil
}

func (l *Library) MemberLoans(id string) (model.MemberLoans, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.members.Get(id); !ok {
		return model.MemberLoans{}, errs.ErrMemberNotFound
	}
	isbns := l.loans.HeldBy(id)
	remaining := l.maxLoans - len(isbns)
	if remaining < 0 {
		remaining = 0
	}
	return model.MemberLoans{
		MemberID:  id,
		ISBNs:     isbns,
		Remaining: remaining,
	}, nil
}
