package repository

import (
	"sort"
)

// LoanLedger records, per ISBN, the set of members currently holding a copy.
// Capacity and per-member limits are enforced by the caller.
type LoanLedger interface {
	Open(isbn string)
	Holders(isbn string) []string
	Add(isbn, memberID string) bool
	Remove(isbn, memberID string) bool
	HasEntry(isbn string) bool
	HasHolders(isbn string) bool
	IsHolder(isbn, memberID string) bool
	Drop(isbn string)
	HeldBy(memberID string) []string
	CountHeldBy(memberID string) int
}

type loanLedger struct {
	loans map[string]map[string]struct{}
}

func NewLoanLedger() *loanLedger {
	return &loanLedger{
		loans: make(map[string]map[string]struct{}),
	}
}

// Open creates an empty entry for isbn unless one exists.
func (l *loanLedger) Open(isbn string) {
	if _, ok := l.loans[isbn]; !ok {
		l.loans[isbn] = make(map[string]struct{})
	}
}

func (l *loanLedger) Holders(isbn string) []string {
	set := l.loans[isbn]
	holders := make([]string, 0, len(set))
	for id := range set {
		holders = append(holders, id)
	}
	sort.Strings(holders)
	return holders
}

// Add puts memberID into the loan set of isbn, creating the entry if it was dropped.
// It reports whether the member was not already a holder.
func (l *loanLedger) Add(isbn, memberID string) bool {
	set, ok := l.loans[isbn]
	if !ok {
		set = make(map[string]struct{})
		l.loans[isbn] = set
	}
	if _, held := set[memberID]; held {
		return false
	}
	set[memberID] = struct{}{}
	return true
}

// Remove takes memberID out of the loan set of isbn. An emptied entry is dropped.
func (l *loanLedger) Remove(isbn, memberID string) bool {
	set, ok := l.loans[isbn]
	if !ok {
		return false
	}
	if _, held := set[memberID]; !held {
		return false
	}
	delete(set, memberID)
	if len(set) == 0 {
		delete(l.loans, isbn)
	}
	return true
}

func (l *loanLedger) HasEntry(isbn string) bool {
	_, ok := l.loans[isbn]
	return ok
}

func (l *loanLedger) HasHolders(isbn string) bool {
	return len(l.loans[isbn]) > 0
}

func (l *loanLedger) IsHolder(isbn, memberID string) bool {
	_, ok := l.loans[isbn][memberID]
	return ok
}

func (l *loanLedger) Drop(isbn string) {
	delete(l.loans, isbn)
}

// HeldBy returns the distinct ISBNs memberID currently holds, sorted.
func (l *loanLedger) HeldBy(memberID string) []string {
	isbns := make([]string, 0)
	for isbn, set := range l.loans {
		if _, ok := set[memberID]; ok {
			isbns = append(isbns, isbn)
		}
	}
	sort.Strings(isbns)
	return isbns
}

func (l *loanLedger) CountHeldBy(memberID string) int {
	n := 0
	for _, set := range l.loans {
		if _, ok := set[memberID]; ok {
			n++
		}
	}
	return n
}
