package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/library"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/publisher"
)

type Service struct {
	log *zap.Logger
	lib *library.Library
	pub publisher.Publisher
	now func() time.Time
}

func NewService(lib *library.Library, pub publisher.Publisher, log *zap.Logger) *Service {
	return &Service{
		log: log,
		lib: lib,
		pub: pub,
		now: time.Now,
	}
}

func (s *Service) AddBook(_ context.Context, book model.Book) error {
	if err := s.lib.AddBook(book); err != nil {
		s.rejected("AddBook", err, zap.String("isbn", book.ISBN))
		return err
	}
	s.log.Info("book added", zap.String("isbn", book.ISBN), zap.Int("totalCopies", book.TotalCopies))
	return nil
}

func (s *Service) AddMember(_ context.Context, member model.Member) error {
	if err := s.lib.AddMember(member); err != nil {
		s.rejected("AddMember", err, zap.String("memberId", member.ID))
		return err
	}
	s.log.Info("member added", zap.String("memberId", member.ID))
	return nil
}

func (s *Service) SearchBooks(_ context.Context, criteria model.SearchCriteria, value string) model.ListBooks {
	return model.ListBooks{Items: s.lib.SearchBooks(criteria, value)}
}

func (s *Service) UpdateBook(_ context.Context, isbn string, patch model.BookPatch) (model.Book, error) {
	if err := s.lib.UpdateBook(isbn, patch); err != nil {
		s.rejected("UpdateBook", err, zap.String("isbn", isbn))
		return model.Book{}, err
	}
	s.log.Info("book updated", zap.String("isbn", isbn))
	return s.lib.GetBook(isbn)
}

func (s *Service) DeleteBook(_ context.Context, isbn string) error {
	if err := s.lib.DeleteBook(isbn); err != nil {
		s.rejected("DeleteBook", err, zap.String("isbn", isbn))
		return err
	}
	s.log.Info("book deleted", zap.String("isbn", isbn))
	return nil
}

func (s *Service) BorrowBook(ctx context.Context, isbn, memberID string) error {
	changed, err := s.lib.Lend(isbn, memberID)
	if err != nil {
		s.rejected("BorrowBook", err, zap.String("isbn", isbn), zap.String("memberId", memberID))
		return err
	}
	if !changed {
		s.log.Debug("book already held", zap.String("isbn", isbn), zap.String("memberId", memberID))
		return nil
	}
	s.log.Info("book borrowed", zap.String("isbn", isbn), zap.String("memberId", memberID))
	s.publish(ctx, model.LendingBorrowed, isbn, memberID)
	return nil
}

func (s *Service) ReturnBook(ctx context.Context, isbn, memberID string) error {
	if err := s.lib.ReturnBook(isbn, memberID); err != nil {
		s.rejected("ReturnBook", err, zap.String("isbn", isbn), zap.String("memberId", memberID))
		return err
	}
	s.log.Info("book returned", zap.String("isbn", isbn), zap.String("memberId", memberID))
	s.publish(ctx, model.LendingReturned, isbn, memberID)
	return nil
}

func (s *Service) GetBook(_ context.Context, isbn string) (model.Book, error) {
	return s.lib.GetBook(isbn)
}

func (s *Service) ListBooks(_ context.Context) model.ListBooks {
	return model.ListBooks{Items: s.lib.ListBooks()}
}

func (s *Service) GetMember(_ context.Context, id string) (model.Member, error) {
	return s.lib.GetMember(id)
}

func (s *Service) ListMembers(_ context.Context) model.ListMembers {
	return model.ListMembers{Items: s.lib.ListMembers()}
}

func (s *Service) Availability(_ context.Context, isbn string) (model.Availability, error) {
	return s.lib.Availability(isbn)
}

func (s *Service) MemberLoans(_ context.Context, id string) (model.MemberLoans, error) {
	return s.lib.MemberLoans(id)
}

// publish reports a committed lending change. The change stands even if the event is lost.
func (s *Service) publish(ctx context.Context, typ model.LendingEventType, isbn, memberID string) {
	event := model.LendingEvent{
		EventUid:   uuid.New().String(),
		Type:       typ,
		ISBN:       isbn,
		MemberID:   memberID,
		OccurredAt: s.now().UTC(),
	}
	if err := s.pub.Publish(ctx, event); err != nil {
		s.log.Warn("publish lending event",
			zap.Error(err),
			zap.String("eventUid", event.EventUid),
			zap.String("type", string(typ)),
		)
	}
}

func (s *Service) rejected(op string, err error, fields ...zap.Field) {
	if errs.IsRejected(err) {
		s.log.Debug(op+" rejected", append(fields, zap.Error(err))...)
		return
	}
	s.log.Error(op, append(fields, zap.Error(err))...)
}
