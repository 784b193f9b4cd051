package repository

import (
	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

type MemberStore interface {
	Get(id string) (model.Member, bool)
	Insert(member model.Member) error
	List() []model.Member
}

type memberStore struct {
	members map[string]model.Member
	order   []string
}

func NewMemberStore() *memberStore {
	return &memberStore{
		members: make(map[string]model.Member),
	}
}

func (s *memberStore) Get(id string) (model.Member, bool) {
	m, ok := s.members[id]
	return m, ok
}

func (s *memberStore) Insert(member model.Member) error {
	if _, ok := s.members[member.ID]; ok {
		return errs.ErrDuplicateMember
	}
	s.members[member.ID] = member
	s.order = append(s.order, member.ID)
	return nil
}

func (s *memberStore) List() []model.Member {
	members := make([]model.Member, 0, len(s.order))
	for _, id := range s.order {
		members = append(members, s.members[id])
	}
	return members
}
