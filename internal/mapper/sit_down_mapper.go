package mapper

import (
	"the-family-be/internal/entity"
	"the-family-be/internal/model"
)

type SitDownMapper struct {
	users   *UserMapper
	members *MemberMapper
}

func NewSitDownMapper() *SitDownMapper {
	return &SitDownMapper{
		users:   NewUserMapper(),
		members: NewMemberMapper(),
	}
}

func (m *SitDownMapper) ToEntity(s *model.SitDown) *entity.SitDown {
	if s == nil {
		return nil
	}
	return &entity.SitDown{
		Id:           s.Id,
		Name:         s.Name,
		Description:  s.Description,
		CreatedBy:    s.CreatedBy,
		IsCommission: s.IsCommission,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *SitDownMapper) ToModel(e *entity.SitDown) *model.SitDown {
	if e == nil {
		return nil
	}
	return &model.SitDown{
		Id:           e.Id,
		Name:         e.Name,
		Description:  e.Description,
		CreatedBy:    e.CreatedBy,
		IsCommission: e.IsCommission,
		CreatedAt:    e.CreatedAt,
	}
}

func (m *SitDownMapper) ParticipantToEntity(p *model.SitDownParticipant) *entity.SitDownParticipant {
	if p == nil {
		return nil
	}
	return &entity.SitDownParticipant{
		Id:        p.Id,
		SitDownId: p.SitDownId,
		UserId:    p.UserId,
		MemberId:  p.MemberId,
		AddedBy:   p.AddedBy,
		AddedAt:   p.AddedAt,
		Profile:   m.users.ToEntity(p.Profile),
		Member:    m.members.ToEntity(p.Member),
	}
}

func (m *SitDownMapper) ToEntities(models []*model.SitDown) []*entity.SitDown {
	entities := make([]*entity.SitDown, len(models))
	for i, s := range models {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *SitDownMapper) ParticipantsToEntities(models []*model.SitDownParticipant) []*entity.SitDownParticipant {
	entities := make([]*entity.SitDownParticipant, len(models))
	for i, p := range models {
		entities[i] = m.ParticipantToEntity(p)
	}
	return entities
}

func (m *SitDownMapper) ParticipantToModel(e *entity.SitDownParticipant) *model.SitDownParticipant {
	if e == nil {
		return nil
	}
	return &model.SitDownParticipant{
		Id:        e.Id,
		SitDownId: e.SitDownId,
		UserId:    e.UserId,
		MemberId:  e.MemberId,
		AddedBy:   e.AddedBy,
		AddedAt:   e.AddedAt,
	}
}
