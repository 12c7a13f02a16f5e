package mapper

import (
	"the-family-be/internal/entity"
	"the-family-be/internal/model"
)

type MemberMapper struct{}

func NewMemberMapper() *MemberMapper {
	return &MemberMapper{}
}

func (m *MemberMapper) ToEntity(mm *model.Member) *entity.Member {
	if mm == nil {
		return nil
	}
	return &entity.Member{
		Id:           mm.Id,
		OwnerId:      mm.OwnerId,
		Name:         mm.Name,
		Provider:     mm.Provider,
		Model:        mm.Model,
		SystemPrompt: mm.SystemPrompt,
		AvatarURL:    mm.AvatarURL,
		IsTemplate:   mm.IsTemplate,
		TemplateSlug: mm.TemplateSlug,
		CreatedAt:    mm.CreatedAt,
		UpdatedAt:    mm.UpdatedAt,
	}
}

func (m *MemberMapper) ToEntities(models []*model.Member) []*entity.Member {
	entities := make([]*entity.Member, len(models))
	for i, mm := range models {
		entities[i] = m.ToEntity(mm)
	}
	return entities
}

func (m *MemberMapper) ToModel(e *entity.Member) *model.Member {
	if e == nil {
		return nil
	}
	return &model.Member{
		Id:           e.Id,
		OwnerId:      e.OwnerId,
		Name:         e.Name,
		Provider:     e.Provider,
		Model:        e.Model,
		SystemPrompt: e.SystemPrompt,
		AvatarURL:    e.AvatarURL,
		IsTemplate:   e.IsTemplate,
		TemplateSlug: e.TemplateSlug,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
