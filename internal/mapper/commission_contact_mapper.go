package mapper

import (
	"the-family-be/internal/entity"
	"the-family-be/internal/model"
)

type CommissionContactMapper struct {
	users *UserMapper
}

func NewCommissionContactMapper() *CommissionContactMapper {
	return &CommissionContactMapper{users: NewUserMapper()}
}

func (m *CommissionContactMapper) ToEntity(c *model.CommissionContact) *entity.CommissionContact {
	if c == nil {
		return nil
	}
	return &entity.CommissionContact{
		Id:             c.Id,
		UserId:         c.UserId,
		ContactUserId:  c.ContactUserId,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		RespondedAt:    c.RespondedAt,
		Profile:        m.users.ToEntity(c.Profile),
		ContactProfile: m.users.ToEntity(c.ContactProfile),
	}
}

func (m *CommissionContactMapper) ToEntities(models []*model.CommissionContact) []*entity.CommissionContact {
	entities := make([]*entity.CommissionContact, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CommissionContactMapper) ToModel(e *entity.CommissionContact) *model.CommissionContact {
	if e == nil {
		return nil
	}
	return &model.CommissionContact{
		Id:            e.Id,
		UserId:        e.UserId,
		ContactUserId: e.ContactUserId,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		RespondedAt:   e.RespondedAt,
	}
}
