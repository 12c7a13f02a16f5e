package mapper

import (
	"the-family-be/internal/entity"
	"the-family-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ToEntity(c *model.CatalogModel) *entity.CatalogModel {
	if c == nil {
		return nil
	}
	return &entity.CatalogModel{
		Id:        c.Id,
		Provider:  c.Provider,
		Model:     c.Model,
		Alias:     c.Alias,
		Enabled:   c.Enabled,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *CatalogMapper) ToEntities(models []*model.CatalogModel) []*entity.CatalogModel {
	entities := make([]*entity.CatalogModel, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CatalogMapper) ToModel(e *entity.CatalogModel) *model.CatalogModel {
	if e == nil {
		return nil
	}
	return &model.CatalogModel{
		Id:        e.Id,
		Provider:  e.Provider,
		Model:     e.Model,
		Alias:     e.Alias,
		Enabled:   e.Enabled,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
