package implementation

import (
	"context"

	"the-family-be/internal/entity"
	"the-family-be/internal/mapper"
	"the-family-be/internal/model"
	"the-family-be/internal/repository/contract"
	"the-family-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CatalogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewCatalogRepository(db *gorm.DB) contract.CatalogRepository {
	return &CatalogRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *CatalogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CatalogRepositoryImpl) Create(ctx context.Context, catalogModel *entity.CatalogModel) error {
	m := r.mapper.ToModel(catalogModel)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*catalogModel = *r.mapper.ToEntity(m)
	return nil
}

func (r *CatalogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CatalogModel, error) {
	var models []*model.CatalogModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CatalogRepositoryImpl) FindEnabled(ctx context.Context) ([]*entity.CatalogModel, error) {
	var models []*model.CatalogModel
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("provider ASC, alias ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
