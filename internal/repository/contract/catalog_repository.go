package contract

import (
	"context"

	"the-family-be/internal/entity"
	"the-family-be/internal/repository/specification"
)

type CatalogRepository interface {
	Create(ctx context.Context, catalogModel *entity.CatalogModel) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CatalogModel, error)
	FindEnabled(ctx context.Context) ([]*entity.CatalogModel, error)
}
