package usecase

import (
	"context"

	"go-candidate-feed/internal/catalog"
	"go-candidate-feed/internal/domain"
)

type categoryUsecase struct {
	catalog *catalog.Catalog
}

func NewCategoryUsecase(c *catalog.Catalog) domain.CategoryUsecase {
	return &categoryUsecase{catalog: c}
}

func (u *categoryUsecase) List(ctx context.Context) []domain.JobCategory {
	return u.catalog.Categories()
}

func (u *categoryUsecase) Exists(tag string) bool {
	return u.catalog.Has(tag)
}
