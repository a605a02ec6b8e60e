package services

import (
	"context"

	"motorsonline/internal/models"
	"motorsonline/internal/repositories"
)

type ReferenceService struct {
	ReferenceRepo *repositories.ReferenceRepository
}

func (s *ReferenceService) GetBrands(ctx context.Context) ([]models.Brand, error) {
	return s.ReferenceRepo.GetBrands(ctx)
}

func (s *ReferenceService) CreateBrand(ctx context.Context, brand models.Brand) (models.Brand, error) {
	return s.ReferenceRepo.CreateBrand(ctx, brand)
}

func (s *ReferenceService) UpdateBrand(ctx context.Context, brand models.Brand) (models.Brand, error) {
	return s.ReferenceRepo.UpdateBrand(ctx, brand)
}

func (s *ReferenceService) DeleteBrand(ctx context.Context, id int) error {
	return s.ReferenceRepo.DeleteBrand(ctx, id)
}

func (s *ReferenceService) GetModelsByBrand(ctx context.Context, brandID int) ([]models.CarModel, error) {
	return s.ReferenceRepo.GetModelsByBrand(ctx, brandID)
}

func (s *ReferenceService) CreateModel(ctx context.Context, m models.CarModel) (models.CarModel, error) {
	return s.ReferenceRepo.CreateModel(ctx, m)
}

func (s *ReferenceService) UpdateModel(ctx context.Context, m models.CarModel) (models.CarModel, error) {
	return s.ReferenceRepo.UpdateModel(ctx, m)
}

func (s *ReferenceService) DeleteModel(ctx context.Context, id int) error {
	return s.ReferenceRepo.DeleteModel(ctx, id)
}

func (s *ReferenceService) GetYears(ctx context.Context) ([]models.Year, error) {
	return s.ReferenceRepo.GetYears(ctx)
}

func (s *ReferenceService) GetDriveTypes(ctx context.Context) ([]models.DriveType, error) {
	return s.ReferenceRepo.GetDriveTypes(ctx)
}
