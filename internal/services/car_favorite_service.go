package services

import (
	"context"

	"motorsonline/internal/models"
	"motorsonline/internal/repositories"
)

type CarFavoriteService struct {
	CarFavoriteRepo *repositories.CarFavoriteRepository
}

func (s *CarFavoriteService) AddToFavorites(ctx context.Context, userID, carID int) error {
	return s.CarFavoriteRepo.AddToFavorites(ctx, userID, carID)
}

func (s *CarFavoriteService) RemoveFromFavorites(ctx context.Context, userID, carID int) error {
	return s.CarFavoriteRepo.RemoveFromFavorites(ctx, userID, carID)
}

func (s *CarFavoriteService) IsFavorite(ctx context.Context, userID, carID int) (bool, error) {
	return s.CarFavoriteRepo.IsFavorite(ctx, userID, carID)
}

func (s *CarFavoriteService) CountByCar(ctx context.Context, carID int) (int, error) {
	return s.CarFavoriteRepo.CountByCar(ctx, carID)
}

func (s *CarFavoriteService) GetFavoritesByUser(ctx context.Context, userID int) ([]models.CarFavorite, error) {
	return s.CarFavoriteRepo.GetFavoritesByUser(ctx, userID)
}

func (s *CarFavoriteService) GetFavoriteIDsByUser(ctx context.Context, userID int) ([]int, error) {
	return s.CarFavoriteRepo.GetFavoriteIDsByUser(ctx, userID)
}
