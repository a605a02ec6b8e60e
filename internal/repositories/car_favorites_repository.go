package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"motorsonline/internal/models"
)

type CarFavoriteRepository struct {
	DB *sql.DB
}

// AddToFavorites is idempotent: the (user_id, car_id) pair is unique and a
// repeated add is absorbed.
func (r *CarFavoriteRepository) AddToFavorites(ctx context.Context, userID, carID int) error {
	query := `INSERT IGNORE INTO car_favorites (user_id, car_id) VALUES (?, ?)`
	_, err := r.DB.ExecContext(ctx, query, userID, carID)
	return err
}

func (r *CarFavoriteRepository) RemoveFromFavorites(ctx context.Context, userID, carID int) error {
	query := `DELETE FROM car_favorites WHERE user_id = ? AND car_id = ?`
	_, err := r.DB.ExecContext(ctx, query, userID, carID)
	return err
}

func (r *CarFavoriteRepository) IsFavorite(ctx context.Context, userID, carID int) (bool, error) {
	query := `SELECT COUNT(*) FROM car_favorites WHERE user_id = ? AND car_id = ?`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID, carID).Scan(&count)
	return count > 0, err
}

func (r *CarFavoriteRepository) CountByCar(ctx context.Context, carID int) (int, error) {
	query := `SELECT COUNT(*) FROM car_favorites WHERE car_id = ?`
	var count int
	err := r.DB.QueryRowContext(ctx, query, carID).Scan(&count)
	return count, err
}

func (r *CarFavoriteRepository) GetFavoritesByUser(ctx context.Context, userID int) ([]models.CarFavorite, error) {
	query := `
		SELECT cf.id, cf.user_id, cf.car_id,
			b.name, m.name, y.value,
			c.price, c.mileage, c.fuel_type, c.status, c.images, cf.created_at
		FROM car_favorites cf
		JOIN cars c ON cf.car_id = c.id
		JOIN brands b ON c.brand_id = b.id
		JOIN car_models m ON c.model_id = m.id
		JOIN years y ON c.year_id = y.id
		WHERE cf.user_id = ?
		ORDER BY cf.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []models.CarFavorite
	for rows.Next() {
		var (
			fav        models.CarFavorite
			imagesJSON sql.NullString
		)
		err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.CarID,
			&fav.BrandName, &fav.ModelName, &fav.Year,
			&fav.Price, &fav.Mileage, &fav.FuelType, &fav.Status, &imagesJSON, &fav.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		fav.ImagePath = firstImagePath(imagesJSON)
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("car favorites rows error: %w", err)
	}
	return favs, nil
}

// GetFavoriteIDsByUser returns just the listing ids, for the client SDK's
// local favorite set.
func (r *CarFavoriteRepository) GetFavoriteIDsByUser(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT car_id FROM car_favorites WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
