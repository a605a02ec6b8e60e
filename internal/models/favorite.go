package models

import (
	"time"
)

// CarFavorite is a favorite row joined with the listing card data the
// favorites page renders.
type CarFavorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CarID     int       `json:"car_id"`
	BrandName string    `json:"brand_name"`
	ModelName string    `json:"model_name"`
	Year      int       `json:"year"`
	Price     float64   `json:"price"`
	Mileage   int       `json:"mileage"`
	FuelType  string    `json:"fuel_type"`
	Status    string    `json:"status"`
	ImagePath *string   `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
