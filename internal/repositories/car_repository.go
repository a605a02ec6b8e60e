package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"motorsonline/internal/models"
)

var ErrCarNotFound = errors.New("car not found")

type CarRepository struct {
	DB *sql.DB
}

const carColumns = `
	c.id, c.user_id, c.brand_id, c.model_id, c.year_id, c.drive_type_id,
	b.name, m.name, y.value, dt.name,
	c.vehicle_type, c.body_type, c.category, c.fuel_type, c.transmission, c.color,
	c.mileage, c.power, c.displacement, c.seats, c.doors, c.vin, c.plate_number,
	c.description, c.equipment_text, c.additional_info,
	c.price, c.discount_price, c.vat_refundable, c.vat_rate,
	c.equipment, c.stereo_text, c.wheel_size_text, c.tech_check, c.inspection_valid_until,
	c.images, c.status, c.created_at, c.updated_at`

const carJoins = `
	FROM cars c
	JOIN brands b ON c.brand_id = b.id
	JOIN car_models m ON c.model_id = m.id
	JOIN years y ON c.year_id = y.id
	JOIN drive_types dt ON c.drive_type_id = dt.id`

func scanCar(row interface{ Scan(...any) error }) (models.Car, error) {
	var (
		c          models.Car
		discount   sql.NullFloat64
		imagesJSON sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.BrandID, &c.ModelID, &c.YearID, &c.DriveTypeID,
		&c.BrandName, &c.ModelName, &c.Year, &c.DriveType,
		&c.VehicleType, &c.BodyType, &c.Category, &c.FuelType, &c.Transmission, &c.Color,
		&c.Mileage, &c.Power, &c.Displacement, &c.Seats, &c.Doors, &c.VIN, &c.PlateNumber,
		&c.Description, &c.EquipmentText, &c.AdditionalInfo,
		&c.Price, &discount, &c.VatRefundable, &c.VatRate,
		&c.Equipment, &c.StereoText, &c.WheelSizeText, &c.TechCheck, &c.InspectionValidUntil,
		&imagesJSON, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return models.Car{}, err
	}
	if discount.Valid {
		c.DiscountPrice = &discount.Float64
	}
	c.Images = decodeImages(imagesJSON)
	return c, nil
}

func encodeImages(images []models.CarImage) string {
	if len(images) == 0 {
		return "[]"
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeImages(raw sql.NullString) []models.CarImage {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var images []models.CarImage
	if err := json.Unmarshal([]byte(raw.String), &images); err != nil {
		return nil
	}
	return images
}

// firstImagePath returns the cover photo for card views.
func firstImagePath(raw sql.NullString) *string {
	images := decodeImages(raw)
	if len(images) == 0 {
		return nil
	}
	return &images[0].Path
}

func (r *CarRepository) CreateCar(ctx context.Context, car models.Car) (models.Car, error) {
	query := `
		INSERT INTO cars
			(user_id, brand_id, model_id, year_id, drive_type_id,
			 vehicle_type, body_type, category, fuel_type, transmission, color,
			 mileage, power, displacement, seats, doors, vin, plate_number,
			 description, equipment_text, additional_info,
			 price, discount_price, vat_refundable, vat_rate,
			 equipment, stereo_text, wheel_size_text, tech_check, inspection_valid_until,
			 images, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		car.UserID, car.BrandID, car.ModelID, car.YearID, car.DriveTypeID,
		car.VehicleType, car.BodyType, car.Category, car.FuelType, car.Transmission, car.Color,
		car.Mileage, car.Power, car.Displacement, car.Seats, car.Doors, car.VIN, car.PlateNumber,
		car.Description, car.EquipmentText, car.AdditionalInfo,
		car.Price, car.DiscountPrice, car.VatRefundable, car.VatRate,
		car.Equipment, car.StereoText, car.WheelSizeText, car.TechCheck, car.InspectionValidUntil,
		encodeImages(car.Images), car.Status,
	)
	if err != nil {
		return models.Car{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Car{}, err
	}
	car.ID = int(id)
	return car, nil
}

func (r *CarRepository) GetCarByID(ctx context.Context, id, userID int) (models.Car, error) {
	query := `SELECT ` + carColumns + `,
		u.id, u.name, u.phone,
		(SELECT COUNT(*) FROM car_favorites cf WHERE cf.car_id = c.id),
		CASE WHEN mf.car_id IS NOT NULL THEN 1 ELSE 0 END AS liked
		` + carJoins + `
		JOIN users u ON c.user_id = u.id
		LEFT JOIN car_favorites mf ON mf.car_id = c.id AND mf.user_id = ?
		WHERE c.id = ?`

	var (
		c          models.Car
		discount   sql.NullFloat64
		imagesJSON sql.NullString
		liked      int
	)
	err := r.DB.QueryRowContext(ctx, query, userID, id).Scan(
		&c.ID, &c.UserID, &c.BrandID, &c.ModelID, &c.YearID, &c.DriveTypeID,
		&c.BrandName, &c.ModelName, &c.Year, &c.DriveType,
		&c.VehicleType, &c.BodyType, &c.Category, &c.FuelType, &c.Transmission, &c.Color,
		&c.Mileage, &c.Power, &c.Displacement, &c.Seats, &c.Doors, &c.VIN, &c.PlateNumber,
		&c.Description, &c.EquipmentText, &c.AdditionalInfo,
		&c.Price, &discount, &c.VatRefundable, &c.VatRate,
		&c.Equipment, &c.StereoText, &c.WheelSizeText, &c.TechCheck, &c.InspectionValidUntil,
		&imagesJSON, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		&c.User.ID, &c.User.Name, &c.User.Phone,
		&c.FavoriteCount, &liked,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Car{}, ErrCarNotFound
	}
	if err != nil {
		return models.Car{}, err
	}
	if discount.Valid {
		c.DiscountPrice = &discount.Float64
	}
	c.Images = decodeImages(imagesJSON)
	c.Liked = liked == 1
	return c, nil
}

// GetCarForEdit returns the listing only when it belongs to the caller so
// an edit URL for someone else's listing behaves like a missing one.
func (r *CarRepository) GetCarForEdit(ctx context.Context, id, ownerID int) (models.Car, error) {
	query := `SELECT ` + carColumns + carJoins + `
		WHERE c.id = ? AND c.user_id = ?`
	car, err := scanCar(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Car{}, ErrCarNotFound
	}
	if err != nil {
		return models.Car{}, err
	}
	return car, nil
}

func (r *CarRepository) UpdateCar(ctx context.Context, car models.Car) (models.Car, error) {
	query := `
		UPDATE cars
		SET brand_id = ?, model_id = ?, year_id = ?, drive_type_id = ?,
			vehicle_type = ?, body_type = ?, category = ?, fuel_type = ?, transmission = ?, color = ?,
			mileage = ?, power = ?, displacement = ?, seats = ?, doors = ?, vin = ?, plate_number = ?,
			description = ?, equipment_text = ?, additional_info = ?,
			price = ?, discount_price = ?, vat_refundable = ?, vat_rate = ?,
			equipment = ?, stereo_text = ?, wheel_size_text = ?, tech_check = ?, inspection_valid_until = ?,
			images = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	updatedAt := time.Now()
	car.UpdatedAt = &updatedAt
	result, err := r.DB.ExecContext(ctx, query,
		car.BrandID, car.ModelID, car.YearID, car.DriveTypeID,
		car.VehicleType, car.BodyType, car.Category, car.FuelType, car.Transmission, car.Color,
		car.Mileage, car.Power, car.Displacement, car.Seats, car.Doors, car.VIN, car.PlateNumber,
		car.Description, car.EquipmentText, car.AdditionalInfo,
		car.Price, car.DiscountPrice, car.VatRefundable, car.VatRate,
		car.Equipment, car.StereoText, car.WheelSizeText, car.TechCheck, car.InspectionValidUntil,
		encodeImages(car.Images), car.Status, car.UpdatedAt,
		car.ID, car.UserID,
	)
	if err != nil {
		return models.Car{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Car{}, err
	}
	if rowsAffected == 0 {
		return models.Car{}, ErrCarNotFound
	}
	return r.GetCarForEdit(ctx, car.ID, car.UserID)
}

func (r *CarRepository) DeleteCar(ctx context.Context, id, ownerID int) ([]models.CarImage, error) {
	var imagesJSON sql.NullString
	err := r.DB.QueryRowContext(ctx, `SELECT images FROM cars WHERE id = ? AND user_id = ?`, id, ownerID).Scan(&imagesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, err
	}

	result, err := r.DB.ExecContext(ctx, `DELETE FROM cars WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrCarNotFound
	}
	return decodeImages(imagesJSON), nil
}

func (r *CarRepository) SetStatus(ctx context.Context, id int, status string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE cars SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCarNotFound
	}
	return nil
}

func (r *CarRepository) GetCarsByUserID(ctx context.Context, userID int) ([]models.Car, error) {
	query := `SELECT ` + carColumns + carJoins + `
		WHERE c.user_id = ?
		ORDER BY c.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cars by user rows error: %w", err)
	}
	return cars, nil
}

// GetFilteredCars builds the search query from the sparse filter in the
// conditions/params style used across the repositories. An empty filter
// yields the whole approved set.
func (r *CarRepository) GetFilteredCars(ctx context.Context, filter models.CarFilterRequest, userID int) (models.CarListResult, error) {
	var (
		params     []interface{}
		conditions []string
	)

	query := `SELECT ` + carColumns + `,
		CASE WHEN mf.car_id IS NOT NULL THEN 1 ELSE 0 END AS liked
		` + carJoins + `
		LEFT JOIN car_favorites mf ON mf.car_id = c.id AND mf.user_id = ?`
	params = append(params, userID)

	conditions = append(conditions, "c.status = ?")
	params = append(params, models.CarStatusApproved)

	if filter.BrandID > 0 {
		conditions = append(conditions, "c.brand_id = ?")
		params = append(params, filter.BrandID)
	}
	if filter.ModelID > 0 {
		conditions = append(conditions, "c.model_id = ?")
		params = append(params, filter.ModelID)
	}
	if filter.YearID > 0 {
		conditions = append(conditions, "c.year_id = ?")
		params = append(params, filter.YearID)
	}
	if filter.DriveTypeID > 0 {
		conditions = append(conditions, "c.drive_type_id = ?")
		params = append(params, filter.DriveTypeID)
	}
	if filter.VehicleType != "" {
		conditions = append(conditions, "c.vehicle_type = ?")
		params = append(params, filter.VehicleType)
	}
	if filter.BodyType != "" {
		conditions = append(conditions, "c.body_type = ?")
		params = append(params, filter.BodyType)
	}
	if filter.Category != "" {
		conditions = append(conditions, "c.category = ?")
		params = append(params, filter.Category)
	}
	if filter.PriceMin > 0 {
		conditions = append(conditions, "c.price >= ?")
		params = append(params, filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		conditions = append(conditions, "c.price <= ?")
		params = append(params, filter.PriceMax)
	}
	if filter.YearMin > 0 {
		conditions = append(conditions, "y.value >= ?")
		params = append(params, filter.YearMin)
	}
	if filter.YearMax > 0 {
		conditions = append(conditions, "y.value <= ?")
		params = append(params, filter.YearMax)
	}
	if filter.MileageMin > 0 {
		conditions = append(conditions, "c.mileage >= ?")
		params = append(params, filter.MileageMin)
	}
	if filter.MileageMax > 0 {
		conditions = append(conditions, "c.mileage <= ?")
		params = append(params, filter.MileageMax)
	}
	if filter.PowerMin > 0 {
		conditions = append(conditions, "c.power >= ?")
		params = append(params, filter.PowerMin)
	}
	if filter.PowerMax > 0 {
		conditions = append(conditions, "c.power <= ?")
		params = append(params, filter.PowerMax)
	}
	if len(filter.FuelTypes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.FuelTypes)), ",")
		conditions = append(conditions, fmt.Sprintf("c.fuel_type IN (%s)", placeholders))
		for _, ft := range filter.FuelTypes {
			params = append(params, ft)
		}
	}
	if len(filter.Transmissions) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Transmissions)), ",")
		conditions = append(conditions, fmt.Sprintf("c.transmission IN (%s)", placeholders))
		for _, tr := range filter.Transmissions {
			params = append(params, tr)
		}
	}
	if len(filter.Colors) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Colors)), ",")
		conditions = append(conditions, fmt.Sprintf("c.color IN (%s)", placeholders))
		for _, col := range filter.Colors {
			params = append(params, col)
		}
	}
	if filter.VatRefundable {
		conditions = append(conditions, "c.vat_refundable IN ('jah', 'yes')")
	}

	query += " WHERE " + strings.Join(conditions, " AND ")

	switch filter.SortOption {
	case 1:
		query += ` ORDER BY c.price ASC`
	case 2:
		query += ` ORDER BY c.price DESC`
	case 3:
		query += ` ORDER BY c.mileage ASC`
	default:
		query += ` ORDER BY c.created_at DESC`
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	query += " LIMIT ? OFFSET ?"
	params = append(params, limit, (page-1)*limit)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return models.CarListResult{}, err
	}
	defer rows.Close()

	var cars []models.Car
	for rows.Next() {
		var (
			c          models.Car
			discount   sql.NullFloat64
			imagesJSON sql.NullString
			liked      int
		)
		err := rows.Scan(
			&c.ID, &c.UserID, &c.BrandID, &c.ModelID, &c.YearID, &c.DriveTypeID,
			&c.BrandName, &c.ModelName, &c.Year, &c.DriveType,
			&c.VehicleType, &c.BodyType, &c.Category, &c.FuelType, &c.Transmission, &c.Color,
			&c.Mileage, &c.Power, &c.Displacement, &c.Seats, &c.Doors, &c.VIN, &c.PlateNumber,
			&c.Description, &c.EquipmentText, &c.AdditionalInfo,
			&c.Price, &discount, &c.VatRefundable, &c.VatRate,
			&c.Equipment, &c.StereoText, &c.WheelSizeText, &c.TechCheck, &c.InspectionValidUntil,
			&imagesJSON, &c.Status, &c.CreatedAt, &c.UpdatedAt,
			&liked,
		)
		if err != nil {
			return models.CarListResult{}, err
		}
		if discount.Valid {
			c.DiscountPrice = &discount.Float64
		}
		c.Images = decodeImages(imagesJSON)
		c.Liked = liked == 1
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return models.CarListResult{}, fmt.Errorf("filtered cars rows error: %w", err)
	}

	result := models.CarListResult{Cars: cars, Page: page, Limit: limit}

	countQuery := `SELECT COUNT(*)` + carJoins + ` WHERE ` + strings.Join(conditions, " AND ")
	// params[0] is the favorites join argument, not a WHERE condition.
	if err := r.DB.QueryRowContext(ctx, countQuery, params[1:len(params)-2]...).Scan(&result.Total); err != nil {
		return result, nil
	}
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(MIN(price), 0), COALESCE(MAX(price), 0) FROM cars WHERE status = ?`,
		models.CarStatusApproved,
	).Scan(&result.MinPrice, &result.MaxPrice); err != nil {
		return result, nil
	}
	return result, nil
}
