package repositories

import (
	"context"
	"database/sql"
	"errors"

	"motorsonline/internal/models"
)

type ReferenceRepository struct {
	DB *sql.DB
}

func (r *ReferenceRepository) GetBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *ReferenceRepository) CreateBrand(ctx context.Context, brand models.Brand) (models.Brand, error) {
	result, err := r.DB.ExecContext(ctx, `INSERT INTO brands (name) VALUES (?)`, brand.Name)
	if err != nil {
		return models.Brand{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Brand{}, err
	}
	brand.ID = int(id)
	return brand, nil
}

func (r *ReferenceRepository) UpdateBrand(ctx context.Context, brand models.Brand) (models.Brand, error) {
	var exists int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM brands WHERE id = ?`, brand.ID).Scan(&exists)
	if err != nil {
		return models.Brand{}, err
	}
	if exists == 0 {
		return models.Brand{}, models.ErrBrandNotFound
	}

	_, err = r.DB.ExecContext(ctx, `UPDATE brands SET name = ? WHERE id = ?`, brand.Name, brand.ID)
	if err != nil {
		return models.Brand{}, err
	}
	return brand, nil
}

func (r *ReferenceRepository) DeleteBrand(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrBrandNotFound
	}
	return nil
}

// GetModelsByBrand returns the brand-scoped model list the listing form
// reloads whenever the brand selection changes.
func (r *ReferenceRepository) GetModelsByBrand(ctx context.Context, brandID int) ([]models.CarModel, error) {
	var exists int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM brands WHERE id = ?`, brandID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, models.ErrBrandNotFound
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT id, brand_id, name FROM car_models WHERE brand_id = ? ORDER BY name`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carModels []models.CarModel
	for rows.Next() {
		var m models.CarModel
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name); err != nil {
			return nil, err
		}
		carModels = append(carModels, m)
	}
	return carModels, rows.Err()
}

func (r *ReferenceRepository) CreateModel(ctx context.Context, m models.CarModel) (models.CarModel, error) {
	result, err := r.DB.ExecContext(ctx, `INSERT INTO car_models (brand_id, name) VALUES (?, ?)`, m.BrandID, m.Name)
	if err != nil {
		return models.CarModel{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.CarModel{}, err
	}
	m.ID = int(id)
	return m, nil
}

func (r *ReferenceRepository) UpdateModel(ctx context.Context, m models.CarModel) (models.CarModel, error) {
	var exists int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM car_models WHERE id = ?`, m.ID).Scan(&exists)
	if err != nil {
		return models.CarModel{}, err
	}
	if exists == 0 {
		return models.CarModel{}, models.ErrModelNotFound
	}

	_, err = r.DB.ExecContext(ctx, `UPDATE car_models SET brand_id = ?, name = ? WHERE id = ?`, m.BrandID, m.Name, m.ID)
	if err != nil {
		return models.CarModel{}, err
	}
	return m, nil
}

func (r *ReferenceRepository) DeleteModel(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM car_models WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrModelNotFound
	}
	return nil
}

func (r *ReferenceRepository) GetYears(ctx context.Context) ([]models.Year, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, value FROM years ORDER BY value DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []models.Year
	for rows.Next() {
		var y models.Year
		if err := rows.Scan(&y.ID, &y.Value); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (r *ReferenceRepository) GetDriveTypes(ctx context.Context) ([]models.DriveType, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM drive_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var driveTypes []models.DriveType
	for rows.Next() {
		var dt models.DriveType
		if err := rows.Scan(&dt.ID, &dt.Name); err != nil {
			return nil, err
		}
		driveTypes = append(driveTypes, dt)
	}
	return driveTypes, rows.Err()
}

// ValidateCarRefs confirms that the four required reference selections exist
// and that the model belongs to the brand.
func (r *ReferenceRepository) ValidateCarRefs(ctx context.Context, brandID, modelID, yearID, driveTypeID int) error {
	var modelBrand int
	err := r.DB.QueryRowContext(ctx, `SELECT brand_id FROM car_models WHERE id = ?`, modelID).Scan(&modelBrand)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrModelNotFound
	}
	if err != nil {
		return err
	}
	if modelBrand != brandID {
		return models.ErrModelNotFound
	}

	var count int
	err = r.DB.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM brands WHERE id = ?) + (SELECT COUNT(*) FROM years WHERE id = ?) + (SELECT COUNT(*) FROM drive_types WHERE id = ?)`,
		brandID, yearID, driveTypeID,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count != 3 {
		return models.ErrMissingRequired
	}
	return nil
}
