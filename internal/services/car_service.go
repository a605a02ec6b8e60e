package services

import (
	"context"

	"motorsonline/internal/models"
	"motorsonline/internal/pricing"
	"motorsonline/internal/repositories"
)

type CarService struct {
	CarRepo       *repositories.CarRepository
	ReferenceRepo *repositories.ReferenceRepository
}

// validateDraft enforces the one precondition a listing must meet before any
// write: the four reference selections are present and consistent.
func (s *CarService) validateDraft(ctx context.Context, car models.Car) error {
	if car.BrandID <= 0 || car.ModelID <= 0 || car.YearID <= 0 || car.DriveTypeID <= 0 {
		return models.ErrMissingRequired
	}
	return s.ReferenceRepo.ValidateCarRefs(ctx, car.BrandID, car.ModelID, car.YearID, car.DriveTypeID)
}

// normalize applies the pricing and flag rules shared by create and update.
// The incoming price is the VAT-exclusive base the seller typed; the stored
// price is the VAT-inclusive total.
func normalize(car models.Car) models.Car {
	if car.VatRate == 0 {
		car.VatRate = pricing.DefaultVatRate
	}
	refundable := pricing.Refundable(car.VatRefundable)
	_, total := pricing.Split(car.Price, car.VatRate, refundable)
	car.Price = total

	if car.DiscountPrice != nil {
		_, discounted := pricing.Split(*car.DiscountPrice, car.VatRate, refundable)
		car.DiscountPrice = &discounted
	}

	// Sub-values only exist while their gating flag is on.
	equipment := models.DecodeFlagCSV(models.EquipmentKeys, car.Equipment)
	if !equipment[models.EquipmentStereo] {
		car.StereoText = ""
	}
	if !equipment[models.EquipmentAlloyWheels] {
		car.WheelSizeText = ""
	}
	car.Equipment = models.EncodeFlagCSV(models.EquipmentKeys, equipment)

	techCheck := models.DecodeFlagCSV(models.TechCheckKeys, car.TechCheck)
	if !techCheck[models.TechCheckInspectionValid] {
		car.InspectionValidUntil = ""
	}
	car.TechCheck = models.EncodeFlagCSV(models.TechCheckKeys, techCheck)

	if len(car.Images) > models.MaxCarImages {
		car.Images = car.Images[:models.MaxCarImages]
	}
	for i := range car.Images {
		car.Images[i].Position = i
	}
	return car
}

func (s *CarService) CreateCar(ctx context.Context, car models.Car) (models.Car, error) {
	if err := s.validateDraft(ctx, car); err != nil {
		return models.Car{}, err
	}
	car = normalize(car)
	car.Status = models.CarStatusPending
	return s.CarRepo.CreateCar(ctx, car)
}

// UpdateCar reconciles the final image set against what is stored and
// returns the updated listing plus the stored image paths that became
// orphaned, so the caller can delete the files.
func (s *CarService) UpdateCar(ctx context.Context, car models.Car, retained, added []models.CarImage, removed []string) (models.Car, []string, error) {
	stored, err := s.CarRepo.GetCarForEdit(ctx, car.ID, car.UserID)
	if err != nil {
		return models.Car{}, nil, err
	}
	if err := s.validateDraft(ctx, car); err != nil {
		return models.Car{}, nil, err
	}

	final, orphaned := ReconcileImages(stored.Images, retained, added, removed)
	car.Images = final
	car = normalize(car)
	car.Status = stored.Status
	car.CreatedAt = stored.CreatedAt

	updated, err := s.CarRepo.UpdateCar(ctx, car)
	if err != nil {
		return models.Car{}, nil, err
	}
	return updated, orphaned, nil
}

// ReconcileImages merges the retained subset of stored photos with newly
// uploaded ones, preserving the order the client sent. A stored photo absent
// from the retained list was cleared during the edit; its path is reported
// back for deletion. The removed list carries the paths the client cleared
// explicitly: an explicit removal wins over a stale retained reference to
// the same path. Re-adding a previously cleared path keeps the file alive.
func ReconcileImages(stored, retained, added []models.CarImage, removed []string) ([]models.CarImage, []string) {
	dropped := make(map[string]struct{}, len(removed))
	for _, path := range removed {
		dropped[path] = struct{}{}
	}

	keep := make(map[string]struct{}, len(retained))
	kept := make([]models.CarImage, 0, len(retained))
	for _, img := range retained {
		if _, ok := dropped[img.Path]; ok {
			continue
		}
		keep[img.Path] = struct{}{}
		kept = append(kept, img)
	}

	var orphaned []string
	for _, img := range stored {
		if _, ok := keep[img.Path]; !ok {
			orphaned = append(orphaned, img.Path)
		}
	}

	final := make([]models.CarImage, 0, len(kept)+len(added))
	final = append(final, kept...)
	final = append(final, added...)
	if len(final) > models.MaxCarImages {
		final = final[:models.MaxCarImages]
	}
	for i := range final {
		final[i].Position = i
	}
	return final, orphaned
}

// GetCarDetail returns the public view of one listing. Pending and archived
// listings are visible to their owner only.
func (s *CarService) GetCarDetail(ctx context.Context, id, viewerID int) (models.CarDetail, error) {
	car, err := s.CarRepo.GetCarByID(ctx, id, viewerID)
	if err != nil {
		return models.CarDetail{}, err
	}
	if car.Status != models.CarStatusApproved && car.UserID != viewerID {
		return models.CarDetail{}, repositories.ErrCarNotFound
	}

	refundable := pricing.Refundable(car.VatRefundable)
	base := pricing.BaseFromTotal(car.Price, car.VatRate, refundable)
	return models.CarDetail{
		Car: car,
		Vat: models.VatBreakdown{
			BasePrice:  base,
			VatAmount:  car.Price - base,
			VatRate:    car.VatRate,
			Total:      car.Price,
			Refundable: refundable,
		},
	}, nil
}

// GetCarForEdit rehydrates the listing into form shape: VAT-exclusive base
// price and flag CSVs expanded against the catalogs.
func (s *CarService) GetCarForEdit(ctx context.Context, id, ownerID int) (models.CarEditPayload, error) {
	car, err := s.CarRepo.GetCarForEdit(ctx, id, ownerID)
	if err != nil {
		return models.CarEditPayload{}, err
	}

	refundable := pricing.Refundable(car.VatRefundable)
	return models.CarEditPayload{
		Car:            car,
		BasePrice:      pricing.BaseFromTotal(car.Price, car.VatRate, refundable),
		EquipmentFlags: models.DecodeFlagCSV(models.EquipmentKeys, car.Equipment),
		TechCheckFlags: models.DecodeFlagCSV(models.TechCheckKeys, car.TechCheck),
	}, nil
}

func (s *CarService) DeleteCar(ctx context.Context, id, ownerID int) ([]models.CarImage, error) {
	return s.CarRepo.DeleteCar(ctx, id, ownerID)
}

func (s *CarService) ApproveCar(ctx context.Context, id int) error {
	return s.CarRepo.SetStatus(ctx, id, models.CarStatusApproved)
}

func (s *CarService) GetApprovedCars(ctx context.Context, page, limit int) (models.CarListResult, error) {
	return s.CarRepo.GetFilteredCars(ctx, models.CarFilterRequest{Page: page, Limit: limit}, 0)
}

func (s *CarService) GetFilteredCars(ctx context.Context, filter models.CarFilterRequest, viewerID int) (models.CarListResult, error) {
	return s.CarRepo.GetFilteredCars(ctx, filter, viewerID)
}

func (s *CarService) GetCarsByUserID(ctx context.Context, userID int) ([]models.Car, error) {
	return s.CarRepo.GetCarsByUserID(ctx, userID)
}
