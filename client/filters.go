package client

import (
	"context"
	"net/url"

	"motorsonline/internal/models"
)

// FilterForm holds the search filter under construction. Setters keep the
// brand/model dependency consistent; Apply serializes to the query string
// the backend parses.
type FilterForm struct {
	c      *Client
	filter models.CarFilterRequest
}

// NewFilterForm starts an empty filter.
func (c *Client) NewFilterForm() *FilterForm {
	return &FilterForm{c: c}
}

func (f *FilterForm) Filter() models.CarFilterRequest {
	return f.filter
}

// SetBrand selects a brand and clears the dependent model selection; no
// other predicate is touched.
func (f *FilterForm) SetBrand(brandID int) {
	f.filter.BrandID = brandID
	f.filter.ModelID = 0
}

func (f *FilterForm) SetModel(modelID int)         { f.filter.ModelID = modelID }
func (f *FilterForm) SetYear(yearID int)           { f.filter.YearID = yearID }
func (f *FilterForm) SetDriveType(driveTypeID int) { f.filter.DriveTypeID = driveTypeID }

func (f *FilterForm) SetVehicleType(v string) { f.filter.VehicleType = v }
func (f *FilterForm) SetBodyType(v string)    { f.filter.BodyType = v }
func (f *FilterForm) SetCategory(v string)    { f.filter.Category = v }

func (f *FilterForm) SetPriceRange(min, max float64) {
	f.filter.PriceMin = min
	f.filter.PriceMax = max
}

func (f *FilterForm) SetYearRange(min, max int) {
	f.filter.YearMin = min
	f.filter.YearMax = max
}

func (f *FilterForm) SetMileageRange(min, max int) {
	f.filter.MileageMin = min
	f.filter.MileageMax = max
}

func (f *FilterForm) SetPowerRange(min, max int) {
	f.filter.PowerMin = min
	f.filter.PowerMax = max
}

// ToggleFuelType adds a fuel type to the multi-select, or removes it when
// already selected.
func (f *FilterForm) ToggleFuelType(v string) {
	f.filter.FuelTypes = toggleValue(f.filter.FuelTypes, v)
}

func (f *FilterForm) ToggleTransmission(v string) {
	f.filter.Transmissions = toggleValue(f.filter.Transmissions, v)
}

func (f *FilterForm) ToggleColor(v string) {
	f.filter.Colors = toggleValue(f.filter.Colors, v)
}

func (f *FilterForm) SetVatRefundable(v bool) { f.filter.VatRefundable = v }
func (f *FilterForm) SetSort(option int)      { f.filter.SortOption = option }

func (f *FilterForm) SetPage(page, limit int) {
	f.filter.Page = page
	f.filter.Limit = limit
}

// Reset clears every predicate. An applied empty filter falls back to the
// unfiltered approved set.
func (f *FilterForm) Reset() {
	f.filter = models.CarFilterRequest{}
}

// Values serializes the filter to query parameters.
func (f *FilterForm) Values() url.Values {
	return f.filter.Values()
}

// Apply runs the search with the current filter.
func (f *FilterForm) Apply(ctx context.Context) (models.CarListResult, error) {
	return f.c.Cars(ctx, f.filter)
}

func toggleValue(values []string, v string) []string {
	for i, existing := range values {
		if existing == v {
			return append(values[:i], values[i+1:]...)
		}
	}
	return append(values, v)
}
