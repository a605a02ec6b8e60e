package models

import (
	"time"
)

// Car listing statuses.
const (
	CarStatusPending  = "pending"
	CarStatusApproved = "approved"
	CarStatusArchived = "archived"
)

// MaxCarImages is the fixed capacity of the listing photo sequence.
const MaxCarImages = 40

type CarImage struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Position int    `json:"position"`
}

type Car struct {
	ID     int  `json:"id"`
	UserID int  `json:"user_id"`
	User   User `json:"user,omitempty"`

	BrandID     int    `json:"brand_id"`
	ModelID     int    `json:"model_id"`
	YearID      int    `json:"year_id"`
	DriveTypeID int    `json:"drive_type_id"`
	BrandName   string `json:"brand_name,omitempty"`
	ModelName   string `json:"model_name,omitempty"`
	Year        int    `json:"year,omitempty"`
	DriveType   string `json:"drive_type,omitempty"`

	VehicleType  string `json:"vehicle_type"`
	BodyType     string `json:"body_type"`
	Category     string `json:"category"`
	FuelType     string `json:"fuel_type"`
	Transmission string `json:"transmission"`
	Color        string `json:"color"`

	Mileage      int    `json:"mileage"`
	Power        int    `json:"power"`
	Displacement int    `json:"displacement"`
	Seats        int    `json:"seats"`
	Doors        int    `json:"doors"`
	VIN          string `json:"vin,omitempty"`
	PlateNumber  string `json:"plate_number,omitempty"`

	Description    string `json:"description"`
	EquipmentText  string `json:"equipment_text"`
	AdditionalInfo string `json:"additional_info"`

	// Price is the stored VAT-inclusive total. The VAT-exclusive base the
	// seller edits is derived, never stored.
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	VatRefundable string   `json:"vat_refundable"`
	VatRate       float64  `json:"vat_rate"`

	// Equipment and TechCheck hold the enabled flag keys as CSV.
	Equipment            string `json:"equipment"`
	StereoText           string `json:"stereo_text,omitempty"`
	WheelSizeText        string `json:"wheel_size_text,omitempty"`
	TechCheck            string `json:"tech_check"`
	InspectionValidUntil string `json:"inspection_valid_until,omitempty"`

	Images []CarImage `json:"images"`

	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	FavoriteCount int   `json:"favorite_count,omitempty"`
	ViewCount     int64 `json:"view_count,omitempty"`
	Liked         bool  `json:"liked,omitempty"`
}

// VatBreakdown is attached to public detail responses so clients never
// re-derive tax locally.
type VatBreakdown struct {
	BasePrice  float64 `json:"base_price"`
	VatAmount  float64 `json:"vat_amount"`
	VatRate    float64 `json:"vat_rate"`
	Total      float64 `json:"total"`
	Refundable bool    `json:"refundable"`
}

// CarDetail is the public single-listing response.
type CarDetail struct {
	Car
	Vat VatBreakdown `json:"vat"`
}

// CarEditPayload is returned to the owner when a listing is opened for
// editing: the price field carries the back-computed VAT-exclusive base and
// the flag CSVs are expanded against the catalogs.
type CarEditPayload struct {
	Car
	BasePrice      float64         `json:"base_price"`
	EquipmentFlags map[string]bool `json:"equipment_flags"`
	TechCheckFlags map[string]bool `json:"tech_check_flags"`
}

// CarListResult is the paginated listing page.
type CarListResult struct {
	Cars     []Car   `json:"cars"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}
