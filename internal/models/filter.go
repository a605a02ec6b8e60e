package models

import (
	"net/url"
	"strconv"
	"strings"
)

// CarFilterRequest is the sparse filter record the search endpoints accept.
// Zero values mean "not filtered". It round-trips through the query string:
// ParseCarFilter(f.Values()) is equivalent to f.
type CarFilterRequest struct {
	BrandID     int `json:"brand_id"`
	ModelID     int `json:"model_id"`
	YearID      int `json:"year_id"`
	DriveTypeID int `json:"drive_type_id"`

	VehicleType string `json:"vehicle_type"`
	BodyType    string `json:"body_type"`
	Category    string `json:"category"`

	PriceMin   float64 `json:"price_min"`
	PriceMax   float64 `json:"price_max"`
	YearMin    int     `json:"year_min"`
	YearMax    int     `json:"year_max"`
	MileageMin int     `json:"mileage_min"`
	MileageMax int     `json:"mileage_max"`
	PowerMin   int     `json:"power_min"`
	PowerMax   int     `json:"power_max"`

	FuelTypes     []string `json:"fuel_types"`
	Transmissions []string `json:"transmissions"`
	Colors        []string `json:"colors"`

	VatRefundable bool `json:"vat_refundable"`

	SortOption int `json:"sort"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// ParseCarFilter reads the filter from query parameters. Malformed numbers
// degrade to "not filtered" rather than erroring, matching how the rest of
// the read path treats bad input.
func ParseCarFilter(q url.Values) CarFilterRequest {
	f := CarFilterRequest{
		BrandID:     atoiOrZero(q.Get("brand_id")),
		ModelID:     atoiOrZero(q.Get("model_id")),
		YearID:      atoiOrZero(q.Get("year_id")),
		DriveTypeID: atoiOrZero(q.Get("drive_type_id")),

		VehicleType: q.Get("vehicle_type"),
		BodyType:    q.Get("body_type"),
		Category:    q.Get("category"),

		PriceMin:   atofOrZero(q.Get("price_min")),
		PriceMax:   atofOrZero(q.Get("price_max")),
		YearMin:    atoiOrZero(q.Get("year_min")),
		YearMax:    atoiOrZero(q.Get("year_max")),
		MileageMin: atoiOrZero(q.Get("mileage_min")),
		MileageMax: atoiOrZero(q.Get("mileage_max")),
		PowerMin:   atoiOrZero(q.Get("power_min")),
		PowerMax:   atoiOrZero(q.Get("power_max")),

		FuelTypes:     splitCSV(q.Get("fuel_types")),
		Transmissions: splitCSV(q.Get("transmissions")),
		Colors:        splitCSV(q.Get("colors")),

		VatRefundable: q.Get("vat_refundable") == "true",

		SortOption: atoiOrZero(q.Get("sort")),
		Page:       atoiOrZero(q.Get("page")),
		Limit:      atoiOrZero(q.Get("limit")),
	}
	return f
}

// Values serializes the filter back to query parameters, emitting only the
// fields that are set.
func (f CarFilterRequest) Values() url.Values {
	q := url.Values{}
	setInt := func(key string, v int) {
		if v != 0 {
			q.Set(key, strconv.Itoa(v))
		}
	}
	setFloat := func(key string, v float64) {
		if v != 0 {
			q.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	setString := func(key, v string) {
		if v != "" {
			q.Set(key, v)
		}
	}

	setInt("brand_id", f.BrandID)
	setInt("model_id", f.ModelID)
	setInt("year_id", f.YearID)
	setInt("drive_type_id", f.DriveTypeID)

	setString("vehicle_type", f.VehicleType)
	setString("body_type", f.BodyType)
	setString("category", f.Category)

	setFloat("price_min", f.PriceMin)
	setFloat("price_max", f.PriceMax)
	setInt("year_min", f.YearMin)
	setInt("year_max", f.YearMax)
	setInt("mileage_min", f.MileageMin)
	setInt("mileage_max", f.MileageMax)
	setInt("power_min", f.PowerMin)
	setInt("power_max", f.PowerMax)

	setString("fuel_types", strings.Join(f.FuelTypes, ","))
	setString("transmissions", strings.Join(f.Transmissions, ","))
	setString("colors", strings.Join(f.Colors, ","))

	if f.VatRefundable {
		q.Set("vat_refundable", "true")
	}

	setInt("sort", f.SortOption)
	setInt("page", f.Page)
	setInt("limit", f.Limit)
	return q
}

// IsEmpty reports whether no predicate is set, in which case the search
// falls back to the unfiltered approved set.
func (f CarFilterRequest) IsEmpty() bool {
	noPaging := f
	noPaging.SortOption = 0
	noPaging.Page = 0
	noPaging.Limit = 0
	empty := CarFilterRequest{}
	if noPaging.BrandID != empty.BrandID || noPaging.ModelID != empty.ModelID ||
		noPaging.YearID != empty.YearID || noPaging.DriveTypeID != empty.DriveTypeID {
		return false
	}
	if noPaging.VehicleType != "" || noPaging.BodyType != "" || noPaging.Category != "" {
		return false
	}
	if noPaging.PriceMin != 0 || noPaging.PriceMax != 0 || noPaging.YearMin != 0 ||
		noPaging.YearMax != 0 || noPaging.MileageMin != 0 || noPaging.MileageMax != 0 ||
		noPaging.PowerMin != 0 || noPaging.PowerMax != 0 {
		return false
	}
	if len(noPaging.FuelTypes) > 0 || len(noPaging.Transmissions) > 0 || len(noPaging.Colors) > 0 {
		return false
	}
	return !noPaging.VatRefundable
}

func atoiOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func atofOrZero(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
