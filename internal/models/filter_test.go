package models

import (
	"reflect"
	"testing"
)

func TestCarFilterRoundTrip(t *testing.T) {
	f := CarFilterRequest{
		BrandID:       5,
		PriceMin:      1000,
		PriceMax:      25000,
		YearMin:       2018,
		FuelTypes:     []string{"diesel", "hybrid"},
		VatRefundable: true,
		SortOption:    1,
		Page:          2,
		Limit:         24,
	}

	parsed := ParseCarFilter(f.Values())
	if !reflect.DeepEqual(parsed, f) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", parsed, f)
	}
}

func TestParseCarFilterMalformedNumbers(t *testing.T) {
	f := CarFilterRequest{BrandID: 3}
	q := f.Values()
	q.Set("price_min", "not-a-number")
	q.Set("year_min", "")

	parsed := ParseCarFilter(q)
	if parsed.PriceMin != 0 || parsed.YearMin != 0 {
		t.Errorf("malformed numbers should degrade to zero: %+v", parsed)
	}
	if parsed.BrandID != 3 {
		t.Errorf("valid field lost: %+v", parsed)
	}
}

func TestIsEmpty(t *testing.T) {
	empty := CarFilterRequest{Page: 3, Limit: 20, SortOption: 1}
	if !empty.IsEmpty() {
		t.Errorf("paging and sort alone should count as empty")
	}

	notEmpty := CarFilterRequest{VatRefundable: true}
	if notEmpty.IsEmpty() {
		t.Errorf("vat_refundable should count as a predicate")
	}
}
