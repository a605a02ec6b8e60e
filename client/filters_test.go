package client

import (
	"reflect"
	"testing"

	"motorsonline/internal/models"
)

func TestFilterQueryRoundTrip(t *testing.T) {
	c := New("http://unused", nil)
	f := c.NewFilterForm()

	f.SetBrand(5)
	f.SetModel(12)
	f.SetPriceRange(1000, 25000)
	f.SetYearRange(2015, 2022)
	f.ToggleFuelType("diesel")
	f.ToggleFuelType("petrol")
	f.SetVatRefundable(true)
	f.SetSort(2)
	f.SetPage(1, 20)

	parsed := models.ParseCarFilter(f.Values())
	if !reflect.DeepEqual(parsed, f.Filter()) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", parsed, f.Filter())
	}
}

func TestSetBrandClearsOnlyModel(t *testing.T) {
	c := New("http://unused", nil)
	f := c.NewFilterForm()

	f.SetBrand(5)
	f.SetModel(12)
	f.SetPriceRange(1000, 0)
	f.ToggleColor("red")

	f.SetBrand(6)

	got := f.Filter()
	if got.ModelID != 0 {
		t.Errorf("model not cleared: %d", got.ModelID)
	}
	if got.BrandID != 6 {
		t.Errorf("brand: got %d, want 6", got.BrandID)
	}
	if got.PriceMin != 1000 || len(got.Colors) != 1 {
		t.Errorf("unrelated predicates changed: %+v", got)
	}
}

func TestToggleArrayValue(t *testing.T) {
	c := New("http://unused", nil)
	f := c.NewFilterForm()

	f.ToggleTransmission("manual")
	f.ToggleTransmission("automatic")
	f.ToggleTransmission("manual")

	got := f.Filter().Transmissions
	if !reflect.DeepEqual(got, []string{"automatic"}) {
		t.Errorf("transmissions: %v, want [automatic]", got)
	}
}

func TestResetYieldsEmptyFilter(t *testing.T) {
	c := New("http://unused", nil)
	f := c.NewFilterForm()

	f.SetBrand(5)
	f.SetPriceRange(100, 200)
	f.Reset()

	if !f.Filter().IsEmpty() {
		t.Errorf("filter not empty after reset: %+v", f.Filter())
	}
	if len(f.Values()) != 0 {
		t.Errorf("values not empty after reset: %v", f.Values())
	}
}
