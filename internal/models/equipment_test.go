package models

import (
	"reflect"
	"testing"
)

func TestEncodeFlagCSVCatalogOrder(t *testing.T) {
	enabled := map[string]bool{
		"winter_tires": true,
		"abs":          true,
		"stereo":       true,
	}
	got := EncodeFlagCSV(EquipmentKeys, enabled)
	want := "abs,stereo,winter_tires"
	if got != want {
		t.Errorf("EncodeFlagCSV: %q, want %q", got, want)
	}
}

func TestDecodeFlagCSVDropsUnknownKeys(t *testing.T) {
	got := DecodeFlagCSV(EquipmentKeys, "abs, flux_capacitor ,stereo,")
	if !got["abs"] || !got["stereo"] {
		t.Errorf("known keys lost: %v", got)
	}
	if got["flux_capacitor"] {
		t.Errorf("unknown key kept: %v", got)
	}
}

func TestFlagCSVRoundTrip(t *testing.T) {
	enabled := map[string]bool{
		TechCheckInspectionValid: true,
		"service_book":           true,
	}
	csv := EncodeFlagCSV(TechCheckKeys, enabled)
	back := DecodeFlagCSV(TechCheckKeys, csv)

	want := map[string]bool{TechCheckInspectionValid: true, "service_book": true}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("round trip: %v, want %v", back, want)
	}
}

func TestIsEquipmentKey(t *testing.T) {
	if !IsEquipmentKey(EquipmentStereo) {
		t.Errorf("stereo should be an equipment key")
	}
	if IsEquipmentKey(TechCheckInspectionValid) {
		t.Errorf("tech check key accepted as equipment")
	}
}
