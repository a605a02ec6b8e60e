package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"motorsonline/internal/models"
)

func TestReorderPreservesSlots(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()

	for i := 0; i < 5; i++ {
		if err := d.SetPhoto(i, []byte{byte(i + 1)}, "p.jpg", "image/jpeg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := d.Reorder(0, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{2, 3, 4, 1, 5}
	for i, b := range want {
		if len(d.Photos[i].Data) != 1 || d.Photos[i].Data[0] != b {
			t.Errorf("slot %d: got %v, want [%d]", i, d.Photos[i].Data, b)
		}
	}

	filled := 0
	for _, slot := range d.Photos {
		if !slot.Empty() {
			filled++
		}
	}
	if filled != 5 {
		t.Errorf("filled slots changed: got %d, want 5", filled)
	}
}

func TestReorderSelfIsNoOp(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()
	if err := d.SetPhoto(2, []byte{9}, "p.jpg", "image/jpeg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.Reorder(2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Photos[2].Data[0] != 9 {
		t.Errorf("slot 2 changed on self reorder")
	}
}

func TestReorderBackwardShiftsBetween(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()
	for i := 0; i < 4; i++ {
		if err := d.SetPhoto(i, []byte{byte(i + 1)}, "p.jpg", "image/jpeg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := d.Reorder(3, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{1, 4, 2, 3}
	for i, b := range want {
		if d.Photos[i].Data[0] != b {
			t.Errorf("slot %d: got %d, want %d", i, d.Photos[i].Data[0], b)
		}
	}
}

func TestSetBrandClearsModelAndFetchesOnce(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/brands/7/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fetches++
		json.NewEncoder(w).Encode([]models.CarModel{{ID: 1, BrandID: 7, Name: "Octavia"}})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	d := c.NewDraft()
	d.Car.ModelID = 42

	list, err := d.SetBrand(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Car.ModelID != 0 {
		t.Errorf("model not cleared: %d", d.Car.ModelID)
	}
	if fetches != 1 {
		t.Errorf("model list fetched %d times, want 1", fetches)
	}
	if len(list) != 1 || list[0].Name != "Octavia" {
		t.Errorf("unexpected model list: %+v", list)
	}
}

func TestRemovePhotoTracksStoredRefs(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()
	d.ID = 5
	d.state = StateEditing
	d.Photos[0] = PhotoSlot{Ref: &models.CarImage{Path: "/images/cars/a.jpg"}}

	if err := d.RemovePhoto(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paths := d.RemovedPaths()
	if len(paths) != 1 || paths[0] != "/images/cars/a.jpg" {
		t.Errorf("removed paths: %v", paths)
	}

	// Refilling the slot un-tracks the removal.
	if err := d.SetPhoto(0, []byte{1}, "b.jpg", "image/jpeg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.RemovedPaths()) != 0 {
		t.Errorf("removal still tracked after refill: %v", d.RemovedPaths())
	}
}

func TestRemovePhotoLocalOnlyNotTracked(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()
	if err := d.SetPhoto(0, []byte{1}, "a.jpg", "image/jpeg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.RemovePhoto(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.RemovedPaths()) != 0 {
		t.Errorf("local-only photo tracked as removed: %v", d.RemovedPaths())
	}
}

func TestSubmitInvalidDraftMakesNoNetworkCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	d := c.NewDraft()
	d.Car.ModelID = 1
	d.Car.YearID = 1
	d.Car.DriveTypeID = 1
	// brand missing

	_, err := d.Submit(context.Background())
	if !errors.Is(err, models.ErrMissingRequired) {
		t.Fatalf("want ErrMissingRequired, got %v", err)
	}
	if calls != 0 {
		t.Errorf("network calls made: %d, want 0", calls)
	}
	if d.State() != StateNew {
		t.Errorf("state changed on validation failure: %s", d.State())
	}
}

func TestToggleEquipmentClearsSubValue(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()

	if err := d.ToggleEquipment(models.EquipmentStereo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.Car.StereoText = "Bose"

	if err := d.ToggleEquipment(models.EquipmentStereo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Equipment[models.EquipmentStereo] {
		t.Errorf("flag still on after second toggle")
	}
	if d.Car.StereoText != "" {
		t.Errorf("sub-value not cleared: %q", d.Car.StereoText)
	}
}

func TestToggleUnknownFlag(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()
	if err := d.ToggleEquipment("flux_capacitor"); !errors.Is(err, ErrUnknownFlag) {
		t.Fatalf("want ErrUnknownFlag, got %v", err)
	}
}

func TestDraftTransitions(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()

	if err := d.OpenPreview(); err != nil {
		t.Fatalf("new -> preview: %v", err)
	}
	if err := d.ClosePreview(); err != nil {
		t.Fatalf("preview -> new: %v", err)
	}
	if err := d.ClosePreview(); !errors.Is(err, ErrBadTransition) {
		t.Fatalf("closing a closed preview: want ErrBadTransition, got %v", err)
	}
}

func TestVatSplit(t *testing.T) {
	c := New("http://unused", nil)
	d := c.NewDraft()
	d.BasePrice = 1000
	d.Car.VatRate = 24
	d.Car.VatRefundable = "jah"

	vat, total := d.VatSplit()
	if vat != 240 || total != 1240 {
		t.Errorf("VatSplit: vat=%v total=%v, want 240/1240", vat, total)
	}

	d.Car.VatRefundable = "ei"
	vat, total = d.VatSplit()
	if vat != 0 || total != 1000 {
		t.Errorf("non-refundable: vat=%v total=%v, want 0/1000", vat, total)
	}
}

func TestLoadForEditNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Car not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	d := c.NewDraft()
	if err := d.LoadForEdit(context.Background(), 99); !errors.Is(err, ErrListingGone) {
		t.Fatalf("want ErrListingGone, got %v", err)
	}
	if d.State() != StateFailed {
		t.Errorf("state: got %s, want %s", d.State(), StateFailed)
	}
}
