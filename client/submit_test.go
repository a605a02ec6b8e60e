package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"motorsonline/internal/models"
)

func validDraft(c *Client) *Draft {
	d := c.NewDraft()
	d.Car.BrandID = 1
	d.Car.ModelID = 2
	d.Car.YearID = 3
	d.Car.DriveTypeID = 4
	return d
}

func TestSubmitCreateSendsFormAndContact(t *testing.T) {
	contactSaved := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/cars":
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				t.Fatalf("parse multipart: %v", err)
			}
			if got := r.FormValue("price"); got != "15000" {
				t.Errorf("price field: %q, want 15000", got)
			}
			if got := r.FormValue("equipment"); got != "abs" {
				t.Errorf("equipment CSV: %q, want abs", got)
			}
			if files := r.MultipartForm.File["images"]; len(files) != 1 {
				t.Errorf("image parts: %d, want 1", len(files))
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Car{ID: 77})
		case r.Method == http.MethodPut && r.URL.Path == "/api/contacts/me":
			contactSaved = true
			json.NewEncoder(w).Encode(models.Contact{ID: 1, Phone: "+372 5555"})
		default:
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.SetSession("test-token", models.User{ID: 1})

	d := validDraft(c)
	d.BasePrice = 15000
	if err := d.ToggleEquipment("abs"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := d.SetPhoto(0, []byte{0xff}, "front.jpg", "image/jpeg"); err != nil {
		t.Fatalf("set photo: %v", err)
	}
	d.SetContact(models.Contact{Phone: "+372 5555"})

	car, err := d.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if car.ID != 77 {
		t.Errorf("created id: %d, want 77", car.ID)
	}
	if d.State() != StateDone {
		t.Errorf("state: %s, want %s", d.State(), StateDone)
	}
	if !contactSaved {
		t.Errorf("contact not persisted after create")
	}
	if d.ContactDirty {
		t.Errorf("contact still dirty after save")
	}
}

func TestSubmitContactFailureKeepsListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/cars" {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Car{ID: 8})
			return
		}
		http.Error(w, "contact store down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.SetSession("test-token", models.User{ID: 1})

	d := validDraft(c)
	d.SetContact(models.Contact{Phone: "+372 5555"})

	car, err := d.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit failed though listing create succeeded: %v", err)
	}
	if car.ID != 8 {
		t.Errorf("created id: %d, want 8", car.ID)
	}
	if !d.ContactDirty {
		t.Errorf("contact should stay dirty for a retry")
	}
}

func TestSubmitUpdateSendsRetainedRefs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/cars/5" {
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		refs := r.MultipartForm.Value["existing_images"]
		if len(refs) != 1 {
			t.Fatalf("existing_images: %d entries, want 1", len(refs))
		}
		var img models.CarImage
		if err := json.Unmarshal([]byte(refs[0]), &img); err != nil {
			t.Fatalf("decode ref: %v", err)
		}
		if img.Path != "/images/cars/kept.jpg" {
			t.Errorf("retained path: %q", img.Path)
		}
		removed := r.MultipartForm.Value["removed_images"]
		if len(removed) != 1 || removed[0] != "/images/cars/dropped.jpg" {
			t.Errorf("removed_images: %v, want [/images/cars/dropped.jpg]", removed)
		}
		json.NewEncoder(w).Encode(models.Car{ID: 5})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.SetSession("test-token", models.User{ID: 1})

	d := validDraft(c)
	d.ID = 5
	d.state = StateEditing
	d.Photos[0] = PhotoSlot{Ref: &models.CarImage{Path: "/images/cars/kept.jpg"}}
	d.Photos[1] = PhotoSlot{Ref: &models.CarImage{Path: "/images/cars/dropped.jpg"}}
	if err := d.RemovePhoto(1); err != nil {
		t.Fatalf("remove photo: %v", err)
	}

	if _, err := d.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestSubmitBackendErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "brand, model, year and drive type are required", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.SetSession("test-token", models.User{ID: 1})

	d := validDraft(c)
	_, err := d.Submit(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("want *APIError, got %T", err)
	}
	if apiErr.Message != "brand, model, year and drive type are required" {
		t.Errorf("message not surfaced verbatim: %q", apiErr.Message)
	}
	if d.State() != StateNew {
		t.Errorf("draft should return to %s, got %s", StateNew, d.State())
	}
}
