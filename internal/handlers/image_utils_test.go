package handlers

import (
	"mime/multipart"
	"testing"
)

func formWith(values ...string) *multipart.Form {
	return &multipart.Form{Value: map[string][]string{"existing_images": values}}
}

func TestParseRetainedImagesJSONArray(t *testing.T) {
	form := formWith(`[{"name":"a.jpg","path":"/images/cars/a.jpg","type":"image/jpeg","position":0},
		{"name":"b.jpg","path":"/images/cars/b.jpg","type":"image/jpeg","position":1}]`)

	got := parseRetainedImages(form)
	if len(got) != 2 {
		t.Fatalf("parsed %d images, want 2", len(got))
	}
	if got[0].Path != "/images/cars/a.jpg" || got[1].Path != "/images/cars/b.jpg" {
		t.Errorf("paths: %q, %q", got[0].Path, got[1].Path)
	}
}

func TestParseRetainedImagesSingleObject(t *testing.T) {
	form := formWith(`{"name":"a.jpg","path":"/images/cars/a.jpg","type":"image/jpeg"}`)

	got := parseRetainedImages(form)
	if len(got) != 1 || got[0].Path != "/images/cars/a.jpg" {
		t.Fatalf("parsed: %+v", got)
	}
}

func TestParseRetainedImagesBarePath(t *testing.T) {
	form := formWith("/images/cars/a.jpg")

	got := parseRetainedImages(form)
	if len(got) != 1 || got[0].Path != "/images/cars/a.jpg" {
		t.Fatalf("parsed: %+v", got)
	}
}

func TestParseRetainedImagesSkipsPlaceholders(t *testing.T) {
	form := formWith("", "null", "undefined", "  ", "/images/cars/keep.jpg")

	got := parseRetainedImages(form)
	if len(got) != 1 || got[0].Path != "/images/cars/keep.jpg" {
		t.Fatalf("parsed: %+v", got)
	}
}

func TestParseRetainedImagesPreservesOrder(t *testing.T) {
	form := formWith("/images/cars/c.jpg", "/images/cars/a.jpg", "/images/cars/b.jpg")

	got := parseRetainedImages(form)
	if len(got) != 3 {
		t.Fatalf("parsed %d images, want 3", len(got))
	}
	want := []string{"/images/cars/c.jpg", "/images/cars/a.jpg", "/images/cars/b.jpg"}
	for i, path := range want {
		if got[i].Path != path {
			t.Errorf("position %d: %q, want %q", i, got[i].Path, path)
		}
	}
}
