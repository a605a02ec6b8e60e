package services

import (
	"reflect"
	"testing"

	"motorsonline/internal/models"
)

func img(path string, pos int) models.CarImage {
	return models.CarImage{Name: path, Path: path, Type: "image/jpeg", Position: pos}
}

func paths(images []models.CarImage) []string {
	out := make([]string, len(images))
	for i, im := range images {
		out[i] = im.Path
	}
	return out
}

func TestReconcileImagesKeepsRetainedOrder(t *testing.T) {
	stored := []models.CarImage{img("a.jpg", 0), img("b.jpg", 1), img("c.jpg", 2)}
	retained := []models.CarImage{img("c.jpg", 0), img("a.jpg", 1)}
	added := []models.CarImage{img("d.jpg", 0)}

	final, orphaned := ReconcileImages(stored, retained, added, nil)

	if got, want := paths(final), []string{"c.jpg", "a.jpg", "d.jpg"}; !reflect.DeepEqual(got, want) {
		t.Errorf("final order: %v, want %v", got, want)
	}
	for i, im := range final {
		if im.Position != i {
			t.Errorf("position %d not reindexed: %d", i, im.Position)
		}
	}
	if !reflect.DeepEqual(orphaned, []string{"b.jpg"}) {
		t.Errorf("orphaned: %v, want [b.jpg]", orphaned)
	}
}

func TestReconcileImagesNothingRetained(t *testing.T) {
	stored := []models.CarImage{img("a.jpg", 0), img("b.jpg", 1)}

	final, orphaned := ReconcileImages(stored, nil, nil, nil)

	if len(final) != 0 {
		t.Errorf("final should be empty: %v", paths(final))
	}
	if !reflect.DeepEqual(orphaned, []string{"a.jpg", "b.jpg"}) {
		t.Errorf("orphaned: %v", orphaned)
	}
}

func TestReconcileImagesExplicitRemovalWins(t *testing.T) {
	stored := []models.CarImage{img("a.jpg", 0), img("b.jpg", 1)}
	// A stale reference to b.jpg slipped into the retained list, but the
	// client also reported it removed.
	retained := []models.CarImage{img("a.jpg", 0), img("b.jpg", 1)}

	final, orphaned := ReconcileImages(stored, retained, nil, []string{"b.jpg"})

	if got, want := paths(final), []string{"a.jpg"}; !reflect.DeepEqual(got, want) {
		t.Errorf("final: %v, want %v", got, want)
	}
	if !reflect.DeepEqual(orphaned, []string{"b.jpg"}) {
		t.Errorf("orphaned: %v, want [b.jpg]", orphaned)
	}
}

func TestReconcileImagesCapsAtMax(t *testing.T) {
	var added []models.CarImage
	for i := 0; i < models.MaxCarImages+5; i++ {
		added = append(added, img("n"+string(rune('a'+i%26))+".jpg", i))
	}

	final, _ := ReconcileImages(nil, nil, added, nil)
	if len(final) != models.MaxCarImages {
		t.Errorf("final size: %d, want %d", len(final), models.MaxCarImages)
	}
}
