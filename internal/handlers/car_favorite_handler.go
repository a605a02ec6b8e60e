package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"motorsonline/internal/services"
)

type CarFavoriteHandler struct {
	Service *services.CarFavoriteService
}

func favoriteCarID(r *http.Request) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(":car_id"))
}

func (h *CarFavoriteHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	carID, err := favoriteCarID(r)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.AddToFavorites(r.Context(), authUserID(r), carID); err != nil {
		log.Printf("AddToFavorites error: %v", err)
		http.Error(w, "Failed to add favorite", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"favorite": true})
}

func (h *CarFavoriteHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	carID, err := favoriteCarID(r)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RemoveFromFavorites(r.Context(), authUserID(r), carID); err != nil {
		log.Printf("RemoveFromFavorites error: %v", err)
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"favorite": false})
}

// CheckFavorite tells the caller whether one car is in their favorites,
// for pages that render a single heart icon without loading the whole set.
func (h *CarFavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	carID, err := favoriteCarID(r)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	favorite, err := h.Service.IsFavorite(r.Context(), authUserID(r), carID)
	if err != nil {
		log.Printf("CheckFavorite error: %v", err)
		http.Error(w, "Failed to check favorite", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"favorite": favorite})
}

func (h *CarFavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.Service.GetFavoritesByUser(r.Context(), authUserID(r))
	if err != nil {
		log.Printf("GetFavorites error: %v", err)
		http.Error(w, "Failed to fetch favorites", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(favorites)
}

// GetFavoriteIDs returns just the car ids the user has saved, for cheap
// heart-icon hydration on list pages.
func (h *CarFavoriteHandler) GetFavoriteIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Service.GetFavoriteIDsByUser(r.Context(), authUserID(r))
	if err != nil {
		log.Printf("GetFavoriteIDs error: %v", err)
		http.Error(w, "Failed to fetch favorites", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []int{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ids)
}

// GetFavoriteCount is public: listing pages show how many users saved a car.
func (h *CarFavoriteHandler) GetFavoriteCount(w http.ResponseWriter, r *http.Request) {
	carID, err := favoriteCarID(r)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	count, err := h.Service.CountByCar(r.Context(), carID)
	if err != nil {
		log.Printf("GetFavoriteCount error: %v", err)
		http.Error(w, "Failed to fetch favorite count", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"count": count})
}
