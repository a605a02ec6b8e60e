package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"motorsonline/internal/models"
	"motorsonline/internal/services"
)

type ReferenceHandler struct {
	Service *services.ReferenceService
}

func (h *ReferenceHandler) GetBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.GetBrands(r.Context())
	if err != nil {
		log.Printf("GetBrands error: %v", err)
		http.Error(w, "Failed to fetch brands", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(brands)
}

func (h *ReferenceHandler) GetModelsByBrand(w http.ResponseWriter, r *http.Request) {
	brandID, err := strconv.Atoi(r.URL.Query().Get(":brand_id"))
	if err != nil {
		http.Error(w, "Invalid brand ID", http.StatusBadRequest)
		return
	}

	carModels, err := h.Service.GetModelsByBrand(r.Context(), brandID)
	if err != nil {
		if errors.Is(err, models.ErrBrandNotFound) {
			http.Error(w, "Brand not found", http.StatusNotFound)
			return
		}
		log.Printf("GetModelsByBrand error: %v", err)
		http.Error(w, "Failed to fetch models", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(carModels)
}

func (h *ReferenceHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.Service.GetYears(r.Context())
	if err != nil {
		log.Printf("GetYears error: %v", err)
		http.Error(w, "Failed to fetch years", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(years)
}

func (h *ReferenceHandler) GetDriveTypes(w http.ResponseWriter, r *http.Request) {
	driveTypes, err := h.Service.GetDriveTypes(r.Context())
	if err != nil {
		log.Printf("GetDriveTypes error: %v", err)
		http.Error(w, "Failed to fetch drive types", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(driveTypes)
}

func (h *ReferenceHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var brand models.Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil || brand.Name == "" {
		http.Error(w, "Brand name is required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateBrand(r.Context(), brand)
	if err != nil {
		log.Printf("CreateBrand error: %v", err)
		http.Error(w, "Failed to create brand", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ReferenceHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid brand ID", http.StatusBadRequest)
		return
	}

	var brand models.Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil || brand.Name == "" {
		http.Error(w, "Brand name is required", http.StatusBadRequest)
		return
	}
	brand.ID = id

	updated, err := h.Service.UpdateBrand(r.Context(), brand)
	if err != nil {
		if errors.Is(err, models.ErrBrandNotFound) {
			http.Error(w, "Brand not found", http.StatusNotFound)
			return
		}
		log.Printf("UpdateBrand error: %v", err)
		http.Error(w, "Failed to update brand", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *ReferenceHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid brand ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteBrand(r.Context(), id); err != nil {
		log.Printf("DeleteBrand error: %v", err)
		http.Error(w, "Failed to delete brand", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReferenceHandler) CreateModel(w http.ResponseWriter, r *http.Request) {
	var m models.CarModel
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil || m.Name == "" || m.BrandID == 0 {
		http.Error(w, "Model name and brand_id are required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateModel(r.Context(), m)
	if err != nil {
		log.Printf("CreateModel error: %v", err)
		http.Error(w, "Failed to create model", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ReferenceHandler) UpdateModel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid model ID", http.StatusBadRequest)
		return
	}

	var m models.CarModel
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil || m.Name == "" || m.BrandID == 0 {
		http.Error(w, "Model name and brand_id are required", http.StatusBadRequest)
		return
	}
	m.ID = id

	updated, err := h.Service.UpdateModel(r.Context(), m)
	if err != nil {
		if errors.Is(err, models.ErrModelNotFound) {
			http.Error(w, "Model not found", http.StatusNotFound)
			return
		}
		log.Printf("UpdateModel error: %v", err)
		http.Error(w, "Failed to update model", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *ReferenceHandler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid model ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteModel(r.Context(), id); err != nil {
		log.Printf("DeleteModel error: %v", err)
		http.Error(w, "Failed to delete model", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
