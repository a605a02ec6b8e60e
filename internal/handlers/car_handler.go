package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"motorsonline/internal/models"
	"motorsonline/internal/repositories"
	"motorsonline/internal/services"
)

var signingKey []byte

// SetSigningKey wires the configured JWT key into the handlers that read
// optional bearer tokens on public endpoints.
func SetSigningKey(key string) {
	signingKey = []byte(key)
}

type CarHandler struct {
	Service *services.CarService
	Store   PhotoStore
	// ImageDir backs the image serving endpoint for local storage.
	ImageDir string
}

// viewerFromRequest extracts the user id from an optional bearer token.
// Public endpoints use it to mark favorites; an invalid token just means an
// anonymous viewer.
func viewerFromRequest(r *http.Request) int {
	tokenString := r.Header.Get("Authorization")
	if !strings.HasPrefix(tokenString, "Bearer ") {
		return 0
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil || !token.Valid {
		return 0
	}
	return int(claims.UserID)
}

func authUserID(r *http.Request) int {
	id, _ := r.Context().Value("user_id").(int)
	return id
}

// carFromForm reads the scalar listing fields out of a parsed multipart form.
// The price field carries the VAT-exclusive base the seller typed.
func carFromForm(r *http.Request) models.Car {
	var car models.Car
	car.BrandID = formInt(r, "brand_id")
	car.ModelID = formInt(r, "model_id")
	car.YearID = formInt(r, "year_id")
	car.DriveTypeID = formInt(r, "drive_type_id")

	car.VehicleType = r.FormValue("vehicle_type")
	car.BodyType = r.FormValue("body_type")
	car.Category = r.FormValue("category")
	car.FuelType = r.FormValue("fuel_type")
	car.Transmission = r.FormValue("transmission")
	car.Color = r.FormValue("color")

	car.Mileage = formInt(r, "mileage")
	car.Power = formInt(r, "power")
	car.Displacement = formInt(r, "displacement")
	car.Seats = formInt(r, "seats")
	car.Doors = formInt(r, "doors")
	car.VIN = r.FormValue("vin")
	car.PlateNumber = r.FormValue("plate_number")

	car.Description = r.FormValue("description")
	car.EquipmentText = r.FormValue("equipment_text")
	car.AdditionalInfo = r.FormValue("additional_info")

	car.Price = formFloat(r, "price")
	if v := r.FormValue("discount_price"); v != "" {
		d := formFloat(r, "discount_price")
		car.DiscountPrice = &d
	}
	car.VatRefundable = r.FormValue("vat_refundable")
	car.VatRate = formFloat(r, "vat_rate")

	car.Equipment = r.FormValue("equipment")
	car.StereoText = r.FormValue("stereo_text")
	car.WheelSizeText = r.FormValue("wheel_size_text")
	car.TechCheck = r.FormValue("tech_check")
	car.InspectionValidUntil = r.FormValue("inspection_valid_until")
	return car
}

func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20) // 32MB
	if err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	car := carFromForm(r)
	car.UserID = authUserID(r)

	images, err := savePhotoFiles(h.Store, r.MultipartForm.File["images"])
	if err != nil {
		log.Printf("Failed to store car images: %v", err)
		http.Error(w, "Cannot save image", http.StatusInternalServerError)
		return
	}
	car.Images = images

	createdCar, err := h.Service.CreateCar(r.Context(), car)
	if err != nil {
		if errors.Is(err, models.ErrMissingRequired) || errors.Is(err, models.ErrModelNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Failed to create car: %v", err)
		http.Error(w, "Failed to create car", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createdCar)
}

func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	err = r.ParseMultipartForm(32 << 20)
	if err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	car := carFromForm(r)
	car.ID = id
	car.UserID = authUserID(r)

	retained := parseRetainedImages(r.MultipartForm)
	removed := r.MultipartForm.Value["removed_images"]
	added, err := savePhotoFiles(h.Store, r.MultipartForm.File["images"])
	if err != nil {
		log.Printf("Failed to store car images: %v", err)
		http.Error(w, "Cannot save image", http.StatusInternalServerError)
		return
	}

	updatedCar, orphaned, err := h.Service.UpdateCar(r.Context(), car, retained, added, removed)
	if err != nil {
		if errors.Is(err, repositories.ErrCarNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, models.ErrMissingRequired) || errors.Is(err, models.ErrModelNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Failed to update car: %v", err)
		http.Error(w, "Failed to update car", http.StatusInternalServerError)
		return
	}

	for _, path := range orphaned {
		if err := h.Store.Delete(path); err != nil {
			log.Printf("Failed to delete removed image %s: %v", path, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updatedCar)
}

func (h *CarHandler) GetCarByID(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	if idStr == "" {
		http.Error(w, "Missing car ID", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	detail, err := h.Service.GetCarDetail(r.Context(), id, viewerFromRequest(r))
	if err != nil {
		http.Error(w, "Car not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

func (h *CarHandler) GetCarForEdit(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	payload, err := h.Service.GetCarForEdit(r.Context(), id, authUserID(r))
	if err != nil {
		// Someone else's or deleted listing behaves like a missing one; the
		// client redirects on 404.
		http.Error(w, "Car not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	images, err := h.Service.DeleteCar(r.Context(), id, authUserID(r))
	if err != nil {
		if errors.Is(err, repositories.ErrCarNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, img := range images {
		if err := h.Store.Delete(img.Path); err != nil {
			log.Printf("Failed to delete image %s: %v", img.Path, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CarHandler) ApproveCar(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.ApproveCar(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrCarNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to approve car", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *CarHandler) GetApprovedCars(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.Service.GetApprovedCars(r.Context(), page, limit)
	if err != nil {
		log.Printf("GetApprovedCars error: %v", err)
		http.Error(w, "Failed to fetch cars", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *CarHandler) GetFilteredCars(w http.ResponseWriter, r *http.Request) {
	filter := models.ParseCarFilter(r.URL.Query())

	result, err := h.Service.GetFilteredCars(r.Context(), filter, viewerFromRequest(r))
	if err != nil {
		log.Printf("GetFilteredCars error: %v", err)
		http.Error(w, "Failed to fetch cars", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *CarHandler) GetMyCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Service.GetCarsByUserID(r.Context(), authUserID(r))
	if err != nil {
		http.Error(w, "Failed to fetch cars", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cars)
}

func (h *CarHandler) ServeCarImage(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get(":filename")
	if filename == "" {
		http.Error(w, "filename is required", http.StatusBadRequest)
		return
	}
	imagePath := filepath.Join(h.ImageDir, filepath.Base(filename))

	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	switch filepath.Ext(imagePath) {
	case ".jpg", ".jpeg":
		w.Header().Set("Content-Type", "image/jpeg")
	case ".png":
		w.Header().Set("Content-Type", "image/png")
	case ".gif":
		w.Header().Set("Content-Type", "image/gif")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}

	http.ServeFile(w, r, imagePath)
}
