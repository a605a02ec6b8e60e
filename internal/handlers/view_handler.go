package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"motorsonline/internal/models"
	"motorsonline/internal/services"
)

type ViewHandler struct {
	Service *services.ViewService
}

// IncrementView always answers 204. View bumps are best-effort and the
// client never waits on them.
func (h *ViewHandler) IncrementView(w http.ResponseWriter, r *http.Request) {
	carID, err := strconv.Atoi(r.URL.Query().Get(":car_id"))
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	h.Service.Increment(r.Context(), carID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ViewHandler) GetViewCount(w http.ResponseWriter, r *http.Request) {
	carID, err := strconv.Atoi(r.URL.Query().Get(":car_id"))
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	count, err := h.Service.Count(r.Context(), carID)
	if err != nil {
		log.Printf("GetViewCount error: %v", err)
		http.Error(w, "Failed to fetch view count", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"count": count})
}

// GetViewCounts resolves counters for a batch of car ids in one request, so
// list pages avoid one round trip per row.
func (h *ViewHandler) GetViewCounts(w http.ResponseWriter, r *http.Request) {
	var req models.ViewCountsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	counts, err := h.Service.Counts(r.Context(), req.IDs)
	if err != nil {
		log.Printf("GetViewCounts error: %v", err)
		http.Error(w, "Failed to fetch view counts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ViewCountsResponse{Counts: counts})
}
