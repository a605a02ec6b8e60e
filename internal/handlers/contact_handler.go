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

type ContactHandler struct {
	Service *services.ContactService
}

// GetMyContact returns the signed-in seller's saved contact card, used to
// prefill the listing form. A missing card is a 404 the client treats as
// "nothing to prefill".
func (h *ContactHandler) GetMyContact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Service.GetContactByUserID(r.Context(), authUserID(r))
	if err != nil {
		if errors.Is(err, models.ErrContactNotFound) {
			http.Error(w, "Contact not found", http.StatusNotFound)
			return
		}
		log.Printf("GetMyContact error: %v", err)
		http.Error(w, "Failed to fetch contact", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contact)
}

// GetContactByCar returns the seller contact shown on a public listing page.
func (h *ContactHandler) GetContactByCar(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid car ID", http.StatusBadRequest)
		return
	}

	contact, err := h.Service.GetContactByCarID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrContactNotFound) {
			http.Error(w, "Contact not found", http.StatusNotFound)
			return
		}
		log.Printf("GetContactByCar error: %v", err)
		http.Error(w, "Failed to fetch contact", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contact)
}

// GetPublicContact returns a seller's contact card by user id, for profile
// pages that are not tied to one listing.
func (h *ContactHandler) GetPublicContact(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get(":user_id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	contact, err := h.Service.GetContactByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrContactNotFound) {
			http.Error(w, "Contact not found", http.StatusNotFound)
			return
		}
		log.Printf("GetPublicContact error: %v", err)
		http.Error(w, "Failed to fetch contact", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contact)
}

// SaveContact upserts the caller's contact card.
func (h *ContactHandler) SaveContact(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	contact.UserID = authUserID(r)

	saved, err := h.Service.SaveContact(r.Context(), contact)
	if err != nil {
		log.Printf("SaveContact error: %v", err)
		http.Error(w, "Failed to save contact", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}
