package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"kindSparkAPI/internal/pet"
	"kindSparkAPI/services"
)

type PetHandler struct {
	petService *services.PetService
}

func NewPetHandler(petService *services.PetService) *PetHandler {
	return &PetHandler{
		petService: petService,
	}
}

func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	p, err := h.petService.GetPetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Pet not found")
			return
		}
		log.Printf("GetPet: failed for user %s: %v", userID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get pet")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]*pet.Pet{"pet": p})
}

func (h *PetHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req pet.UpdatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Pet name is required")
		return
	}

	p, err := h.petService.RenamePet(ctx, userID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Pet not found")
			return
		}
		log.Printf("UpdatePet: failed for user %s: %v", userID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update pet")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]*pet.Pet{"pet": p})
}

func (h *PetHandler) FeedPet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	p, err := h.petService.FeedPet(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Pet not found")
			return
		}
		log.Printf("FeedPet: failed for user %s: %v", userID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to feed pet")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]*pet.Pet{"pet": p})
}
