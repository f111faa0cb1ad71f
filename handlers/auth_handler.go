package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"kindSparkAPI/internal/user"
	"kindSparkAPI/middleware"
	"kindSparkAPI/services"
)

type AuthHandler struct {
	authService *services.AuthService
	petService  *services.PetService
}

func NewAuthHandler(authService *services.AuthService, petService *services.PetService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		petService:  petService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" || req.Username == "" {
		respondWithError(w, http.StatusBadRequest, "Email, password and username are required")
		return
	}

	u, p, token, err := h.authService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrCredentialsTaken) {
			respondWithError(w, http.StatusBadRequest, "Email or username already taken")
			return
		}
		log.Printf("Register: failed to register %s: %v", req.Email, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	respondWithJSON(w, http.StatusCreated, user.AuthResponse{User: u, Pet: p, AccessToken: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, p, token, err := h.authService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Login: failed for %s: %v", req.Email, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	respondWithJSON(w, http.StatusOK, user.AuthResponse{User: u, Pet: p, AccessToken: token})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	u, err := h.authService.GetUserByID(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	resp := user.MeResponse{User: u}
	if p, err := h.petService.GetPetByUserID(ctx, userID); err == nil {
		resp.Pet = p
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// Helper functions
func authenticatedUserID(ctx context.Context) (uuid.UUID, bool) {
	raw, ok := middleware.GetUserID(ctx)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
