package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"kindSparkAPI/services"
)

type GamificationHandler struct {
	gamificationService *services.GamificationService
	achievementService  *services.AchievementService
}

func NewGamificationHandler(gamificationService *services.GamificationService, achievementService *services.AchievementService) *GamificationHandler {
	return &GamificationHandler{
		gamificationService: gamificationService,
		achievementService:  achievementService,
	}
}

func (h *GamificationHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	leaderboard, err := h.gamificationService.GetLeaderboard(ctx)
	if err != nil {
		log.Printf("GetLeaderboard: failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, leaderboard)
}

func (h *GamificationHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	achievements, err := h.achievementService.GetAchievements(ctx, userID)
	if err != nil {
		log.Printf("GetAchievements: failed for user %s: %v", userID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch achievements")
		return
	}

	respondWithJSON(w, http.StatusOK, achievements)
}

func (h *GamificationHandler) GetProfileStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profileStats, err := h.gamificationService.GetProfileStats(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Pet not found")
			return
		}
		log.Printf("GetProfileStats: failed for user %s: %v", userID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	respondWithJSON(w, http.StatusOK, profileStats)
}

func (h *GamificationHandler) GetWeeklyActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	activity, err := h.gamificationService.GetWeeklyActivity(ctx, userID)
	if err != nil {
		log.Printf("GetWeeklyActivity: failed for user %s: %v", userID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}

	respondWithJSON(w, http.StatusOK, activity)
}

func (h *GamificationHandler) GetImpact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	impact, err := h.gamificationService.GetImpact(ctx)
	if err != nil {
		log.Printf("GetImpact: failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch impact summary")
		return
	}

	respondWithJSON(w, http.StatusOK, impact)
}
