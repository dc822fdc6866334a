package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pulsefit-app/pulsefit/internal/app/progression"
	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// ─── Users ──────────────────────────────────────────────────────────────────

type createUserRequest struct {
	UserID string `json:"user_id"`
}

// handleCreateUser creates default progression state for a new account.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	u, err := s.engine.Register(req.UserID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			writeError(w, http.StatusConflict, "user already exists")
			return
		}
		log.Printf("[api] create user: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// handleProgression returns a user's current progression snapshot.
func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	u, err := s.engine.Progression(userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("[api] load progression: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load progression")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// handleAchievements returns the achievements a user has unlocked.
func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	unlocked, err := s.engine.UnlockedAchievements(userID)
	if err != nil {
		log.Printf("[api] list achievements: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list achievements")
		return
	}
	if unlocked == nil {
		unlocked = []domain.AchievementDef{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      userID,
		"achievements": unlocked,
		"count":        len(unlocked),
	})
}

// ─── Workout Completion ─────────────────────────────────────────────────────

// handleCompleteWorkout runs the completion orchestrator for one event.
func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	var ev domain.WorkoutEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.engine.CompleteWorkout(ev)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEvent):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrDuplicateWorkout):
			writeError(w, http.StatusConflict, "workout already recorded")
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusConflict, "concurrent update, retry")
		default:
			log.Printf("[api] complete workout: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to process workout")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ─── Streak Freeze ──────────────────────────────────────────────────────────

type freezeRequest struct {
	UserID string `json:"user_id"`
}

// handleStreakFreeze spends one of the user's monthly streak freezes.
func (s *Server) handleStreakFreeze(w http.ResponseWriter, r *http.Request) {
	var req freezeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	used, err := s.engine.UseFreeze(req.UserID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("[api] use freeze: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to use freeze")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": req.UserID,
		"used":    used,
	})
}

// ─── Lives ──────────────────────────────────────────────────────────────────

type deductRequest struct {
	UserID string `json:"user_id"`
}

// handleDeductLife removes one heart from the user's pool.
func (s *Server) handleDeductLife(w http.ResponseWriter, r *http.Request) {
	var req deductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	res, err := s.engine.Deduct(req.UserID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("[api] deduct life: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to deduct life")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":         req.UserID,
		"lives_remaining": res.LivesRemaining,
		"can_continue":    res.CanContinue,
	})
}

// ─── Leaderboard ────────────────────────────────────────────────────────────

// handleLeaderboard returns the current ISO week's standings.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	now := time.Now().UTC()
	entries, err := s.engine.WeeklyLeaderboard(now, limit)
	if err != nil {
		log.Printf("[api] leaderboard: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"week_start": progression.WeekStart(now),
		"entries":    entries,
	})
}

// handleCatalog returns the full achievement catalog.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"achievements": s.engine.Catalog(),
	})
}
