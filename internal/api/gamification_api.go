package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ekima-network/ekima/internal/domain"
)

// --- POST /api/events ---

func (s *Server) handleActivityEvent(w http.ResponseWriter, r *http.Request) {
	var ev domain.ActivityEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.service.HandleActivity(r.Context(), ev)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- POST /api/award ---

// awardRequest grants XP directly, outside the activity pipeline.
type awardRequest struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
	Source string  `json:"source"`
}

func (s *Server) handleAward(w http.ResponseWriter, r *http.Request) {
	var req awardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.service.AwardXP(r.Context(), req.UserID, req.Amount, req.Source)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- GET /api/profiles/{userID} ---

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	p, err := s.service.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	curve := s.service.Curve()
	level := curve.Level(p.TotalXP)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile":          p,
		"level":            level,
		"xp_into_level":    p.TotalXP % curve.XPPerLevel,
		"xp_to_next_level": xpToNext(curve, p.TotalXP, level),
	})
}

// xpToNext returns XP remaining until the next level, 0 at the cap.
func xpToNext(curve domain.Curve, totalXP int64, level int) int64 {
	if level >= curve.MaxLevel {
		return 0
	}
	return curve.XPPerLevel - totalXP%curve.XPPerLevel
}

// --- GET /api/profiles/{userID}/achievements ---

func (s *Server) handleUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	p, err := s.service.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	engine := s.service.Engine()
	unlocked := make([]map[string]interface{}, 0, len(p.Achievements))
	for _, a := range p.Achievements {
		def, err := engine.Definition(a.ID)
		if err != nil {
			// Catalog may have dropped an id since it was unlocked.
			unlocked = append(unlocked, map[string]interface{}{
				"id": a.ID, "unlocked_at": a.UnlockedAt,
			})
			continue
		}
		unlocked = append(unlocked, map[string]interface{}{
			"id": a.ID, "unlocked_at": a.UnlockedAt, "definition": def,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"unlocked": unlocked,
		"total":    len(engine.Definitions()),
	})
}

// --- GET /api/achievements ---

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": s.service.Engine().Definitions(),
	})
}

// --- GET /api/leaderboard/{type}/{timeframe} ---

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	t := domain.LeaderboardType(chi.URLParam(r, "type"))
	tf := domain.Timeframe(chi.URLParam(r, "timeframe"))

	board, err := s.boards.Get(r.Context(), t, tf)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrAchievementNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingUserID),
		errors.Is(err, domain.ErrInvalidLeaderboard):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
