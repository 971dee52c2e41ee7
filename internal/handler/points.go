package handler

import (
	"log/slog"
	"net/http"

	"hearth/internal/auth"
	"hearth/internal/model"
	"hearth/internal/store"
)

type PointsHandler struct {
	ledger *store.LedgerStore
	logger *slog.Logger
}

func NewPointsHandler(ls *store.LedgerStore, logger *slog.Logger) *PointsHandler {
	return &PointsHandler{ledger: ls, logger: logger}
}

// Balance returns the caller's point total and ledger history.
func (h *PointsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	total, err := h.ledger.SumForUser(id.UserID)
	if err != nil {
		h.logger.Error("sum ledger", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read ledger"})
		return
	}

	entries, err := h.ledger.ListForUser(id.UserID)
	if err != nil {
		h.logger.Error("list ledger", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read ledger"})
		return
	}
	if entries == nil {
		entries = []model.LedgerEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":   total,
		"entries": entries,
	})
}

// Leaderboard returns point totals for everyone in the caller's household.
func (h *PointsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	balances, err := h.ledger.Leaderboard(id.HouseholdID)
	if err != nil {
		h.logger.Error("leaderboard", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read leaderboard"})
		return
	}
	if balances == nil {
		balances = []model.PointBalance{}
	}
	writeJSON(w, http.StatusOK, balances)
}
