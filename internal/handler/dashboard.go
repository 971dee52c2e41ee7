package handler

import (
	"log/slog"
	"net/http"
	"time"

	"hearth/internal/auth"
	"hearth/internal/model"
	"hearth/internal/store"
	"hearth/internal/view"
)

type DashboardHandler struct {
	tasks       *store.TaskStore
	completions *store.CompletionStore
	renderer    view.Renderer
	logger      *slog.Logger
}

func NewDashboardHandler(ts *store.TaskStore, cs *store.CompletionStore, renderer view.Renderer, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{tasks: ts, completions: cs, renderer: renderer, logger: logger}
}

type taskItem struct {
	Task model.Task
	Done bool
}

type dashboardPage struct {
	User  auth.Identity
	Tasks []taskItem
	Today time.Time
}

// Dashboard lists the household's active tasks, due-dated first. The
// completed markers cover completions by anyone in the household:
// a chore done by one member shows as done for all of them.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tasks, err := h.tasks.ListActiveByHousehold(id.HouseholdID)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	completed, err := h.completions.CompletedTaskIDs(id.HouseholdID)
	if err != nil {
		h.logger.Error("completed task ids", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	items := make([]taskItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{Task: t, Done: completed[t.ID]})
	}

	page := dashboardPage{User: id, Tasks: items, Today: time.Now()}
	if err := h.renderer.Render(w, "dashboard.html", page); err != nil {
		h.logger.Error("render dashboard", "error", err)
	}
}
