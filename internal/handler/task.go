package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hearth/internal/auth"
	"hearth/internal/model"
	"hearth/internal/store"
	"hearth/internal/websocket"
)

type TaskHandler struct {
	tasks       *store.TaskStore
	completions *store.CompletionStore
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, cs *store.CompletionStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: ts, completions: cs, hub: hub, logger: logger}
}

func (h *TaskHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	description := strings.TrimSpace(r.FormValue("description"))

	points := 1
	if v := r.FormValue("points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "points must be a non-negative integer"})
			return
		}
		points = n
	}

	priority := r.FormValue("priority")
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "priority must be low, medium, or high"})
		return
	}

	var dueDate *time.Time
	if v := r.FormValue("due_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "due_date must be YYYY-MM-DD"})
			return
		}
		dueDate = &d
	}

	task, err := h.tasks.Create(id.HouseholdID, title, description, points, priority, dueDate, id.UserID)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create task"})
		return
	}

	h.broadcast(websocket.Event{Type: websocket.EventTaskCreated, TaskID: task.ID, HouseholdID: task.HouseholdID})
	writeJSON(w, http.StatusCreated, task)
}

// Complete marks the task done for the caller. Missing tasks and tasks
// in another household produce the same 404 so task ids cannot be probed
// across households. A repeat completion answers already_done without
// touching the ledger.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	taskID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	task, err := h.tasks.GetByID(taskID)
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get task"})
		return
	}
	if task == nil || task.HouseholdID != id.HouseholdID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	reason := fmt.Sprintf("Completed: %s", task.Title)
	_, err = h.completions.Complete(task.ID, id.UserID, task.Points, reason)
	if errors.Is(err, store.ErrAlreadyCompleted) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "already_done"})
		return
	}
	if err != nil {
		h.logger.Error("complete task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to complete task"})
		return
	}

	h.broadcast(websocket.Event{Type: websocket.EventTaskCompleted, TaskID: task.ID, HouseholdID: task.HouseholdID})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	tasks, err := h.tasks.ListActiveByHousehold(id.HouseholdID)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Deactivate soft-deletes a task; it disappears from the dashboard but
// its completion and ledger history remain.
func (h *TaskHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	taskID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	task, err := h.tasks.GetByID(taskID)
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get task"})
		return
	}
	if task == nil || task.HouseholdID != id.HouseholdID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	if err := h.tasks.Deactivate(task.ID); err != nil {
		h.logger.Error("deactivate task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to deactivate task"})
		return
	}

	h.broadcast(websocket.Event{Type: websocket.EventTaskDeactivated, TaskID: task.ID, HouseholdID: task.HouseholdID})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
