package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/St1cky1/marketplace-service/internal/api/middleware"
	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/repository"
	"github.com/St1cky1/marketplace-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *usecase.TaskService
}

func NewTaskHandler(taskService *usecase.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// создаем новую задачу
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req entity.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), p, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// задача вместе со ставками
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task Id", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskId)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter := repository.TaskFilter{
		Status: r.URL.Query().Get("status"),
	}
	if categoryStr := r.URL.Query().Get("category_id"); categoryStr != "" {
		category, err := strconv.Atoi(categoryStr)
		if err != nil {
			http.Error(w, "Invalid category_id", http.StatusBadRequest)
			return
		}
		filter.Category = category
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// задачи текущего клиента
func (h *TaskHandler) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := h.taskService.ListUserTasks(r.Context(), p, r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// явный переход статуса: cancel / dispute / resolve
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	taskId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task Id", http.StatusBadRequest)
		return
	}

	var req entity.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.ChangeStatus(r.Context(), p, taskId, req.Action)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}
