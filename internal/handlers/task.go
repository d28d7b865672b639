package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/chepyr/taskboard/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// createTaskRequest has no boardId: the board always comes from the path.
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	BoardID     *string `json:"boardId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	tasks, err := h.TaskRepo.ListByBoardID(ctx, boardID)
	if err != nil {
		writeStoreError(w, h.log(r, "ListTasks").WithField("board_id", boardID), err, "Task not found")
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	sendJSON(w, http.StatusOK, tasks)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendDecodeError(w, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		sendError(w, "title is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	task := &models.Task{
		BoardID:     boardID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.TaskRepo.Create(ctx, task); err != nil {
		writeStoreError(w, h.log(r, "CreateTask").WithField("board_id", boardID), err, "Task not found")
		return
	}
	h.log(r, "CreateTask").WithFields(logrus.Fields{
		"board_id": boardID,
		"task_id":  task.ID,
	}).Info("task created")
	sendJSON(w, http.StatusOK, task)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	task, err := h.TaskRepo.GetByID(ctx, id)
	if err != nil {
		writeStoreError(w, h.log(r, "GetTask").WithField("task_id", id), err, "Task not found")
		return
	}
	sendJSON(w, http.StatusOK, task)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendDecodeError(w, err)
		return
	}

	var upd models.TaskUpdate
	if req.BoardID != nil {
		boardID, err := uuid.Parse(*req.BoardID)
		if err != nil {
			sendError(w, "Invalid boardId", http.StatusBadRequest)
			return
		}
		upd.BoardID = &boardID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			sendError(w, "title cannot be empty", http.StatusBadRequest)
			return
		}
		upd.Title = &title
	}
	upd.Description = req.Description

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	task, err := h.TaskRepo.Update(ctx, id, upd)
	if err != nil {
		writeStoreError(w, h.log(r, "UpdateTask").WithField("task_id", id), err, "Task not found")
		return
	}
	sendJSON(w, http.StatusOK, task)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.TaskRepo.Delete(ctx, id); err != nil {
		writeStoreError(w, h.log(r, "DeleteTask").WithField("task_id", id), err, "Task not found")
		return
	}
	h.log(r, "DeleteTask").WithField("task_id", id).Info("task deleted")
	sendMessage(w, "Task deleted")
}
