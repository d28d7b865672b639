package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/chepyr/taskboard/internal/models"
)

type createBoardRequest struct {
	Name string `json:"name"`
}

type updateBoardRequest struct {
	Name *string `json:"name"`
}

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	boards, err := h.BoardRepo.List(ctx)
	if err != nil {
		writeStoreError(w, h.log(r, "ListBoards"), err, "Board not found")
		return
	}
	if boards == nil {
		boards = []*models.Board{}
	}
	sendJSON(w, http.StatusOK, boards)
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendDecodeError(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		sendError(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	board := &models.Board{Name: req.Name}
	if err := h.BoardRepo.Create(ctx, board); err != nil {
		writeStoreError(w, h.log(r, "CreateBoard"), err, "Board not found")
		return
	}
	h.log(r, "CreateBoard").WithField("board_id", board.ID).Info("board created")
	sendJSON(w, http.StatusOK, board)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	board, err := h.BoardRepo.GetByID(ctx, id)
	if err != nil {
		writeStoreError(w, h.log(r, "GetBoard").WithField("board_id", id), err, "Board not found")
		return
	}
	sendJSON(w, http.StatusOK, board)
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateBoardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendDecodeError(w, err)
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			sendError(w, "name cannot be empty", http.StatusBadRequest)
			return
		}
		req.Name = &name
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	board, err := h.BoardRepo.Update(ctx, id, models.BoardUpdate{Name: req.Name})
	if err != nil {
		writeStoreError(w, h.log(r, "UpdateBoard").WithField("board_id", id), err, "Board not found")
		return
	}
	sendJSON(w, http.StatusOK, board)
}

// DeleteBoard removes the board only. Its tasks are left in place.
func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.BoardRepo.Delete(ctx, id); err != nil {
		writeStoreError(w, h.log(r, "DeleteBoard").WithField("board_id", id), err, "Board not found")
		return
	}
	h.log(r, "DeleteBoard").WithField("board_id", id).Info("board deleted")
	sendMessage(w, "Board deleted")
}
