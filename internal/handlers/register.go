package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/chepyr/taskboard/internal/db"
	"github.com/chepyr/taskboard/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register stores a new user. The password is hashed by the repository.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.allowAuthAttempt(w, r, "Register") {
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendDecodeError(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		sendError(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	log := h.log(r, "Register").WithField("email", req.Email)
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	_, err := h.UserRepo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		log.Info("registration rejected: email taken")
		sendError(w, "User already exists", http.StatusBadRequest)
		return
	case !errors.Is(err, db.ErrNotFound):
		writeStoreError(w, log, err, "User not found")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.UserRepo.Create(ctx, user); err != nil {
		// a concurrent registration can still win the unique constraint
		if errors.Is(err, db.ErrUserExists) {
			log.Info("registration rejected: email taken")
			sendError(w, "User already exists", http.StatusBadRequest)
			return
		}
		writeStoreError(w, log, err, "User not found")
		return
	}

	log.WithField("user_id", user.ID).Info("user registered")
	sendMessage(w, "User registered successfully")
}
