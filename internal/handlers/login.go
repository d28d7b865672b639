package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/chepyr/taskboard/internal/db"
	"github.com/chepyr/taskboard/internal/password"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials. An unknown email and a wrong password get the
// same response; only the log tells them apart.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allowAuthAttempt(w, r, "Login") {
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendDecodeError(w, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	log := h.log(r, "Login").WithField("email", req.Email)
	if req.Email == "" || req.Password == "" {
		log.Info("login rejected: missing credentials")
		sendError(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	user, err := h.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			log.Info("login rejected: unknown email")
			sendError(w, "Invalid credentials", http.StatusBadRequest)
			return
		}
		writeStoreError(w, log, err, "User not found")
		return
	}

	if !password.Verify(req.Password, user.Password) {
		log.WithField("user_id", user.ID).Info("login rejected: wrong password")
		sendError(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	log.WithField("user_id", user.ID).Info("login successful")
	sendMessage(w, "Login successful")
}
