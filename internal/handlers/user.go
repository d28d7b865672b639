package handlers

import (
	"context"
	"net/http"
	"strings"
)

// GetUser looks a user up by the email query parameter.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		sendError(w, "email query parameter is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	user, err := h.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		writeStoreError(w, h.log(r, "GetUser").WithField("email", email), err, "User not found")
		return
	}
	sendJSON(w, http.StatusOK, user)
}
