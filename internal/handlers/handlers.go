package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/chepyr/taskboard/internal/db"
	"github.com/chepyr/taskboard/internal/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	storeTimeout = 5 * time.Second
	maxBodyBytes = 1 << 20 // 1MB
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	BoardRepo   db.BoardRepositoryInterface
	TaskRepo    db.TaskRepositoryInterface
	UserRepo    db.UserRepositoryInterface
	RateLimiter *RateLimiter
	Logger      *logrus.Logger
	DB          Pinger
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

var (
	errUnsupportedMedia = errors.New("Content-Type must be application/json")
	errBadJSON          = errors.New("Invalid JSON body")
)

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, errorResponse{Error: message})
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func sendMessage(w http.ResponseWriter, message string) {
	sendJSON(w, http.StatusOK, messageResponse{Message: message})
}

// decodeJSON reads at most 1MB of JSON into dst. A request without a
// Content-Type is accepted; any other media type is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return errUnsupportedMedia
		}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadJSON
	}
	return nil
}

// sendDecodeError maps a decodeJSON failure to its status code.
func sendDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnsupportedMedia) {
		sendError(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}
	sendError(w, errBadJSON.Error(), http.StatusBadRequest)
}

// pathID parses the named path wildcard as a uuid, answering 400 when it is not one.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		sendError(w, "Invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// writeStoreError answers 404 for db.ErrNotFound and a generic 500 otherwise.
// The underlying error is logged, never returned to the client.
func writeStoreError(w http.ResponseWriter, entry *logrus.Entry, err error, notFound string) {
	if errors.Is(err, db.ErrNotFound) {
		entry.Debug(notFound)
		sendError(w, notFound, http.StatusNotFound)
		return
	}
	entry.WithError(err).Error("store operation failed")
	sendError(w, "Server error", http.StatusInternalServerError)
}

func (h *Handler) log(r *http.Request, handler string) *logrus.Entry {
	l := h.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	return logger.WithRequestID(l, RequestIDFrom(r.Context())).WithFields(logrus.Fields{
		"component": "http_handler",
		"handler":   handler,
	})
}

// Health pings the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			h.log(r, "Health").WithError(err).Warn("database ping failed")
			sendError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
