package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Routes builds the HTTP router with request-id, logging and metrics middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /boards", h.ListBoards)
	mux.HandleFunc("POST /boards", h.CreateBoard)
	mux.HandleFunc("GET /boards/{id}", h.GetBoard)
	mux.HandleFunc("PUT /boards/{id}", h.UpdateBoard)
	mux.HandleFunc("DELETE /boards/{id}", h.DeleteBoard)

	mux.HandleFunc("GET /boards/{boardId}/tasks", h.ListTasks)
	mux.HandleFunc("POST /boards/{boardId}/tasks", h.CreateTask)
	mux.HandleFunc("GET /tasks/{id}", h.GetTask)
	mux.HandleFunc("PUT /tasks/{id}", h.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", h.DeleteTask)

	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /user", h.GetUser)

	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	l := h.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	return Chain(mux, RequestID, Logging(l), Metrics)
}
