package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chepyr/taskboard/internal/db"
	"github.com/chepyr/taskboard/internal/db/dbtest"
	"github.com/sirupsen/logrus/hooks/test"
)

// newTestHandler wires the real repositories to an in-memory sqlite database.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	dbx := dbtest.Open(t)
	l, _ := test.NewNullLogger()
	return &Handler{
		BoardRepo: db.NewBoardRepository(dbx),
		TaskRepo:  db.NewTaskRepository(dbx),
		UserRepo:  db.NewUserRepository(dbx),
		Logger:    l,
		DB:        dbx,
	}
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d (body %s)", status, rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	got := decodeBody[errorResponse](t, rr)
	if message != "" && got.Error != message {
		t.Errorf("expected error %q, got %q", message, got.Error)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{"valid", "application/json", `{"name":"x"}`, nil},
		{"charset param", "application/json; charset=utf-8", `{"name":"x"}`, nil},
		{"no content type", "", `{"name":"x"}`, nil},
		{"wrong content type", "text/plain", `{"name":"x"}`, errUnsupportedMedia},
		{"malformed", "application/json", `{"name":`, errBadJSON},
		{"empty body", "application/json", ``, errBadJSON},
		{"too large", "application/json", `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`, errBadJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/boards", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			var dst createBoardRequest
			err := decodeJSON(httptest.NewRecorder(), req, &dst)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSendDecodeError(t *testing.T) {
	rr := httptest.NewRecorder()
	sendDecodeError(rr, errUnsupportedMedia)
	assertError(t, rr, http.StatusUnsupportedMediaType, errUnsupportedMedia.Error())

	rr = httptest.NewRecorder()
	sendDecodeError(rr, errBadJSON)
	assertError(t, rr, http.StatusBadRequest, "Invalid JSON body")
}

func TestWriteStoreError_HidesCause(t *testing.T) {
	l, hook := test.NewNullLogger()
	rr := httptest.NewRecorder()
	writeStoreError(rr, l.WithField("handler", "x"), errors.New("pq: connection refused"), "Board not found")

	assertError(t, rr, http.StatusInternalServerError, "Server error")
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Errorf("cause leaked to client: %s", rr.Body.String())
	}
	if entry := hook.LastEntry(); entry == nil || entry.Data["error"] == nil {
		t.Errorf("expected the cause to be logged")
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	rr := doRequest(t, h.Routes(), http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := decodeBody[map[string]string](t, rr); got["status"] != "ok" {
		t.Errorf("unexpected body: %v", got)
	}

	h.DB = pingerFunc(func(ctx context.Context) error { return errors.New("down") })
	rr = doRequest(t, h.Routes(), http.MethodGet, "/healthz", "")
	assertError(t, rr, http.StatusServiceUnavailable, "database unavailable")
}
