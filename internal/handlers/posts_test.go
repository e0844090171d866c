package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreatePostRejectsInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing goal id", `{"title": "Day 12 of running"}`},
		{"blank title", `{"goal_id": "6f1b0a52-88a6-4f2e-9c1d-0f4cf2a7e210", "title": "   "}`},
		{"malformed json", `{"goal_id": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, token := newAuthedRouter(t, http.MethodPost, "/api/posts", CreatePost(nil))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d, body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestGetPostRejectsBadID(t *testing.T) {
	r, token := newAuthedRouter(t, http.MethodGet, "/api/posts/:id", GetPost(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/nope", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
