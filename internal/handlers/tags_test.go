package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSlugFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Deep Work", "deep-work"},
		{"golang", "golang"},
		{"Morning Pages Habit", "morning-pages-habit"},
	}

	for _, tt := range tests {
		if got := slugFor(tt.name); got != tt.want {
			t.Errorf("slugFor(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCreateTagRejectsInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{}`},
		{"blank name", `{"name": "   "}`},
		{"malformed json", `{"name": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, token := newAuthedRouter(t, http.MethodPost, "/api/tags", CreateTag(nil))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d, body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestCreateTagRequiresAuth(t *testing.T) {
	r, _ := newAuthedRouter(t, http.MethodPost, "/api/tags", CreateTag(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"name": "golang"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestTagIDValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		method  string
		handler gin.HandlerFunc
	}{
		{"get", http.MethodGet, GetTag(nil)},
		{"update", http.MethodPut, UpdateTag(nil)},
		{"delete", http.MethodDelete, DeleteTag(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Handle(tt.method, "/api/tags/:id", tt.handler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/api/tags/not-a-uuid", strings.NewReader(`{"name": "golang"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
