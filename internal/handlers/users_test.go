package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDeleteOwnAccountRequiresAuth(t *testing.T) {
	r, _ := newAuthedRouter(t, http.MethodDelete, "/api/users/me", DeleteOwnAccount(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/users/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestChangePasswordRejectsInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing current password", `{"new_password": "hunter22"}`},
		{"missing new password", `{"current_password": "hunter22"}`},
		{"short new password", `{"current_password": "hunter22", "new_password": "abc"}`},
		{"malformed json", `{"current_password": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, token := newAuthedRouter(t, http.MethodPut, "/api/users/password", ChangePassword(nil))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/users/password", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d, body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}
