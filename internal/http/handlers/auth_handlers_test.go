package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/catalog-api/internal/http/handlers"
)

func TestLoginHandler(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name       string
		payload    any
		expectCode int
	}{
		{"valid credentials", handler.UserLogin{Username: "admin", Password: "secret"}, http.StatusOK},
		{"wrong password", handler.UserLogin{Username: "admin", Password: "nope"}, http.StatusUnauthorized},
		{"unknown user", handler.UserLogin{Username: "root", Password: "secret"}, http.StatusUnauthorized},
		{"missing password", map[string]string{"username": "admin"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sendJSON(r, http.MethodPost, "/login", tt.payload, false)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, w.Code, w.Body.String())
			}
			if tt.expectCode != http.StatusOK {
				return
			}

			resp := decode[handler.LoginResult](t, strings.NewReader(w.Body.String()))
			claims, err := issuer.ParseToken(resp.Token)
			if err != nil {
				t.Fatalf("login returned an unusable token: %v", err)
			}
			if claims.Username != "admin" {
				t.Errorf("expected admin claims, got %+v", claims)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	w := get(newRouter(), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("unexpected body %s", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	w := get(newRouter(), "/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"statusCode":404`) {
		t.Errorf("expected JSON error body, got %s", w.Body.String())
	}
}
