package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestLoginSuccessAndFailure(t *testing.T) {
	app, _ := newTestApp(t)

	// seeded account
	token := login(t, app, "admin@stockroom.test", "ChangeMe123")
	resp, env := doJSON(t, app, "GET", "/api/v1/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me failed: %d %s", resp.StatusCode, env.Message)
	}
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatal(err)
	}
	if me.Email != "admin@stockroom.test" || me.Role != "super_admin" {
		t.Fatalf("unexpected identity: %+v", me)
	}

	// wrong password
	resp, env = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "admin@stockroom.test", "password": "WrongPass1",
	})
	if resp.StatusCode != http.StatusUnauthorized || env.Success {
		t.Fatalf("want 401 envelope for bad creds, got %d %+v", resp.StatusCode, env)
	}
}

func TestMissingAndInvalidTokens(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := doJSON(t, app, "GET", "/api/v1/items", "", nil)
	if resp.StatusCode != http.StatusUnauthorized || env.Success {
		t.Fatalf("want 401 without token, got %d %+v", resp.StatusCode, env)
	}

	resp, env = doJSON(t, app, "GET", "/api/v1/items", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized || env.Success {
		t.Fatalf("want 401 for garbage token, got %d %+v", resp.StatusCode, env)
	}
}

func TestDeactivatedAccountTokenStopsWorking(t *testing.T) {
	app, _ := newTestApp(t)

	empToken := login(t, app, "employee@stockroom.test", "ChangeMe123")
	adminToken := login(t, app, "admin@stockroom.test", "ChangeMe123")

	resp, _ := doJSON(t, app, "POST", "/api/v1/users/u-employee/deactivate", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deactivate failed: %d", resp.StatusCode)
	}

	// Authentication re-checks the active flag on every request
	resp, env := doJSON(t, app, "GET", "/api/v1/items", empToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("deactivated account token must stop working, got %d %+v", resp.StatusCode, env)
	}
}
