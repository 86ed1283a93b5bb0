package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stockroom/internal/http/handlers"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

// newTestApp wires the API the same way main does, against a fresh
// seeded in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	authSvc := &services.AuthService{
		Users:    repos.NewUserRepo(db),
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	}
	deps := handlers.NewDeps(db, authSvc)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/auth/login", deps.AuthHandler.Login)

	authed := api.Group("", handlers.RequireAuth(authSvc))
	staff := handlers.RequireRole("staff")
	superAdmin := handlers.RequireRole("super_admin")

	authed.Get("/auth/me", deps.AuthHandler.Me)
	authed.Get("/items", deps.ItemHandler.List)
	authed.Get("/items/:id", deps.ItemHandler.Get)
	authed.Post("/items", staff, deps.ItemHandler.Create)
	authed.Put("/items/:id", staff, deps.ItemHandler.Update)
	authed.Delete("/items/:id", superAdmin, deps.ItemHandler.Delete)
	authed.Post("/transactions", staff, deps.TransactionHandler.Create)
	authed.Get("/transactions", staff, deps.TransactionHandler.List)
	authed.Get("/requests", deps.RequestHandler.List)
	authed.Post("/requests", deps.RequestHandler.Create)
	authed.Post("/requests/:id/approve", staff, deps.RequestHandler.Approve)
	authed.Post("/requests/:id/reject", staff, deps.RequestHandler.Reject)
	authed.Post("/users", superAdmin, deps.UserHandler.Create)
	authed.Post("/users/:id/deactivate", superAdmin, deps.UserHandler.Deactivate)

	return app, db
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, env := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s failed with %d: %s", email, resp.StatusCode, env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("no token in login response: %s", env.Data)
	}
	return data.Token
}
