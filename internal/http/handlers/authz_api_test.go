package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestRoleHierarchyEnforcement(t *testing.T) {
	app, _ := newTestApp(t)

	empToken := login(t, app, "employee@stockroom.test", "ChangeMe123")
	staffToken := login(t, app, "staff@stockroom.test", "ChangeMe123")

	item := map[string]any{
		"name": "Projector", "category_id": "cat-electronics", "location_id": "loc-main-wh",
	}

	// employee cannot write the catalog
	resp, env := doJSON(t, app, "POST", "/api/v1/items", empToken, item)
	if resp.StatusCode != http.StatusForbidden || env.Success {
		t.Fatalf("want 403 for employee create, got %d %+v", resp.StatusCode, env)
	}

	// staff can
	resp, env = doJSON(t, app, "POST", "/api/v1/items", staffToken, item)
	if resp.StatusCode != http.StatusCreated || !env.Success {
		t.Fatalf("want 201 for staff create, got %d %s", resp.StatusCode, env.Message)
	}

	// but staff cannot delete (super_admin only)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	resp, _ = doJSON(t, app, "DELETE", "/api/v1/items/"+created.ID, staffToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 for staff delete, got %d", resp.StatusCode)
	}

	// employees read the catalog fine
	resp, _ = doJSON(t, app, "GET", "/api/v1/items", empToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for employee list, got %d", resp.StatusCode)
	}

	// and cannot record ledger entries or approve requests
	resp, _ = doJSON(t, app, "POST", "/api/v1/transactions", empToken, map[string]any{
		"type": "inbound", "item_id": created.ID, "quantity": 1,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 for employee transaction, got %d", resp.StatusCode)
	}
}

func TestErrorTaxonomyMapping(t *testing.T) {
	app, _ := newTestApp(t)
	staffToken := login(t, app, "staff@stockroom.test", "ChangeMe123")

	// validation -> 400 with aggregated field messages
	resp, env := doJSON(t, app, "POST", "/api/v1/items", staffToken, map[string]any{})
	if resp.StatusCode != http.StatusBadRequest || env.Success {
		t.Fatalf("want 400 for empty item, got %d %+v", resp.StatusCode, env)
	}
	if !strings.Contains(env.Message, "name") || !strings.Contains(env.Message, "category") {
		t.Fatalf("validation message should aggregate fields, got %q", env.Message)
	}

	// not-found -> 404 with a generic message
	resp, env = doJSON(t, app, "GET", "/api/v1/items/does-not-exist", staffToken, nil)
	if resp.StatusCode != http.StatusNotFound || env.Message != "not found" {
		t.Fatalf("want generic 404, got %d %q", resp.StatusCode, env.Message)
	}

	// duplicate -> 400 naming the field
	item := map[string]any{
		"name": "Scanner", "sku": "DUP-1", "category_id": "cat-electronics", "location_id": "loc-main-wh",
	}
	if resp, _ := doJSON(t, app, "POST", "/api/v1/items", staffToken, item); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create failed: %d", resp.StatusCode)
	}
	resp, env = doJSON(t, app, "POST", "/api/v1/items", staffToken, item)
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(env.Message, "sku") {
		t.Fatalf("want 400 naming sku, got %d %q", resp.StatusCode, env.Message)
	}
}

func TestRequestWorkflowOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	empToken := login(t, app, "employee@stockroom.test", "ChangeMe123")
	staffToken := login(t, app, "staff@stockroom.test", "ChangeMe123")

	// staff stocks an item
	resp, env := doJSON(t, app, "POST", "/api/v1/items", staffToken, map[string]any{
		"name": "Headset", "category_id": "cat-electronics", "location_id": "loc-main-wh",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("item create failed: %d %s", resp.StatusCode, env.Message)
	}
	var item struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &item); err != nil {
		t.Fatal(err)
	}
	if resp, env := doJSON(t, app, "POST", "/api/v1/transactions", staffToken, map[string]any{
		"type": "inbound", "item_id": item.ID, "quantity": 10,
	}); resp.StatusCode != http.StatusCreated {
		t.Fatalf("inbound failed: %d %s", resp.StatusCode, env.Message)
	}

	// employee files a request
	resp, env = doJSON(t, app, "POST", "/api/v1/requests", empToken, map[string]any{
		"item_id": item.ID, "quantity": 2, "reason": "calls",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("request create failed: %d %s", resp.StatusCode, env.Message)
	}
	var req struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	if err := json.Unmarshal(env.Data, &req); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(req.Code, "REQ-") {
		t.Fatalf("request code not generated: %q", req.Code)
	}

	// employee cannot approve their own request
	resp, _ = doJSON(t, app, "POST", "/api/v1/requests/"+req.ID+"/approve", empToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 for employee approve, got %d", resp.StatusCode)
	}

	// staff approves
	resp, env = doJSON(t, app, "POST", "/api/v1/requests/"+req.ID+"/approve", staffToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve failed: %d %s", resp.StatusCode, env.Message)
	}

	// double approval is a transition error
	resp, env = doJSON(t, app, "POST", "/api/v1/requests/"+req.ID+"/approve", staffToken, nil)
	if resp.StatusCode != http.StatusBadRequest || env.Success {
		t.Fatalf("want 400 for double approve, got %d %+v", resp.StatusCode, env)
	}
}
