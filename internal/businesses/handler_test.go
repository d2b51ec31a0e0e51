package businesses_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"permits-backend/internal/bootstrap"
	sharedauth "permits-backend/internal/shared/auth"
	"permits-backend/internal/shared/config"
)

func newTestApp(t *testing.T) (*bootstrap.App, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		StorageBucket:   "business-documents",
	}
	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	token, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:   "google:owner",
		Email: "owner@example.com",
	})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return app, token
}

func doJSON(t *testing.T, app *bootstrap.App, token, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestBusinessCRUD(t *testing.T) {
	app, token := newTestApp(t)

	// Create with lookup labels.
	resp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses", map[string]any{
		"name":             "Mario's Pizza",
		"phone":            "512-555-0100",
		"businessTypeName": "Restaurant",
		"jurisdictionName": "Travis County",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["businessTypeName"] != "Restaurant" {
		t.Errorf("expected businessTypeName Restaurant, got %v", created["businessTypeName"])
	}
	bizID, _ := created["id"].(string)
	if bizID == "" {
		t.Fatalf("expected business id")
	}

	// A second business with the same label in different casing reuses the
	// lookup row and keeps the original casing.
	resp2 := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses", map[string]any{
		"name":             "Luigi's Pasta",
		"businessTypeName": "RESTAURANT",
	})
	if resp2.Code != http.StatusCreated {
		t.Fatalf("create 2: expected 201, got %d", resp2.Code)
	}
	var second map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&second); err != nil {
		t.Fatalf("decode 2: %v", err)
	}
	if second["businessTypeName"] != "Restaurant" {
		t.Errorf("expected canonical casing Restaurant, got %v", second["businessTypeName"])
	}

	// List is sorted by name.
	listResp := doJSON(t, app, token, http.MethodGet, "/api/v1/businesses", nil)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", listResp.Code)
	}
	var list []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 businesses, got %d", len(list))
	}
	if list[0]["name"] != "Luigi's Pasta" || list[1]["name"] != "Mario's Pizza" {
		t.Errorf("unexpected order: %v, %v", list[0]["name"], list[1]["name"])
	}

	// Patch: blank label clears the lookup link, nil leaves it alone.
	patch := doJSON(t, app, token, http.MethodPatch, "/api/v1/businesses/"+bizID, map[string]any{
		"notes":            "renewal due in March",
		"jurisdictionName": "",
	})
	if patch.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", patch.Code, patch.Body.String())
	}
	var patched map[string]any
	if err := json.NewDecoder(patch.Body).Decode(&patched); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	if patched["notes"] != "renewal due in March" {
		t.Errorf("expected notes updated, got %v", patched["notes"])
	}
	if _, has := patched["jurisdictionName"]; has {
		t.Errorf("expected jurisdiction cleared, got %v", patched["jurisdictionName"])
	}
	if patched["businessTypeName"] != "Restaurant" {
		t.Errorf("expected businessTypeName untouched, got %v", patched["businessTypeName"])
	}

	// Delete, then verify it is gone.
	del := doJSON(t, app, token, http.MethodDelete, "/api/v1/businesses/"+bizID, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", del.Code)
	}
	if again := doJSON(t, app, token, http.MethodDelete, "/api/v1/businesses/"+bizID, nil); again.Code != http.StatusNotFound {
		t.Fatalf("delete twice: expected 404, got %d", again.Code)
	}
}

func TestBusinessDeleteCascadesDocuments(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses", map[string]any{"name": "Mario's Pizza"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create business: expected 201, got %d", resp.Code)
	}
	var biz struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&biz); err != nil {
		t.Fatalf("decode: %v", err)
	}

	docResp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses/"+biz.ID+"/documents", map[string]any{
		"title": "Operating Permit",
	})
	if docResp.Code != http.StatusCreated {
		t.Fatalf("create document: expected 201, got %d: %s", docResp.Code, docResp.Body.String())
	}

	if del := doJSON(t, app, token, http.MethodDelete, "/api/v1/businesses/"+biz.ID, nil); del.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", del.Code)
	}

	// The documents are gone with the business.
	if list := doJSON(t, app, token, http.MethodGet, "/api/v1/businesses/"+biz.ID+"/documents", nil); list.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after cascade delete, got %d", list.Code)
	}
}

func TestBusinessIsolationBetweenUsers(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses", map[string]any{"name": "Mario's Pizza"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.Code)
	}
	var biz struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&biz); err != nil {
		t.Fatalf("decode: %v", err)
	}

	otherToken, err := sharedauth.SignJWT(sharedauth.Claims{Sub: "google:intruder", Email: "other@example.com"})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	if patch := doJSON(t, app, otherToken, http.MethodPatch, "/api/v1/businesses/"+biz.ID, map[string]any{"name": "Hijacked"}); patch.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign business, got %d", patch.Code)
	}
}
