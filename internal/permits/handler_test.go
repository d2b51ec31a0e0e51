package permits_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"permits-backend/internal/bootstrap"
	sharedauth "permits-backend/internal/shared/auth"
	"permits-backend/internal/shared/config"
)

const testUserID = "google:1234"

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
		Sub:   testUserID,
		Email: "mario@example.com",
		Name:  "Mario Rossi",
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

func createBusiness(t *testing.T, app *bootstrap.App, token, name string) string {
	t.Helper()
	resp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses", map[string]any{"name": name})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create business: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode business: %v", err)
	}
	return created.ID
}

func TestDocumentCreateNormalizesFields(t *testing.T) {
	app, token := newTestApp(t)
	bizID := createBusiness(t, app, token, "Mario's Pizza")

	resp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses/"+bizID+"/documents", map[string]any{
		"documentCategory":     "license",
		"title":                "Food Service License",
		"permitNumber":         "FSL-2026-001",
		"status":               "pending renewal",
		"startDate":            "03/15/2026",
		"endDate":              "2027-03-15",
		"autoRenew":            "yes",
		"jurisdictionName":     "Travis County",
		"issuingAuthorityName": "Health Department",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc["documentCategory"] != "LICENSE" {
		t.Errorf("expected category LICENSE, got %v", doc["documentCategory"])
	}
	if doc["status"] != "PENDING_RENEWAL" {
		t.Errorf("expected status PENDING_RENEWAL, got %v", doc["status"])
	}
	if doc["startDate"] != "2026-03-15" {
		t.Errorf("expected startDate 2026-03-15, got %v", doc["startDate"])
	}
	if doc["autoRenew"] != true {
		t.Errorf("expected autoRenew true, got %v", doc["autoRenew"])
	}
	if doc["jurisdictionName"] != "Travis County" {
		t.Errorf("expected jurisdictionName Travis County, got %v", doc["jurisdictionName"])
	}
}

func TestDocumentCreateRejectsForgedFileRef(t *testing.T) {
	app, token := newTestApp(t)
	bizID := createBusiness(t, app, token, "Mario's Pizza")

	resp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses/"+bizID+"/documents", map[string]any{
		"title":            "Stolen Permit",
		"sourceFileBucket": "business-documents",
		"sourceFilePath":   "google:9999/2026-08-29/other-users-file.pdf",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}

	// Nothing must have been persisted.
	listResp := doJSON(t, app, token, http.MethodGet, "/api/v1/businesses/"+bizID+"/documents", nil)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", listResp.Code)
	}
	var list []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after rejected create, got %d", len(list))
	}
}

func TestDocumentUpdateFileRefLifecycle(t *testing.T) {
	app, token := newTestApp(t)
	bizID := createBusiness(t, app, token, "Mario's Pizza")

	filePath := testUserID + "/2026-08-29/abc123.pdf"
	resp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses/"+bizID+"/documents", map[string]any{
		"title":                 "Operating Permit",
		"sourceFileBucket":      "business-documents",
		"sourceFilePath":        filePath,
		"sourceFileContentType": "application/pdf",
		"sourceFileName":        "permit.pdf",
		"sourceFileSize":        4096,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	docID, _ := doc["id"].(string)
	if docID == "" {
		t.Fatalf("expected document id")
	}

	// A patch that does not mention the file keeps the reference.
	patch := doJSON(t, app, token, http.MethodPatch, "/api/v1/businesses/"+bizID+"/documents/"+docID, map[string]any{
		"title": "Operating Permit (renewed)",
	})
	if patch.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", patch.Code, patch.Body.String())
	}
	var patched map[string]any
	if err := json.NewDecoder(patch.Body).Decode(&patched); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	if patched["sourceFilePath"] != filePath {
		t.Fatalf("expected file reference kept, got %v", patched["sourceFilePath"])
	}
	if patched["title"] != "Operating Permit (renewed)" {
		t.Fatalf("expected updated title, got %v", patched["title"])
	}

	// Blank bucket and path clear the reference.
	clearResp := doJSON(t, app, token, http.MethodPatch, "/api/v1/businesses/"+bizID+"/documents/"+docID, map[string]any{
		"sourceFileBucket": "",
		"sourceFilePath":   "",
	})
	if clearResp.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d: %s", clearResp.Code, clearResp.Body.String())
	}
	var cleared map[string]any
	if err := json.NewDecoder(clearResp.Body).Decode(&cleared); err != nil {
		t.Fatalf("decode clear: %v", err)
	}
	if _, has := cleared["sourceFilePath"]; has {
		t.Fatalf("expected file reference cleared, got %v", cleared["sourceFilePath"])
	}

	// With no file attached the download route reports not found.
	fileResp := doJSON(t, app, token, http.MethodGet, "/api/v1/businesses/"+bizID+"/documents/"+docID+"/file", nil)
	if fileResp.Code != http.StatusNotFound {
		t.Fatalf("file: expected 404, got %d", fileResp.Code)
	}
}

func TestDocumentFileStreaming(t *testing.T) {
	app, token := newTestApp(t)
	bizID := createBusiness(t, app, token, "Mario's Pizza")

	// Seed the local object store directly.
	key := testUserID + "/2026-08-29/stream.pdf"
	full := filepath.Join(app.Cfg.LocalStoreDir, app.Cfg.StorageBucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := []byte("%PDF-1.4 test content")
	if err := os.WriteFile(full, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	resp := doJSON(t, app, token, http.MethodPost, "/api/v1/businesses/"+bizID+"/documents", map[string]any{
		"title":                 "Streamable Permit",
		"sourceFileBucket":      "business-documents",
		"sourceFilePath":        key,
		"sourceFileContentType": "application/pdf",
		"sourceFileName":        "permit.pdf",
		"sourceFileSize":        len(content),
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	fileResp := doJSON(t, app, token, http.MethodGet, "/api/v1/businesses/"+bizID+"/documents/"+doc.ID+"/file", nil)
	if fileResp.Code != http.StatusOK {
		t.Fatalf("file: expected 200, got %d: %s", fileResp.Code, fileResp.Body.String())
	}
	if got := fileResp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", got)
	}
	if !bytes.Equal(fileResp.Body.Bytes(), content) {
		t.Errorf("streamed content mismatch")
	}
}

func TestDocumentRoutesRequireOwnedBusiness(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, token, http.MethodGet, "/api/v1/businesses/no-such-business/documents", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = doJSON(t, app, token, http.MethodPost, "/api/v1/businesses/no-such-business/documents", map[string]any{
		"title": "Permit",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
