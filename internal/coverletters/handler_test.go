package coverletters

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/llm/llmtest"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/server/middleware"
)

func setupLettersRouter(t *testing.T) (*gin.Engine, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t, llmtest.Text("Dear Hiring Manager"))
	tokens, err := auth.NewTokens("test-secret", "dev", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	bearer := map[string]string{}
	for _, id := range []string{"user-1", "user-2"} {
		tok, err := tokens.Sign(auth.Identity{UserID: id})
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		bearer[id] = tok
	}
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Auth(tokens))
	NewHandler(svc).RegisterRoutes(api)
	return r, bearer
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCoverLetterLifecycle(t *testing.T) {
	r, bearer := setupLettersRouter(t)

	resp := do(r, http.MethodPost, "/api/v1/cover-letters", bearer["user-1"], map[string]string{"jobTitle": "Dev", "companyName": "Acme"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created CoverLetter
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp := do(r, http.MethodGet, "/api/v1/cover-letters/"+created.ID, bearer["user-2"], nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other owner, got %d", resp.Code)
	}
	if resp := do(r, http.MethodDelete, "/api/v1/cover-letters/"+created.ID, bearer["user-2"], nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting other owner's letter, got %d", resp.Code)
	}
	if resp := do(r, http.MethodGet, "/api/v1/cover-letters/"+created.ID, bearer["user-1"], nil); resp.Code != http.StatusOK {
		t.Fatalf("letter should survive foreign delete, got %d", resp.Code)
	}

	resp = do(r, http.MethodPatch, "/api/v1/cover-letters/"+created.ID+"/status", bearer["user-1"], map[string]string{"status": "archived"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	if resp := do(r, http.MethodDelete, "/api/v1/cover-letters/"+created.ID, bearer["user-1"], nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	resp = do(r, http.MethodGet, "/api/v1/cover-letters", bearer["user-1"], nil)
	if resp.Code != http.StatusOK || resp.Body.String() != "[]" {
		t.Fatalf("expected empty list, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestCoverLetterValidation(t *testing.T) {
	r, bearer := setupLettersRouter(t)
	resp := do(r, http.MethodPost, "/api/v1/cover-letters", bearer["user-1"], map[string]string{"jobTitle": "Dev"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"]["code"] != "validation_error" {
		t.Fatalf("unexpected body %v", body)
	}
}
