package insights

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/llm"
	"career-backend/internal/llm/llmtest"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/server/middleware"
)

func setupInsightsRouter(t *testing.T, provider llm.Provider) (*gin.Engine, *fixture, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := newFixture(t, provider)
	tokens, err := auth.NewTokens("test-secret", "dev", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	token, err := tokens.Sign(auth.Identity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	h := NewHandler(f.svc)
	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterJobRoutes(api, middleware.CronSecret("cron-secret"))
	protected := api.Group("")
	protected.Use(middleware.Auth(tokens))
	h.RegisterRoutes(protected)
	return r, f, token
}

func getInsights(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGetInsightsEndpoint(t *testing.T) {
	r, f, token := setupInsightsRouter(t, llmtest.Text(validInsightJSON))

	if resp := getInsights(r, token); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without profile, got %d", resp.Code)
	}

	f.onboard(t, "user-1", "Technology")
	resp := getInsights(r, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["demandLevel"] != "High" {
		t.Fatalf("unexpected body %v", body)
	}
	next, ok := body["nextUpdate"].(string)
	if !ok {
		t.Fatalf("expected nextUpdate string, got %T", body["nextUpdate"])
	}
	if _, err := time.Parse(time.RFC3339, next); err != nil {
		t.Fatalf("nextUpdate not ISO-8601: %v", err)
	}
}

func TestGetInsightsUpstreamFailure(t *testing.T) {
	r, f, token := setupInsightsRouter(t, llmtest.Text("not json at all"))
	f.onboard(t, "user-1", "Technology")

	if resp := getInsights(r, token); resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestSweepHookRequiresSecret(t *testing.T) {
	r, f, _ := setupInsightsRouter(t, llmtest.Text(validInsightJSON))
	f.seed(t, "Technology", f.now.Add(-time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/insights/sweep", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/jobs/insights/sweep", nil)
	req.Header.Set("X-Cron-Secret", "cron-secret")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var report SweepReport
	if err := json.Unmarshal(resp.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Industries != 1 || report.Refreshed != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}
