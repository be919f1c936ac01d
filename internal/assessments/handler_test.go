package assessments

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

func setupInterviewRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t, llmtest.Text(quizJSON))
	tokens, err := auth.NewTokens("test-secret", "dev", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	token, err := tokens.Sign(auth.Identity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Auth(tokens))
	NewHandler(svc).RegisterRoutes(api)
	return r, token
}

func TestQuizAndAssessmentFlow(t *testing.T) {
	r, token := setupInterviewRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/quiz", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var quiz struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &quiz); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}

	body, _ := json.Marshal(map[string]any{
		"questions": quiz.Questions,
		"answers":   []string{"Garbage collection", "go"},
		"score":     100,
	})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/interview/assessments", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/interview/assessments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	var list []Assessment
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].QuizScore != 100 || list[0].ImprovementTip != nil {
		t.Fatalf("unexpected assessments %+v", list)
	}
}

func TestSaveAssessmentRejectsScoreOutOfRange(t *testing.T) {
	r, token := setupInterviewRouter(t)
	body := []byte(`{"questions":[{"question":"q","options":["a","b","c","d"],"correctAnswer":"a"}],"answers":["a"],"score":140}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/assessments", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
