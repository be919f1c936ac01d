package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestTextFromResponseJoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("```json\n"), genai.Text(`{"a":1}`), genai.Text("\n```")}},
		}},
	}
	got, err := textFromResponse(resp)
	if err != nil {
		t.Fatalf("textFromResponse: %v", err)
	}
	if got != "```json\n{\"a\":1}\n```" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTextFromResponseErrors(t *testing.T) {
	cases := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}}}},
	}
	for i, resp := range cases {
		if _, err := textFromResponse(resp); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error without api key")
	}
}
