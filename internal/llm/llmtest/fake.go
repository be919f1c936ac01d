// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"
)

// Response is one scripted reply.
type Response struct {
	Text string
	Err  error
}

// Fake replays Responses in order and records every prompt. Once the script
// runs out the last response repeats.
type Fake struct {
	mu        sync.Mutex
	responses []Response
	Prompts   []string
}

// New returns a Fake that replies with the given responses.
func New(responses ...Response) *Fake {
	return &Fake{responses: responses}
}

// Text is shorthand for a Fake that always returns text.
func Text(text string) *Fake {
	return New(Response{Text: text})
}

// Failing is shorthand for a Fake that always fails with err.
func Failing(err error) *Fake {
	return New(Response{Err: err})
}

func (f *Fake) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	idx := len(f.Prompts) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	r := f.responses[idx]
	return r.Text, r.Err
}

// Calls reports how many prompts were sent.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Prompts)
}
