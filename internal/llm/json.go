package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMalformedOutput wraps every parse or schema failure of provider output.
var ErrMalformedOutput = errors.New("malformed provider output")

var fenceRe = regexp.MustCompile("```(?:json)?\\n?")

// StripCodeFence removes markdown code fence markers and surrounding whitespace.
func StripCodeFence(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
}

// Schema is a compiled JSON schema for provider output.
type Schema struct {
	s *gojsonschema.Schema
}

// MustSchema compiles a JSON schema literal and panics if it is invalid.
func MustSchema(src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("llm: invalid schema: %v", err))
	}
	return &Schema{s: s}
}

// DecodeJSON strips fences from text, validates it against schema (if any) and decodes into out.
func DecodeJSON(text string, schema *Schema, out any) error {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}
	if !json.Valid([]byte(cleaned)) {
		return fmt.Errorf("%w: invalid json", ErrMalformedOutput)
	}
	if schema != nil && schema.s != nil {
		res, err := schema.s.Validate(gojsonschema.NewStringLoader(cleaned))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		if !res.Valid() {
			msgs := make([]string, 0, len(res.Errors()))
			for _, e := range res.Errors() {
				msgs = append(msgs, e.String())
			}
			return fmt.Errorf("%w: %s", ErrMalformedOutput, strings.Join(msgs, "; "))
		}
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return nil
}
