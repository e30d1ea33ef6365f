package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"proofgate/internal/services"
)

// DecodeLLMJSON decodes JSON from an LLM response, handling common formatting
// quirks such as code fences and leading prose.
func DecodeLLMJSON(content string, target any) error {
	payload, err := ExtractJSON(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return fmt.Errorf("%w (payload snippet: %s)", err, summarizePayloadSnippet(payload))
	}
	return nil
}

// ExtractJSON returns the JSON document embedded in an LLM response. Content
// that already parses is returned unchanged.
func ExtractJSON(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", errors.New("empty payload")
	}
	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}
	sanitized := sanitizeJSONPayload(trimmed)
	if sanitized == "" || !json.Valid([]byte(sanitized)) {
		return "", fmt.Errorf("no JSON document in payload (payload snippet: %s)", summarizePayloadSnippet(trimmed))
	}
	return sanitized, nil
}

// Schema validates collaborator payloads against a JSON schema before they
// are decoded.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// CompileSchema parses a JSON schema document.
func CompileSchema(name, document string) (*Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Schema{name: name, schema: schema}, nil
}

// MustCompileSchema is CompileSchema for package-level schemas.
func MustCompileSchema(name, document string) *Schema {
	schema, err := CompileSchema(name, document)
	if err != nil {
		panic(err)
	}
	return schema
}

// Decode extracts the JSON payload from content, validates it and unmarshals
// it into target. Every failure is tagged services.ErrContract.
func (s *Schema) Decode(content string, target any) error {
	payload, err := ExtractJSON(content)
	if err != nil {
		return services.Wrap(services.ErrContract, s.name, "extract", "", err)
	}
	result, err := s.schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return services.Wrap(services.ErrContract, s.name, "validate", "", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return services.Wrap(services.ErrContract, s.name, "validate", strings.Join(problems, "; "), nil)
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return services.Wrap(services.ErrContract, s.name, "decode", "", err)
	}
	return nil
}

func sanitizeJSONPayload(content string) string {
	trimmed := strings.TrimSpace(stripCodeFenceBlock(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return trimmed
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	if start := strings.Index(trimmed, "["); start >= 0 {
		if end := strings.LastIndex(trimmed, "]"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func stripCodeFenceBlock(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

func summarizePayloadSnippet(content string) string {
	clean := strings.Join(strings.Fields(content), " ")
	if clean == "" {
		return "<empty>"
	}
	const limit = 160
	if runes := []rune(clean); len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
