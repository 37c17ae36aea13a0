package ai

import (
	"encoding/json"
	"strings"
)

// Result is the parsed provider output: either structured JSON or, when the
// model ignored the output contract, the raw text. Callers must branch on
// IsStructured; a degraded result is still a successful generation.
type Result struct {
	structured json.RawMessage
	raw        string
}

// ParseResult defensively parses untrusted model output.
func ParseResult(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return Result{structured: json.RawMessage(trimmed)}
	}
	return Result{raw: text}
}

// StructuredResult wraps already-valid JSON, for tests.
func StructuredResult(raw json.RawMessage) Result {
	return Result{structured: raw}
}

// IsStructured reports whether the model honored the JSON contract.
func (r Result) IsStructured() bool {
	return r.structured != nil
}

// Raw returns the unparsed text for degraded results.
func (r Result) Raw() string {
	return r.raw
}

// MarshalJSON renders the structured payload as-is, or the raw fallback as
// {"raw": text}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.structured != nil {
		return r.structured, nil
	}
	return json.Marshal(map[string]string{"raw": r.raw})
}
