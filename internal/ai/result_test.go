package ai

import (
	"encoding/json"
	"testing"
)

func TestParseResultStructured(t *testing.T) {
	result := ParseResult(` {"title":"REX chantier","severity":4} `)
	if !result.IsStructured() {
		t.Fatal("expected structured result")
	}

	encoded, errMarshal := json.Marshal(result)
	if errMarshal != nil {
		t.Fatalf("marshal: %v", errMarshal)
	}
	var out map[string]any
	if errUnmarshal := json.Unmarshal(encoded, &out); errUnmarshal != nil {
		t.Fatalf("unmarshal: %v", errUnmarshal)
	}
	if out["title"] != "REX chantier" {
		t.Fatalf("payload lost: %v", out)
	}
}

func TestParseResultRawFallback(t *testing.T) {
	text := "Désolé, je ne peux pas produire de JSON ici."
	result := ParseResult(text)
	if result.IsStructured() {
		t.Fatal("expected raw result")
	}
	if result.Raw() != text {
		t.Fatalf("raw text mangled: %q", result.Raw())
	}

	encoded, errMarshal := json.Marshal(result)
	if errMarshal != nil {
		t.Fatalf("marshal: %v", errMarshal)
	}
	var out map[string]string
	if errUnmarshal := json.Unmarshal(encoded, &out); errUnmarshal != nil {
		t.Fatalf("unmarshal: %v", errUnmarshal)
	}
	if out["raw"] != text {
		t.Fatalf("raw wrapper lost: %v", out)
	}
}

func TestParseResultEmptyIsRaw(t *testing.T) {
	if ParseResult("").IsStructured() {
		t.Fatal("empty output must degrade to raw")
	}
}

func TestBuildSystemPromptVariants(t *testing.T) {
	text := buildSystemPrompt(TaskNews, false)
	if text == "" || text == buildSystemPrompt(TaskDanger, false) {
		t.Fatal("task fragments should differ")
	}

	withFile := buildSystemPrompt(TaskPolitique, true)
	withoutFile := buildSystemPrompt(TaskPolitique, false)
	if withFile == withoutFile {
		t.Fatal("politique prompt should switch to extraction mode with a file")
	}
}
