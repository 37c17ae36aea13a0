package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nansinho/innovtec-v2/internal/ai"
)

// stubGenerator returns a canned generation or error.
type stubGenerator struct {
	out    *ai.Generation
	err    error
	lastIn ai.GenerateInput
	called bool
}

func (s *stubGenerator) Generate(_ context.Context, input ai.GenerateInput) (*ai.Generation, error) {
	s.called = true
	s.lastIn = input
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func aiContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", uint64(7))
	c.Set("userRole", "technicien")
	c.Request = httptest.NewRequest(http.MethodPost, "/v0/front/ai/generate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestGenerateReturnsResultAndRemaining(t *testing.T) {
	stub := &stubGenerator{out: &ai.Generation{
		Result:           ai.ParseResult(`{"title":"Coupure réseau"}`),
		CreditsRemaining: 29,
	}}
	h := NewAIHandler(stub)

	c, w := aiContext(t, `{"task":"news","prompt":"coupure fibre secteur nord","context":"chantier A12"}`)
	h.Generate(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Result           map[string]any `json:"result"`
		CreditsRemaining int64          `json:"credits_remaining"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Result["title"] != "Coupure réseau" {
		t.Fatalf("unexpected result: %v", resp.Result)
	}
	if resp.CreditsRemaining != 29 {
		t.Fatalf("expected 29 credits remaining, got %d", resp.CreditsRemaining)
	}
	if stub.lastIn.UserID != 7 || stub.lastIn.Task != ai.TaskNews || stub.lastIn.Context != "chantier A12" {
		t.Fatalf("unexpected gateway input: %+v", stub.lastIn)
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	stub := &stubGenerator{}
	h := NewAIHandler(stub)

	c, w := aiContext(t, `{"task":"news","prompt":"  "}`)
	h.Generate(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if stub.called {
		t.Fatalf("gateway should not be called on empty prompt")
	}
}

func TestGenerateMapsQuotaErrorTo429(t *testing.T) {
	stub := &stubGenerator{err: &ai.QuotaError{Used: 30, Limit: 30}}
	h := NewAIHandler(stub)

	c, w := aiContext(t, `{"task":"news","prompt":"p"}`)
	h.Generate(c)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Error        string `json:"error"`
		CreditsUsed  int64  `json:"credits_used"`
		CreditsLimit int64  `json:"credits_limit"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.CreditsUsed != 30 || resp.CreditsLimit != 30 {
		t.Fatalf("expected 30/30 credits in body, got %d/%d", resp.CreditsUsed, resp.CreditsLimit)
	}
	if !strings.Contains(resp.Error, "crédits") {
		t.Fatalf("expected a French quota message, got %q", resp.Error)
	}
}

func TestGenerateMapsInvalidInputTo400(t *testing.T) {
	stub := &stubGenerator{err: ai.ErrInvalidInput}
	h := NewAIHandler(stub)

	c, w := aiContext(t, `{"task":"bogus","prompt":"p"}`)
	h.Generate(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGenerateMapsProviderErrorTo502(t *testing.T) {
	stub := &stubGenerator{err: &ai.ProviderError{StatusCode: http.StatusInternalServerError}}
	h := NewAIHandler(stub)

	c, w := aiContext(t, `{"task":"news","prompt":"p"}`)
	h.Generate(c)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGenerateRequiresAuth(t *testing.T) {
	stub := &stubGenerator{}
	h := NewAIHandler(stub)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v0/front/ai/generate", strings.NewReader(`{"task":"news","prompt":"p"}`))

	h.Generate(c)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}
