package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// ==========================================================================
// Completion source and fallback behavior
// ==========================================================================

type generateResult struct {
	Page        model.PageTree `json:"page"`
	Source      string         `json:"source"`
	Diagnostics *struct {
		Reason string `json:"reason"`
	} `json:"diagnostics"`
}

// completionStub returns a chat completion whose content is the given
// string.
func completionStub(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}
}

func TestGeneration_modelResponseIsUsed(t *testing.T) {
	page := `{"name":"Modellseite","tree":{"id":"root","type":"container","children":[{"id":"t1","type":"text","props":{"text":"Hallo"}}]}}`
	h := NewTestHarness(t, WithCompletionStub(completionStub(page)))

	var out generateResult
	resp := h.POST("/api/generate", map[string]string{"prompt": "Begrüßungsseite"}, "")
	h.AssertJSON(t, resp, http.StatusOK, &out)

	if out.Source != "openai" {
		t.Fatalf("source = %q, want openai", out.Source)
	}
	if out.Diagnostics != nil {
		t.Errorf("diagnostics = %+v, want none on the model path", out.Diagnostics)
	}
	if out.Page.Name != "Modellseite" {
		t.Errorf("page name = %q, want Modellseite", out.Page.Name)
	}
	// Frame defaults must be applied to model output too.
	if out.Page.Tree.Children[0].W == 0 {
		t.Error("expected default frame on model-produced node")
	}
}

func TestGeneration_upstreamErrorFallsBack(t *testing.T) {
	h := NewTestHarness(t, WithCompletionStub(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	var out generateResult
	resp := h.POST("/api/generate", map[string]string{"prompt": "Startseite"}, "")
	h.AssertJSON(t, resp, http.StatusOK, &out)

	if out.Source != "fallback" {
		t.Fatalf("source = %q, want fallback", out.Source)
	}
	if out.Diagnostics == nil || out.Diagnostics.Reason != "openai_error" {
		t.Errorf("diagnostics = %+v, want reason openai_error", out.Diagnostics)
	}
	if out.Page.Tree == nil {
		t.Error("fallback produced no page")
	}
}

func TestGeneration_malformedCompletionFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "Hier ist deine Seite: viel Spaß!"},
		{"tree missing", `{"name":"Kaputt"}`},
		{"tree not an object", `{"name":"Kaputt","tree":[1,2,3]}`},
		{"unknown node type", `{"name":"Kaputt","tree":{"id":"root","type":"video"}}`},
		{"wrong root id", `{"name":"Kaputt","tree":{"id":"main","type":"container"}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewTestHarness(t, WithCompletionStub(completionStub(tc.content)))

			var out generateResult
			resp := h.POST("/api/generate", map[string]string{"prompt": "Startseite"}, "")
			h.AssertJSON(t, resp, http.StatusOK, &out)

			if out.Source != "fallback" {
				t.Fatalf("source = %q, want fallback", out.Source)
			}
			if out.Diagnostics == nil || out.Diagnostics.Reason != "parse_failed_or_empty" {
				t.Errorf("diagnostics = %+v, want reason parse_failed_or_empty", out.Diagnostics)
			}
		})
	}
}

func TestGeneration_emptyPromptSkipsModel(t *testing.T) {
	called := false
	h := NewTestHarness(t, WithCompletionStub(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	var out generateResult
	resp := h.POST("/api/generate", map[string]string{"prompt": "   "}, "")
	h.AssertJSON(t, resp, http.StatusOK, &out)

	if called {
		t.Error("completion endpoint called for an empty prompt")
	}
	if out.Source != "fallback" || out.Diagnostics == nil || out.Diagnostics.Reason != "missing_prompt" {
		t.Errorf("got source=%q diagnostics=%+v, want fallback/missing_prompt", out.Source, out.Diagnostics)
	}
}
