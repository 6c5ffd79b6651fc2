package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

const validPageJSON = `{"name":"Profil","tree":{"id":"root","type":"container","children":[{"id":"t1","type":"text","props":{"text":"Hallo"}}]}}`

func TestGeneratePage_missingAPIKeyFallsBack(t *testing.T) {
	c := NewClient(Config{}, nil)

	res := c.GeneratePage(context.Background(), "login", "")

	if res.Source != SourceFallback {
		t.Errorf("Source = %q, want fallback", res.Source)
	}
	if res.Reason != ReasonMissingAPIKey {
		t.Errorf("Reason = %q, want %q", res.Reason, ReasonMissingAPIKey)
	}
	// The fallback page is a real page, not a placeholder.
	var email, password bool
	res.Page.Tree.Walk(func(n *model.Node) bool {
		if n.Type == model.NodeInput {
			switch n.Props.InputType {
			case "email":
				email = true
			case "password":
				password = true
			}
		}
		return true
	})
	if !email || !password {
		t.Errorf("fallback login page inputs: email=%v password=%v", email, password)
	}
}

func TestGeneratePage_missingPromptFallsBack(t *testing.T) {
	c := NewClient(Config{APIKey: "sk-test"}, nil)

	res := c.GeneratePage(context.Background(), "   ", "Start")

	if res.Source != SourceFallback || res.Reason != ReasonMissingPrompt {
		t.Errorf("got (%q, %q), want (fallback, missing_prompt)", res.Source, res.Reason)
	}
	if res.Page.Tree == nil {
		t.Fatal("fallback must still carry a tree")
	}
}

func TestGeneratePage_validCompletion(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(completionBody(t, validPageJSON))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	res := c.GeneratePage(context.Background(), "Profilseite bitte", "")

	if res.Source != SourceOpenAI {
		t.Fatalf("Source = %q (reason %q), want openai", res.Source, res.Reason)
	}
	if res.Page.Name != "Profil" {
		t.Errorf("Name = %q, want Profil", res.Page.Name)
	}
	if res.Page.Tree.ID != model.RootNodeID {
		t.Errorf("root id = %q", res.Page.Tree.ID)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	// Defaults are normalized onto the model's tree.
	if res.Page.Tree.Children[0].H == 0 {
		t.Error("frame defaults not applied to model output")
	}
}

func TestGeneratePage_upstreamErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	res := c.GeneratePage(context.Background(), "irgendwas", "")

	if res.Source != SourceFallback || res.Reason != ReasonOpenAIError {
		t.Errorf("got (%q, %q), want (fallback, openai_error)", res.Source, res.Reason)
	}
}

func TestGeneratePage_badShapesFallBack(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "Hier ist deine Seite! ```json ..."},
		{"tree missing", `{"name":"X"}`},
		{"tree not an object", `{"name":"X","tree":"root"}`},
		{"wrong root id", `{"name":"X","tree":{"id":"page","type":"container"}}`},
		{"unknown node type", `{"name":"X","tree":{"id":"root","type":"container","children":[{"id":"v","type":"video"}]}}`},
		{"empty content", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write(completionBody(t, tt.content))
			}))
			defer srv.Close()

			c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
			res := c.GeneratePage(context.Background(), "mach was", "")

			if res.Source != SourceFallback {
				t.Fatalf("Source = %q, want fallback", res.Source)
			}
			if res.Reason != ReasonParseFailedOrEmpty {
				t.Errorf("Reason = %q, want %q", res.Reason, ReasonParseFailedOrEmpty)
			}
		})
	}
}

func TestGeneratePage_requestedNameOverridesModelName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(completionBody(t, validPageJSON))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	res := c.GeneratePage(context.Background(), "Profilseite", "Mein Profil")

	if res.Page.Name != "Mein Profil" {
		t.Errorf("Name = %q, want requested name", res.Page.Name)
	}
}
