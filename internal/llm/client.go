// Package llm calls an OpenAI-compatible chat completion endpoint as an
// optional content source for page generation. The deterministic
// generator always backs it: any transport, parse, or shape failure falls
// back, and every response is tagged with its provenance.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/generate"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/tree"
	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// Provenance values for Result.Source.
const (
	SourceOpenAI   = "openai"
	SourceFallback = "fallback"
)

// Machine-readable fallback reasons.
const (
	ReasonMissingAPIKey      = "missing_api_key"
	ReasonMissingPrompt      = "missing_prompt"
	ReasonParseFailedOrEmpty = "parse_failed_or_empty"
	ReasonOpenAIError        = "openai_error"
)

// systemInstruction constrains the model to the page-tree wire format.
// The response must be a single JSON object; anything else is rejected by
// shape validation and the deterministic generator takes over.
const systemInstruction = `Du bist ein Generator für App-Seiten. Antworte ausschließlich mit einem JSON-Objekt der Form {"name": string, "tree": Node}. Der Wurzelknoten hat id "root" und type "container". Erlaubte Knotentypen: text, button, image, input, container. Erlaubte props je Typ: text: {text}; button: {label, action, target, targetPage, url}; input: {placeholder, inputType}; image: {src, alt}; container: {component und passende Konfiguration}. Keine Erklärungen, kein Markdown.`

// Config holds the collaborator settings. An empty APIKey disables the
// remote call entirely.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to the completion endpoint. Construct it once at startup
// and reuse it; it owns its HTTP client and carries no global state.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client. Zero-value config fields get defaults.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Result is a generated page plus its provenance tag. Reason is set only
// on the fallback path.
type Result struct {
	Page   model.PageTree
	Source string
	Reason string
}

// GeneratePage returns a page for the prompt, trying the model first when
// it is configured and falling back to the deterministic generator on any
// failure. The page-name hint is sanitized so a page that merely *is
// named* like an auth page does not bias the model toward regenerating a
// login form. The result is committed synchronously; there is no
// background call that could race a fallback already returned.
func (c *Client) GeneratePage(ctx context.Context, prompt, pageName string) Result {
	hint := generate.SanitizePageNameHint(pageName, prompt)

	if strings.TrimSpace(prompt) == "" {
		return c.fallback(prompt, pageName, ReasonMissingPrompt)
	}
	if c.cfg.APIKey == "" {
		return c.fallback(prompt, pageName, ReasonMissingAPIKey)
	}

	page, err := c.complete(ctx, prompt, hint)
	if err != nil {
		reason := ReasonOpenAIError
		if _, ok := err.(*shapeError); ok {
			reason = ReasonParseFailedOrEmpty
		}
		c.logger.Warn("llm generation failed, using deterministic fallback",
			zap.String("reason", reason),
			zap.Error(err),
		)
		return c.fallback(prompt, pageName, reason)
	}

	if pageName != "" {
		page.Name = pageName
	}
	tree.ApplyDefaults(page.Tree)
	return Result{Page: page, Source: SourceOpenAI}
}

func (c *Client) fallback(prompt, pageName, reason string) Result {
	return Result{
		Page:   generate.GeneratePage(prompt, pageName),
		Source: SourceFallback,
		Reason: reason,
	}
}

// shapeError marks responses that arrived but did not carry a usable
// page.
type shapeError struct{ msg string }

func (e *shapeError) Error() string { return e.msg }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, prompt, pageNameHint string) (model.PageTree, error) {
	user := prompt
	if pageNameHint != "" {
		user = fmt.Sprintf("Seite %q: %s", pageNameHint, prompt)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return model.PageTree{}, fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return model.PageTree{}, fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.PageTree{}, fmt.Errorf("llm: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return model.PageTree{}, fmt.Errorf("llm: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.PageTree{}, fmt.Errorf("llm: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return model.PageTree{}, &shapeError{msg: fmt.Sprintf("decode envelope: %v", err)}
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return model.PageTree{}, &shapeError{msg: "empty completion"}
	}

	return parsePage(cr.Choices[0].Message.Content)
}

// parsePage validates the top-level shape before anything trusts the
// model output: tree must be present, object-typed, rooted correctly,
// and restricted to the five node types.
func parsePage(content string) (model.PageTree, error) {
	var envelope struct {
		Name string          `json:"name"`
		Tree json.RawMessage `json:"tree"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return model.PageTree{}, &shapeError{msg: fmt.Sprintf("decode page: %v", err)}
	}
	if len(envelope.Tree) == 0 || envelope.Tree[0] != '{' {
		return model.PageTree{}, &shapeError{msg: "tree missing or not an object"}
	}

	var root model.Node
	if err := json.Unmarshal(envelope.Tree, &root); err != nil {
		return model.PageTree{}, &shapeError{msg: fmt.Sprintf("decode tree: %v", err)}
	}
	if err := tree.ValidateTree(&root); err != nil {
		return model.PageTree{}, &shapeError{msg: err.Error()}
	}

	name := envelope.Name
	if name == "" {
		name = "Neue Seite"
	}
	return model.PageTree{Name: name, Tree: &root}, nil
}
