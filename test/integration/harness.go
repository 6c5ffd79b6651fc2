// Package integration provides a reusable test harness for end-to-end
// testing of the AppSchmiede builder server. It starts a full HTTP server
// with in-memory stores, an optional stub completion endpoint, and an
// HS256 session-token issuer.
package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/billing"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/config"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/llm"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/render"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/store"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/transport"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/widget"
)

const webhookSecret = "whsec_integration"

// TestHarness encapsulates a fully wired builder server instance.
type TestHarness struct {
	t      *testing.T
	server *httptest.Server
	issuer *tokenIssuer

	// Internal components exposed for advanced test scenarios.
	Pages  *store.MemoryPageStore
	Ledger *billing.MemoryLedger
	Events *billing.MemoryEventStore

	cfg *config.Config
}

// HarnessOption configures the test harness.
type HarnessOption func(*harnessConfig)

type harnessConfig struct {
	authEnabled    bool
	llmHandler     http.HandlerFunc
	captureDevice  widget.CaptureDevice
	handlerTimeout time.Duration
}

// WithAuth enables bearer-token authentication on the API routes.
func WithAuth() HarnessOption {
	return func(c *harnessConfig) {
		c.authEnabled = true
	}
}

// WithCompletionStub serves the given handler as the chat completion
// endpoint and configures an API key, so generation prefers the model.
func WithCompletionStub(handler http.HandlerFunc) HarnessOption {
	return func(c *harnessConfig) {
		c.llmHandler = handler
	}
}

// WithCaptureDevice injects an audio capture device for the recorder
// transitions.
func WithCaptureDevice(dev widget.CaptureDevice) HarnessOption {
	return func(c *harnessConfig) {
		c.captureDevice = dev
	}
}

// WithHandlerTimeout sets the per-request handler timeout.
func WithHandlerTimeout(d time.Duration) HarnessOption {
	return func(c *harnessConfig) {
		c.handlerTimeout = d
	}
}

// NewTestHarness creates and starts a full builder server instance. The
// server is automatically cleaned up when the test completes.
func NewTestHarness(t *testing.T, opts ...HarnessOption) *TestHarness {
	t.Helper()

	hc := &harnessConfig{
		handlerTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(hc)
	}

	h := &TestHarness{
		t:      t,
		Pages:  store.NewMemoryPageStore(),
		Ledger: billing.NewMemoryLedger(),
		Events: billing.NewMemoryEventStore(time.Hour),
	}

	t.Setenv("APPSCHMIEDE_AUTH_SECRET", sessionSecret)
	t.Setenv("APPSCHMIEDE_WEBHOOK_SECRET", webhookSecret)

	cfg := config.Defaults()
	cfg.Server.HandlerTimeout = hc.handlerTimeout
	cfg.Server.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Auth.Enabled = hc.authEnabled
	h.cfg = cfg

	llmCfg := llm.Config{Timeout: 5 * time.Second}
	if hc.llmHandler != nil {
		stub := httptest.NewServer(hc.llmHandler)
		t.Cleanup(stub.Close)
		llmCfg.APIKey = "test-key"
		llmCfg.BaseURL = stub.URL
	}

	var recorder *widget.Recorder
	if hc.captureDevice != nil {
		recorder = widget.NewRecorder(hc.captureDevice)
	}

	h.issuer = newTokenIssuer(cfg.Auth)

	router := transport.NewRouter(transport.Dependencies{
		Config:   cfg,
		Logger:   zap.NewNop(),
		LLM:      llm.NewClient(llmCfg, nil),
		Store:    h.Pages,
		Renderer: render.NewRenderer(nil),
		Webhook:  billing.NewProcessor(webhookSecret, h.Events, h.Ledger, nil),
		Recorder: recorder,
	})

	h.server = httptest.NewServer(router)
	t.Cleanup(h.server.Close)

	return h
}

// BaseURL returns the test server's base URL.
func (h *TestHarness) BaseURL() string {
	return h.server.URL
}

// GenerateToken creates a valid session token for the given subject.
func (h *TestHarness) GenerateToken(subject string) string {
	return h.issuer.GenerateToken(subject)
}

// GenerateExpiredToken creates a session token that expired in the past.
func (h *TestHarness) GenerateExpiredToken(subject string) string {
	return h.issuer.GenerateExpiredToken(subject)
}

// --- HTTP client helpers ---

// GET performs an authenticated GET request.
func (h *TestHarness) GET(path, token string) *http.Response {
	h.t.Helper()
	return h.doRequest("GET", path, nil, token, nil)
}

// POST performs an authenticated POST request with a JSON body.
func (h *TestHarness) POST(path string, body any, token string) *http.Response {
	h.t.Helper()
	return h.doRequest("POST", path, body, token, nil)
}

// POSTWithHeaders performs a POST request with additional headers.
func (h *TestHarness) POSTWithHeaders(path string, body any, token string, headers map[string]string) *http.Response {
	h.t.Helper()
	return h.doRequest("POST", path, body, token, headers)
}

// POSTRaw performs a POST request with a raw, pre-serialized body. Used by
// webhook tests where the signature covers the exact bytes.
func (h *TestHarness) POSTRaw(path string, body []byte, headers map[string]string) *http.Response {
	h.t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), "POST", h.server.URL+path, strings.NewReader(string(body)))
	if err != nil {
		h.t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		h.t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// PUT performs an authenticated PUT request with a JSON body.
func (h *TestHarness) PUT(path string, body any, token string) *http.Response {
	h.t.Helper()
	return h.doRequest("PUT", path, body, token, nil)
}

// DELETE performs an authenticated DELETE request.
func (h *TestHarness) DELETE(path, token string) *http.Response {
	h.t.Helper()
	return h.doRequest("DELETE", path, nil, token, nil)
}

func (h *TestHarness) doRequest(method, path string, body any, token string, headers map[string]string) *http.Response {
	h.t.Helper()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			h.t.Fatalf("marshal request body: %v", err)
		}
		bodyReader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(context.Background(), method, h.server.URL+path, bodyReader)
	if err != nil {
		h.t.Fatalf("create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		h.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

// ParseJSON reads the response body and unmarshals it into the target.
func (h *TestHarness) ParseJSON(resp *http.Response, target any) {
	h.t.Helper()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		h.t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		h.t.Fatalf("unmarshal response body: %v\nbody: %s", err, string(data))
	}
}

// AssertStatus checks that the response has the expected status code.
func (h *TestHarness) AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Errorf("status = %d, want %d\nbody: %s", resp.StatusCode, expected, string(body))
	}
}

// AssertJSON checks that the response has the expected status and parses
// the body.
func (h *TestHarness) AssertJSON(t *testing.T, resp *http.Response, expected int, target any) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("status = %d, want %d\nbody: %s", resp.StatusCode, expected, string(body))
	}
	h.ParseJSON(resp, target)
}
