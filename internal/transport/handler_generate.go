package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/generate"
	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// maxRequestBody caps request body reads across the API handlers.
const maxRequestBody = 1 << 20

type generateRequest struct {
	Prompt   string `json:"prompt"`
	PageName string `json:"pageName,omitempty"`
}

type generateResponse struct {
	Page        model.PageTree       `json:"page"`
	Source      string               `json:"source"`
	Diagnostics *generateDiagnostics `json:"diagnostics,omitempty"`
}

type generateDiagnostics struct {
	Reason string `json:"reason"`
}

type generatePagesResponse struct {
	Pages []model.PageTree `json:"pages"`
}

// handleGeneratePage generates a single page, preferring the language model
// and falling back to the deterministic builders.
func (s *Server) handleGeneratePage(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	start := time.Now()
	result := s.llm.GeneratePage(r.Context(), req.Prompt, req.PageName)
	if s.metrics != nil {
		s.metrics.RecordGeneration("single", result.Source, time.Since(start))
	}

	resp := generateResponse{
		Page:   result.Page,
		Source: result.Source,
	}
	if result.Reason != "" {
		resp.Diagnostics = &generateDiagnostics{Reason: result.Reason}
	}

	s.logger.Info("page generated",
		zap.String("page_name", result.Page.Name),
		zap.String("source", result.Source))
	WriteJSON(w, http.StatusOK, resp)
}

// handleGeneratePages generates the full deterministic page set for a prompt.
func (s *Server) handleGeneratePages(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	start := time.Now()
	pages := generate.GeneratePages(req.Prompt)
	if s.metrics != nil {
		s.metrics.RecordGeneration("multi", "fallback", time.Since(start))
		s.metrics.RecordGeneratedPages(len(pages))
	}

	s.logger.Info("pages generated", zap.Int("count", len(pages)))
	WriteJSON(w, http.StatusOK, generatePagesResponse{Pages: pages})
}

// decodeJSON reads a JSON request body into dst with a size cap.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return model.NewBadRequestError("unable to read request body")
	}
	if len(body) == 0 {
		return model.NewBadRequestError("request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return model.NewBadRequestError("invalid JSON: " + err.Error())
	}
	return nil
}
