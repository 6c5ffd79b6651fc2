package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/observability"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/tree"
	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

type listPagesResponse struct {
	Pages []model.PageTree `json:"pages"`
}

type patchRequest struct {
	TargetID string      `json:"targetId"`
	Patch    model.Patch `json:"patch"`
}

type patchResponse struct {
	Page    model.PageTree `json:"page"`
	Applied bool           `json:"applied"`
}

// handleListPages returns all pages of a project in name order.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	start := time.Now()
	pages, err := s.store.List(r.Context(), projectID)
	s.recordStore("list", err, time.Since(start))
	if err != nil {
		WriteError(w, err)
		return
	}
	if pages == nil {
		pages = []model.PageTree{}
	}
	WriteJSON(w, http.StatusOK, listPagesResponse{Pages: pages})
}

// handleGetPage returns one page by name.
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	pageName := chi.URLParam(r, "pageName")

	start := time.Now()
	page, err := s.store.Get(r.Context(), projectID, pageName)
	s.recordStore("get", err, time.Since(start))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// handlePutPage upserts a whole page document. The tree is validated and
// frame defaults are applied before the document is stored.
func (s *Server) handlePutPage(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	pageName := chi.URLParam(r, "pageName")

	var page model.PageTree
	if err := decodeJSON(r, &page); err != nil {
		WriteError(w, err)
		return
	}
	// The path segment is authoritative for the page name.
	page.Name = pageName

	if err := tree.ValidateTree(page.Tree); err != nil {
		WriteValidationError(w, []model.FieldError{{
			Field:   "tree",
			Code:    model.ErrValidationError,
			Message: err.Error(),
		}})
		return
	}
	if err := tree.ValidateIDs(page.Tree); err != nil {
		WriteValidationError(w, []model.FieldError{{
			Field:   "tree",
			Code:    model.ErrValidationError,
			Message: err.Error(),
		}})
		return
	}
	tree.ApplyDefaults(page.Tree)

	start := time.Now()
	err := s.store.Save(r.Context(), projectID, page)
	s.recordStore("save", err, time.Since(start))
	if err != nil {
		WriteError(w, err)
		return
	}

	s.logger.Info("page saved",
		zap.String("project_id", projectID),
		zap.String("page_name", pageName),
		zap.Int("node_count", tree.CountNodes(page.Tree)))
	WriteJSON(w, http.StatusOK, page)
}

// handleDeletePage removes a page. Deleting a missing page succeeds.
func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	pageName := chi.URLParam(r, "pageName")

	start := time.Now()
	err := s.store.Delete(r.Context(), projectID, pageName)
	s.recordStore("delete", err, time.Since(start))
	if err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePatchPage merges a partial node into the stored page by target id
// and persists the result. A missing target id is a no-op, not an error:
// the unchanged page is returned with applied=false.
func (s *Server) handlePatchPage(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	pageName := chi.URLParam(r, "pageName")

	var req patchRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.TargetID == "" {
		WriteError(w, model.NewBadRequestError("targetId is required"))
		return
	}

	ctx, span := observability.StartSpan(r.Context(), "tree.patch",
		observability.AttrProjectID.String(projectID),
		observability.AttrPageName.String(pageName),
		observability.AttrNodeID.String(req.TargetID))
	defer span.End()

	start := time.Now()
	page, err := s.store.Get(ctx, projectID, pageName)
	s.recordStore("get", err, time.Since(start))
	if err != nil {
		observability.EndSpanWithError(span, err)
		WriteError(w, err)
		return
	}

	patched := tree.ApplyPatch(page.Tree, req.TargetID, req.Patch)
	if patched == page.Tree {
		// Target not present: the editor may have raced a delete.
		if s.metrics != nil {
			s.metrics.RecordPatch("noop")
		}
		WriteJSON(w, http.StatusOK, patchResponse{Page: page, Applied: false})
		return
	}
	page.Tree = patched

	start = time.Now()
	err = s.store.Save(ctx, projectID, page)
	s.recordStore("save", err, time.Since(start))
	if err != nil {
		observability.EndSpanWithError(span, err)
		WriteError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordPatch("applied")
	}
	s.logger.Debug("patch applied",
		zap.String("project_id", projectID),
		zap.String("page_name", pageName),
		zap.String("target_id", req.TargetID))
	WriteJSON(w, http.StatusOK, patchResponse{Page: page, Applied: true})
}

// recordStore records a store operation metric, classifying the error.
func (s *Server) recordStore(operation string, err error, d time.Duration) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		if ee, ok := err.(*model.ErrorEnvelope); ok && ee.Code == model.ErrNotFound {
			status = "not_found"
		}
	}
	s.metrics.RecordStoreOperation(operation, status, d)
}
