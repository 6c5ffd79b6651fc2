package transport

import (
	"net/http"
	"time"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

type renderRequest struct {
	Tree *model.Node `json:"tree"`
}

type renderResponse struct {
	Element model.Element `json:"element"`
}

type interpretRequest struct {
	Props model.Props `json:"props"`
}

type interpretResponse struct {
	Effect *model.Effect `json:"effect"`
}

// handleRender resolves a node tree to the element tree the preview
// consumes. The server clock is the render instant; clients polling for
// live values re-render rather than extrapolate.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Tree == nil {
		WriteError(w, model.NewBadRequestError("tree is required"))
		return
	}

	el := s.renderer.Render(req.Tree, time.Now().UTC())
	WriteJSON(w, http.StatusOK, renderResponse{Element: el})
}

// handleInterpretAction maps a button's action props to the effect the
// frontend should execute. Unknown or empty actions yield a null effect.
func (s *Server) handleInterpretAction(w http.ResponseWriter, r *http.Request) {
	var req interpretRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	effect := s.renderer.Interpret(req.Props)
	WriteJSON(w, http.StatusOK, interpretResponse{Effect: effect})
}
