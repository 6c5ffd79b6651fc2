package transport

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/observability"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/tree"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/widget"
	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// widgetTransitionRequest carries the transition-specific inputs. Most
// transitions need none; the body is optional.
type widgetTransitionRequest struct {
	Label    string `json:"label,omitempty"`    // time-tracking start, recorder stop
	Confirm  bool   `json:"confirm,omitempty"`  // time-tracking reset
	ParentID string `json:"parentId,omitempty"` // folder add
	Name     string `json:"name,omitempty"`     // folder add
	TaskID   string `json:"taskId,omitempty"`   // task toggle
	Title    string `json:"title,omitempty"`    // task add
	Subject  string `json:"subject,omitempty"`  // support ticket
	Message  string `json:"message,omitempty"`  // support ticket
	Channel  string `json:"channel,omitempty"`  // support ticket
	Role     string `json:"role,omitempty"`     // chat
	Text     string `json:"text,omitempty"`     // chat
	Cell     *int   `json:"cell,omitempty"`     // tic-tac-toe
}

type widgetTransitionResponse struct {
	Page    model.PageTree `json:"page"`
	Node    *model.Node    `json:"node"`
	Applied bool           `json:"applied"`
}

// handleWidgetTransition applies one state transition to a composite
// container node and persists the patched page. The transition vocabulary
// depends on the node's component kind; the new sub-config replaces the
// old one through the tree engine, so unrelated props survive untouched.
func (s *Server) handleWidgetTransition(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	pageName := chi.URLParam(r, "pageName")
	nodeID := chi.URLParam(r, "nodeId")
	transition := chi.URLParam(r, "transition")

	var req widgetTransitionRequest
	if err := decodeJSONOptional(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	ctx, span := observability.StartSpan(r.Context(), "widget.transition",
		observability.AttrProjectID.String(projectID),
		observability.AttrPageName.String(pageName),
		observability.AttrNodeID.String(nodeID),
		observability.AttrTransition.String(transition))
	defer span.End()

	start := time.Now()
	page, err := s.store.Get(ctx, projectID, pageName)
	s.recordStore("get", err, time.Since(start))
	if err != nil {
		observability.EndSpanWithError(span, err)
		WriteError(w, err)
		return
	}

	node := tree.FindNode(page.Tree, nodeID)
	if node == nil {
		WriteNotFound(w, "node not found: "+nodeID)
		return
	}
	if node.Type != model.NodeContainer || node.Props.Component == "" {
		WriteError(w, model.NewBadRequestError("node is not a composite container"))
		return
	}
	component := string(node.Props.Component)
	span.SetAttributes(observability.AttrComponent.String(component))

	props, err := s.applyTransition(ctx, node.Props, transition, req, time.Now().UTC())
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordWidgetTransitionError(component, transition)
		}
		observability.EndSpanWithError(span, err)
		WriteError(w, err)
		return
	}

	patched := tree.ApplyPatch(page.Tree, nodeID, model.Patch{Props: &props})
	applied := patched != page.Tree
	if applied {
		page.Tree = patched

		start = time.Now()
		err = s.store.Save(ctx, projectID, page)
		s.recordStore("save", err, time.Since(start))
		if err != nil {
			observability.EndSpanWithError(span, err)
			WriteError(w, err)
			return
		}
	}

	if s.metrics != nil {
		s.metrics.RecordWidgetTransition(component, transition)
	}
	s.logger.Debug("widget transition",
		zap.String("project_id", projectID),
		zap.String("page_name", pageName),
		zap.String("node_id", nodeID),
		zap.String("component", component),
		zap.String("transition", transition))
	WriteJSON(w, http.StatusOK, widgetTransitionResponse{
		Page:    page,
		Node:    tree.FindNode(page.Tree, nodeID),
		Applied: applied,
	})
}

// applyTransition dispatches on the component kind and transition name and
// returns the props with the affected sub-config replaced.
func (s *Server) applyTransition(ctx context.Context, props model.Props, transition string, req widgetTransitionRequest, now time.Time) (model.Props, error) {
	switch props.Component {
	case model.ComponentTimeTracking:
		tt := model.TimeTracking{}
		if props.TimeTracking != nil {
			tt = *props.TimeTracking
		}
		switch transition {
		case "start":
			if req.Label == "" {
				return props, model.NewBadRequestError("label is required")
			}
			next := widget.StartEntry(tt, req.Label, now)
			props.TimeTracking = &next
		case "stop":
			next := widget.StopEntry(tt, now)
			props.TimeTracking = &next
		case "reset":
			if !req.Confirm {
				return props, model.NewBadRequestError("reset requires confirm")
			}
			next := widget.ResetEntries(tt)
			props.TimeTracking = &next
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentFolderTree:
		switch transition {
		case "add-folder":
			if req.Name == "" {
				return props, model.NewBadRequestError("name is required")
			}
			root := props.FolderTree
			if root == nil {
				root = widget.SeedFolderTree()
			}
			props.FolderTree = widget.AddFolder(root, req.ParentID, req.Name)
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentTasks, model.ComponentTodo:
		switch transition {
		case "toggle-task":
			if req.TaskID == "" {
				return props, model.NewBadRequestError("taskId is required")
			}
			props.Tasks = widget.ToggleTask(props.Tasks, req.TaskID)
		case "add-task":
			if req.Title == "" {
				return props, model.NewBadRequestError("title is required")
			}
			props.Tasks = widget.AddTask(props.Tasks, req.Title)
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentSupport:
		switch transition {
		case "create-ticket":
			if req.Subject == "" {
				return props, model.NewBadRequestError("subject is required")
			}
			props.SupportTickets = widget.CreateTicket(props.SupportTickets, req.Subject, req.Message, req.Channel, now)
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentChat:
		switch transition {
		case "send-message":
			if req.Text == "" {
				return props, model.NewBadRequestError("text is required")
			}
			role := req.Role
			if role == "" {
				role = "user"
			}
			props.ChatMessages = widget.AppendMessage(props.ChatMessages, role, req.Text, now)
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentCalendar:
		cal := widget.CurrentMonth(now)
		if props.Calendar != nil {
			cal = *props.Calendar
		}
		switch transition {
		case "prev-month":
			next := widget.MonthOffset(cal, -1)
			props.Calendar = &next
		case "next-month":
			next := widget.MonthOffset(cal, 1)
			props.Calendar = &next
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentAudioNotes:
		if s.recorder == nil {
			return props, model.NewUpstreamError("no capture device configured")
		}
		switch transition {
		case "record-start":
			if _, err := s.recorder.Start(ctx); err != nil {
				return props, model.NewUpstreamError("capture device: " + err.Error())
			}
		case "record-stop":
			notes, err := s.recorder.Stop(props.AudioNotes, req.Label, now)
			if err != nil {
				return props, model.NewUpstreamError("capture device: " + err.Error())
			}
			props.AudioNotes = notes
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentDice:
		g := model.GameState{}
		if props.Game != nil {
			g = *props.Game
		}
		switch transition {
		case "roll":
			next := widget.RollDice(g, newRNG())
			props.Game = &next
		case "reset":
			props.Game = &model.GameState{}
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentTicTacToe:
		g := widget.NewTicTacToe()
		if props.Game != nil && len(props.Game.Board) == 9 {
			g = *props.Game
		}
		switch transition {
		case "play":
			if req.Cell == nil {
				return props, model.NewBadRequestError("cell is required")
			}
			next := widget.PlayCell(g, *req.Cell)
			props.Game = &next
		case "reset":
			next := widget.NewTicTacToe()
			props.Game = &next
		default:
			return props, unknownTransition(props.Component, transition)
		}

	case model.ComponentSnake:
		g := model.GameState{}
		if props.Game != nil {
			g = *props.Game
		}
		switch transition {
		case "tick":
			next := widget.TickSnake(g, newRNG())
			props.Game = &next
		case "reset":
			props.Game = &model.GameState{}
		default:
			return props, unknownTransition(props.Component, transition)
		}

	default:
		return props, model.NewBadRequestError("component has no transitions: " + string(props.Component))
	}
	return props, nil
}

func unknownTransition(component model.ComponentKind, transition string) error {
	return model.NewBadRequestError("unknown transition " + transition + " for component " + string(component))
}

// newRNG seeds a throwaway generator per request; the demo games need no
// reproducibility across calls.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// decodeJSONOptional reads a JSON body like decodeJSON but treats an empty
// body as the zero value.
func decodeJSONOptional(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return model.NewBadRequestError("unable to read request body")
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return model.NewBadRequestError("invalid JSON: " + err.Error())
	}
	return nil
}
