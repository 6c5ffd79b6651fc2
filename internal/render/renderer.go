// Package render maps page-tree nodes plus their live state to the view
// model the preview frontend consumes, and interprets button actions into
// side-effect descriptors. It never throws for malformed props; missing
// configs are substituted with safe defaults.
package render

import (
	"time"

	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/widget"
	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// Renderer resolves nodes against live state. It is stateless apart from
// its logger and safe for concurrent use.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger}
}

// Render maps a node tree to its element tree at the given instant. The
// instant drives display-only values such as the running time entry's
// elapsed seconds; callers refresh at 1 Hz for live display.
func (r *Renderer) Render(n *model.Node, now time.Time) model.Element {
	if n == nil {
		return model.Element{}
	}

	w, h := n.W, n.H
	if w == 0 || h == 0 {
		dw, dh := model.DefaultFrame(n.Type)
		if w == 0 {
			w = dw
		}
		if h == 0 {
			h = dh
		}
	}

	el := model.Element{
		ID:    n.ID,
		Kind:  string(n.Type),
		X:     n.X,
		Y:     n.Y,
		W:     w,
		H:     h,
		Style: n.Style,
	}

	switch n.Type {
	case model.NodeText:
		el.Text = n.Props.Text
	case model.NodeButton:
		el.Text = n.Props.Label
		el.OnTap = r.Interpret(n.Props)
	case model.NodeImage:
		el.Src = n.Props.Src
		el.Alt = n.Props.Alt
	case model.NodeInput:
		el.Text = n.Props.Placeholder
		el.InputType = n.Props.InputType
	case model.NodeContainer:
		if n.Props.Component != "" {
			el.Widget = r.renderWidget(n.Props, now)
		}
	}

	for _, child := range n.Children {
		el.Children = append(el.Children, r.Render(child, now))
	}
	return el
}

// renderWidget resolves a composite container's display state. Unknown
// component kinds pass through with no widget body so newer editors can
// save configs older renderers have not modeled yet.
func (r *Renderer) renderWidget(props model.Props, now time.Time) *model.WidgetView {
	view := &model.WidgetView{Component: props.Component}

	switch props.Component {
	case model.ComponentTimeTracking:
		var entries []model.TimeEntry
		if props.TimeTracking != nil {
			entries = props.TimeTracking.Entries
		}
		view.Entries = make([]model.TimeEntryView, 0, len(entries))
		for _, e := range entries {
			view.Entries = append(view.Entries, model.TimeEntryView{
				TimeEntry:      e,
				ElapsedSeconds: widget.Elapsed(e, now),
				Active:         e.Running(),
			})
		}

	case model.ComponentFolderTree:
		folders := props.FolderTree
		if folders == nil {
			folders = widget.SeedFolderTree()
		}
		view.Folders = folders

	case model.ComponentTasks, model.ComponentTodo:
		view.Tasks = props.Tasks
		if view.Tasks == nil {
			view.Tasks = []model.TaskItem{}
		}

	case model.ComponentSupport:
		view.Tickets = props.SupportTickets
		if view.Tickets == nil {
			view.Tickets = []model.SupportTicket{}
		}

	case model.ComponentNavbar:
		view.NavItems = props.NavItems
		if len(view.NavItems) == 0 {
			view.NavItems = widget.DefaultNavItems()
		}

	case model.ComponentChat:
		view.Messages = props.ChatMessages
		if view.Messages == nil {
			view.Messages = []model.ChatMessage{}
		}

	case model.ComponentAudioNotes:
		view.Notes = props.AudioNotes
		if view.Notes == nil {
			view.Notes = []model.AudioNote{}
		}

	case model.ComponentCalendar:
		cal := widget.CurrentMonth(now)
		if props.Calendar != nil {
			cal = *props.Calendar
		}
		grid := widget.MonthMatrix(cal)
		view.Calendar = &grid

	case model.ComponentDice, model.ComponentTicTacToe, model.ComponentSnake:
		game := props.Game
		if game == nil {
			g := widget.NewTicTacToe()
			if props.Component != model.ComponentTicTacToe {
				g = model.GameState{}
			}
			game = &g
		}
		view.Game = game

	default:
		r.logger.Debug("unmodeled component kind, rendering plain container",
			zap.String("component", string(props.Component)),
		)
	}

	return view
}
