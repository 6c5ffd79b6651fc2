package model

import "time"

// ComponentKind selects which composite widget a container node embeds.
// The set is open-ended for forward compatibility: unknown kinds render as
// a plain container rather than failing.
type ComponentKind string

const (
	ComponentChat         ComponentKind = "chat"
	ComponentTimeTracking ComponentKind = "time-tracking"
	ComponentFolderTree   ComponentKind = "folder-structure"
	ComponentTasks        ComponentKind = "tasks"
	ComponentTodo         ComponentKind = "todo"
	ComponentSupport      ComponentKind = "support"
	ComponentCalendar     ComponentKind = "calendar"
	ComponentAudioNotes   ComponentKind = "audio-notes"
	ComponentNavbar       ComponentKind = "navbar"
	ComponentLoginForm    ComponentKind = "login-form"
	ComponentProfile      ComponentKind = "profile"
	ComponentGallery      ComponentKind = "gallery"
	ComponentStats        ComponentKind = "stats"
	ComponentContacts     ComponentKind = "contacts"
	ComponentNotes        ComponentKind = "notes"
	ComponentMap          ComponentKind = "map"
	ComponentDice         ComponentKind = "dice"
	ComponentTicTacToe    ComponentKind = "tic-tac-toe"
	ComponentSnake        ComponentKind = "snake"
	ComponentPresence     ComponentKind = "presence"
)

// TimeTracking is the config of a time-tracking container. At most one
// entry may be running (EndedAt unset) at any time.
type TimeTracking struct {
	Entries []TimeEntry `json:"entries"`
}

// TimeEntry is one tracked work interval. Seconds is authoritative and is
// only folded forward when the entry is closed; live elapsed display for a
// running entry is computed from StartedAt.
type TimeEntry struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Seconds   int64      `json:"seconds"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// Running reports whether the entry is open.
func (e TimeEntry) Running() bool {
	return e.StartedAt != nil && e.EndedAt == nil
}

// FolderNode is one folder in a recursive folder tree.
type FolderNode struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Children []*FolderNode `json:"children,omitempty"`
}

// TaskItem is one entry of a task or todo list.
type TaskItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// SupportTicket is one entry of the append-only support log.
type SupportTicket struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Channel   string    `json:"channel"`
}

// AudioNote is one recorded note with a playable URL.
type AudioNote struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`
}

// NavbarItem is one entry of a navigation bar component.
type NavbarItem struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Action     Action `json:"action"`
	Target     string `json:"target,omitempty"`
	TargetPage string `json:"targetPage,omitempty"`
	URL        string `json:"url,omitempty"`
	Icon       string `json:"icon,omitempty"`
}

// ChatMessage is one message of a chat component.
type ChatMessage struct {
	ID     string    `json:"id"`
	Role   string    `json:"role"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

// CalendarState is the pure view state of a calendar component: the month
// in focus. The day grid is derived, never stored.
type CalendarState struct {
	FocusYear  int `json:"focusYear"`
	FocusMonth int `json:"focusMonth"` // 1-12
}

// GameState holds the trivial state of the demo game components. Which
// fields apply depends on the component kind.
type GameState struct {
	Rolls []int    `json:"rolls,omitempty"` // dice
	Board []string `json:"board,omitempty"` // tic-tac-toe, 9 cells of "", "X", "O"
	Turn  string   `json:"turn,omitempty"`  // tic-tac-toe
	Score int      `json:"score,omitempty"` // snake
	Over  bool     `json:"over,omitempty"`
}
