package model

// Action is the enum of button behaviors understood by the action
// interpreter. Unknown actions are logged and ignored.
type Action string

const (
	ActionNavigate      Action = "navigate"
	ActionURL           Action = "url"
	ActionLogin         Action = "login"
	ActionRegister      Action = "register"
	ActionResetPassword Action = "reset-password"
	ActionLogout        Action = "logout"
	ActionChat          Action = "chat"
	ActionCall          Action = "call"
	ActionEmail         Action = "email"
	ActionUploadPhoto   Action = "upload-photo"
	ActionRecordAudio   Action = "record-audio"
	ActionToggleTheme   Action = "toggle-theme"
	ActionSupportTicket Action = "support-ticket"
)

// Element is the JSON view model the preview frontend consumes: one node
// resolved against its live state, with event bindings attached.
type Element struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	X         int               `json:"x"`
	Y         int               `json:"y"`
	W         int               `json:"w"`
	H         int               `json:"h"`
	Text      string            `json:"text,omitempty"`
	Src       string            `json:"src,omitempty"`
	Alt       string            `json:"alt,omitempty"`
	InputType string            `json:"inputType,omitempty"`
	Style     map[string]string `json:"style,omitempty"`
	Widget    *WidgetView       `json:"widget,omitempty"`
	OnTap     *Effect           `json:"onTap,omitempty"`
	Children  []Element         `json:"children,omitempty"`
}

// WidgetView is the resolved display state of a composite widget.
type WidgetView struct {
	Component ComponentKind   `json:"component"`
	Entries   []TimeEntryView `json:"entries,omitempty"`
	Folders   *FolderNode     `json:"folders,omitempty"`
	Tasks     []TaskItem      `json:"tasks,omitempty"`
	Tickets   []SupportTicket `json:"tickets,omitempty"`
	NavItems  []NavbarItem    `json:"navItems,omitempty"`
	Messages  []ChatMessage   `json:"messages,omitempty"`
	Notes     []AudioNote     `json:"notes,omitempty"`
	Calendar  *CalendarView   `json:"calendar,omitempty"`
	Game      *GameState      `json:"game,omitempty"`
}

// TimeEntryView is a time entry enriched with its live elapsed seconds.
type TimeEntryView struct {
	TimeEntry
	ElapsedSeconds int64 `json:"elapsedSeconds"`
	Active         bool  `json:"active"`
}

// CalendarView is the derived month grid for display. Each week holds
// seven cells; cells outside the focus month are nil.
type CalendarView struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Weeks [][]*int `json:"weeks"`
}

// Effect is the side-effect descriptor produced by interpreting a button
// action. The frontend executes it; the core only decides what it is.
type Effect struct {
	Kind   string `json:"kind"`
	Page   string `json:"page,omitempty"`
	URL    string `json:"url,omitempty"`
	Number string `json:"number,omitempty"`
	Email  string `json:"email,omitempty"`
	Target string `json:"target,omitempty"`
}
