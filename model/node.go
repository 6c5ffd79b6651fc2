// Package model defines the public data types of the page-tree service:
// the recursive node model, page trees, composite widget configurations,
// render descriptors, and the standard error envelope.
package model

// NodeType is the closed set of visual element kinds.
type NodeType string

const (
	NodeText      NodeType = "text"
	NodeButton    NodeType = "button"
	NodeImage     NodeType = "image"
	NodeInput     NodeType = "input"
	NodeContainer NodeType = "container"
)

// RootNodeID is the reserved id of the single root container of every page.
const RootNodeID = "root"

// ValidNodeType reports whether t is one of the five supported node types.
func ValidNodeType(t NodeType) bool {
	switch t {
	case NodeText, NodeButton, NodeImage, NodeInput, NodeContainer:
		return true
	}
	return false
}

// Node is one visual element in a page tree. A page is a single root
// container node holding an ordered list of children; children may nest
// arbitrarily deep.
type Node struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`

	// Page-local pixel frame. Zero W/H means "use the type default".
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w,omitempty"`
	H int `json:"h,omitempty"`

	Props    Props             `json:"props,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Props carries the type-specific semantic attributes of a node. Which
// fields are meaningful depends on Node.Type; for containers the Component
// discriminator selects a composite widget kind and exactly one of the
// nested configs applies.
type Props struct {
	// text
	Text string `json:"text,omitempty"`

	// button
	Label         string `json:"label,omitempty"`
	Action        Action `json:"action,omitempty"`
	Target        string `json:"target,omitempty"`
	TargetPage    string `json:"targetPage,omitempty"`
	URL           string `json:"url,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	EmailAddress  string `json:"emailAddress,omitempty"`
	SupportTarget string `json:"supportTarget,omitempty"`

	// input
	Placeholder string `json:"placeholder,omitempty"`
	InputType   string `json:"inputType,omitempty"`

	// image
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`

	// container
	Component      ComponentKind   `json:"component,omitempty"`
	TimeTracking   *TimeTracking   `json:"timeTracking,omitempty"`
	FolderTree     *FolderNode     `json:"folderTree,omitempty"`
	Tasks          []TaskItem      `json:"tasks,omitempty"`
	SupportTickets []SupportTicket `json:"supportTickets,omitempty"`
	NavItems       []NavbarItem    `json:"navItems,omitempty"`
	ChatMessages   []ChatMessage   `json:"chatMessages,omitempty"`
	AudioNotes     []AudioNote     `json:"audioNotes,omitempty"`
	Calendar       *CalendarState  `json:"calendar,omitempty"`
	Game           *GameState      `json:"game,omitempty"`
}

// Patch is a partial node merged into an existing node by id. Props and
// Style merge shallowly; Children replace wholesale when present.
type Patch struct {
	X        *int              `json:"x,omitempty"`
	Y        *int              `json:"y,omitempty"`
	W        *int              `json:"w,omitempty"`
	H        *int              `json:"h,omitempty"`
	Props    *Props            `json:"props,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// PageTree is a named page wrapping one root container node. Folder groups
// pages for presentation only and never affects patch or merge semantics.
type PageTree struct {
	Name   string `json:"name"`
	Folder string `json:"folder,omitempty"`
	Tree   *Node  `json:"tree"`
}

// Type-specific default frame sizes, applied only when W/H are omitted.
var defaultFrames = map[NodeType][2]int{
	NodeText:      {240, 28},
	NodeButton:    {240, 52},
	NodeImage:     {160, 120},
	NodeInput:     {256, 44},
	NodeContainer: {296, 160},
}

// DefaultFrame returns the default width and height for a node type.
func DefaultFrame(t NodeType) (w, h int) {
	f, ok := defaultFrames[t]
	if !ok {
		f = defaultFrames[NodeContainer]
	}
	return f[0], f[1]
}

// Walk calls fn for every node in tree order (depth-first, parent before
// children). Traversal stops early when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
