package generate

import (
	"github.com/google/uuid"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// StackItem is one entry of a vertical stack layout. Height zero falls
// back to the node type's default frame height.
type StackItem struct {
	Type   model.NodeType
	Props  model.Props
	Style  map[string]string
	Height int
}

// Stack layout constants: a fixed horizontal origin with configurable
// start Y and gap.
const (
	stackOriginX = 32
	defaultGap   = 16
)

// VStack lays the items out top to bottom in a single pass: each node is
// placed at the running cursor, then the cursor advances by the node
// height plus the gap. There is no overlap resolution and no wrapping.
// Every node gets a fresh id.
func VStack(items []StackItem, startY, gap int) []*model.Node {
	if gap <= 0 {
		gap = defaultGap
	}
	cursor := startY

	nodes := make([]*model.Node, 0, len(items))
	for _, item := range items {
		w, h := model.DefaultFrame(item.Type)
		if item.Height > 0 {
			h = item.Height
		}
		nodes = append(nodes, &model.Node{
			ID:    uuid.NewString(),
			Type:  item.Type,
			X:     stackOriginX,
			Y:     cursor,
			W:     w,
			H:     h,
			Props: item.Props,
			Style: item.Style,
		})
		cursor += h + gap
	}
	return nodes
}

// newPage wraps stacked children in a root container carrying the page
// background from the given palette.
func newPage(name string, palette Palette, children []*model.Node) model.PageTree {
	return model.PageTree{
		Name: name,
		Tree: &model.Node{
			ID:   model.RootNodeID,
			Type: model.NodeContainer,
			W:    360,
			H:    640,
			Style: map[string]string{
				"background": palette.Background,
				"color":      palette.Text,
			},
			Children: children,
		},
	}
}
