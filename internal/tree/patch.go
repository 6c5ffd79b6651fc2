// Package tree implements the page-tree mutation engine: persistent
// patch-by-id updates with structural sharing, id validation, and frame
// default normalization.
package tree

import (
	"fmt"
	"strings"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// ApplyPatch locates targetID by depth-first search and merges patch into
// the matching node, returning a new root. Every subtree not on the path
// to the target is returned by reference, so callers can detect change via
// pointer equality. When targetID is absent the original root pointer is
// returned unchanged: a missing target is a no-op, not an error, which
// keeps the editor resilient to races with async deletes.
//
// Known limitation: when ids are duplicated (which ValidateIDs is meant to
// prevent at construction time), only the first match in traversal order
// is patched.
func ApplyPatch(root *model.Node, targetID string, patch model.Patch) *model.Node {
	if root == nil {
		return nil
	}
	if root.ID == targetID {
		return mergeNode(root, patch)
	}
	for i, child := range root.Children {
		patched := ApplyPatch(child, targetID, patch)
		if patched == child {
			continue
		}
		clone := *root
		clone.Children = make([]*model.Node, len(root.Children))
		copy(clone.Children, root.Children)
		clone.Children[i] = patched
		return &clone
	}
	return root
}

// mergeNode produces a copy of n with the patch applied. Props merge
// shallowly (fields present in the patch win, everything else is kept),
// Style merges key by key, and Children are replaced wholesale only when
// the patch carries them.
func mergeNode(n *model.Node, patch model.Patch) *model.Node {
	clone := *n

	if patch.X != nil {
		clone.X = *patch.X
	}
	if patch.Y != nil {
		clone.Y = *patch.Y
	}
	if patch.W != nil {
		clone.W = *patch.W
	}
	if patch.H != nil {
		clone.H = *patch.H
	}
	if patch.Props != nil {
		clone.Props = mergeProps(n.Props, *patch.Props)
	}
	if patch.Style != nil {
		merged := make(map[string]string, len(n.Style)+len(patch.Style))
		for k, v := range n.Style {
			merged[k] = v
		}
		for k, v := range patch.Style {
			merged[k] = v
		}
		clone.Style = merged
	}
	if patch.Children != nil {
		clone.Children = patch.Children
	}
	return &clone
}

// mergeProps overlays the non-zero fields of patch onto base, mirroring a
// JSON shallow merge of the serialized prop bags.
func mergeProps(base, patch model.Props) model.Props {
	out := base

	if patch.Text != "" {
		out.Text = patch.Text
	}
	if patch.Label != "" {
		out.Label = patch.Label
	}
	if patch.Action != "" {
		out.Action = patch.Action
	}
	if patch.Target != "" {
		out.Target = patch.Target
	}
	if patch.TargetPage != "" {
		out.TargetPage = patch.TargetPage
	}
	if patch.URL != "" {
		out.URL = patch.URL
	}
	if patch.PhoneNumber != "" {
		out.PhoneNumber = patch.PhoneNumber
	}
	if patch.EmailAddress != "" {
		out.EmailAddress = patch.EmailAddress
	}
	if patch.SupportTarget != "" {
		out.SupportTarget = patch.SupportTarget
	}
	if patch.Placeholder != "" {
		out.Placeholder = patch.Placeholder
	}
	if patch.InputType != "" {
		out.InputType = patch.InputType
	}
	if patch.Src != "" {
		out.Src = patch.Src
	}
	if patch.Alt != "" {
		out.Alt = patch.Alt
	}
	if patch.Component != "" {
		out.Component = patch.Component
	}
	if patch.TimeTracking != nil {
		out.TimeTracking = patch.TimeTracking
	}
	if patch.FolderTree != nil {
		out.FolderTree = patch.FolderTree
	}
	if patch.Tasks != nil {
		out.Tasks = patch.Tasks
	}
	if patch.SupportTickets != nil {
		out.SupportTickets = patch.SupportTickets
	}
	if patch.NavItems != nil {
		out.NavItems = patch.NavItems
	}
	if patch.ChatMessages != nil {
		out.ChatMessages = patch.ChatMessages
	}
	if patch.AudioNotes != nil {
		out.AudioNotes = patch.AudioNotes
	}
	if patch.Calendar != nil {
		out.Calendar = patch.Calendar
	}
	if patch.Game != nil {
		out.Game = patch.Game
	}
	return out
}

// FindNode returns the first node with the given id in tree order, or nil.
func FindNode(root *model.Node, id string) *model.Node {
	var found *model.Node
	root.Walk(func(n *model.Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountNodes returns the number of nodes in the tree.
func CountNodes(root *model.Node) int {
	count := 0
	root.Walk(func(*model.Node) bool {
		count++
		return true
	})
	return count
}

// ValidateTree checks the structural invariants of a page tree: the root
// must be a container with the reserved root id, every node must carry a
// supported type, and ids must be unique across the whole tree.
func ValidateTree(root *model.Node) error {
	if root == nil {
		return model.NewBadRequestError("tree is missing")
	}
	if root.ID != model.RootNodeID {
		return model.NewBadRequestError(
			fmt.Sprintf("root node id must be %q, got %q", model.RootNodeID, root.ID),
		)
	}
	if root.Type != model.NodeContainer {
		return model.NewBadRequestError(
			fmt.Sprintf("root node must be a container, got %q", root.Type),
		)
	}

	var badTypes []string
	root.Walk(func(n *model.Node) bool {
		if !model.ValidNodeType(n.Type) {
			badTypes = append(badTypes, fmt.Sprintf("%s:%s", n.ID, n.Type))
		}
		return true
	})
	if len(badTypes) > 0 {
		return model.NewBadRequestError(
			fmt.Sprintf("unsupported node types: %s", strings.Join(badTypes, ", ")),
		)
	}

	return ValidateIDs(root)
}

// ValidateIDs enforces the global id uniqueness invariant. Duplicate ids
// would make patch-by-id ambiguous, so they are rejected at construction
// time instead of relying on first-match behavior.
func ValidateIDs(root *model.Node) error {
	seen := make(map[string]bool)
	var dups []string
	root.Walk(func(n *model.Node) bool {
		if n.ID == "" {
			dups = append(dups, "(empty)")
			return true
		}
		if seen[n.ID] {
			dups = append(dups, n.ID)
		}
		seen[n.ID] = true
		return true
	})
	if len(dups) > 0 {
		return model.NewBadRequestError(
			fmt.Sprintf("duplicate node ids: %s", strings.Join(dups, ", ")),
		)
	}
	return nil
}

// ApplyDefaults fills in type-specific default frame sizes for any node
// with an omitted width or height. It mutates the tree in place and is
// intended for use at construction time, before the tree is shared.
func ApplyDefaults(root *model.Node) {
	root.Walk(func(n *model.Node) bool {
		w, h := model.DefaultFrame(n.Type)
		if n.W == 0 {
			n.W = w
		}
		if n.H == 0 {
			n.H = h
		}
		return true
	})
}
