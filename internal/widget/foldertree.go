package widget

import (
	"github.com/google/uuid"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// AddFolder inserts a new leaf folder named name under parentID, located
// by depth-first id search. An empty parentID targets the root. When the
// parent id does not exist the tree is returned unchanged, so a stale id
// from the view never breaks the config.
func AddFolder(root *model.FolderNode, parentID, name string) *model.FolderNode {
	if root == nil {
		return nil
	}
	leaf := &model.FolderNode{ID: uuid.NewString(), Name: name}
	if parentID == "" {
		parentID = root.ID
	}
	return insertFolder(root, parentID, leaf)
}

// insertFolder clones the path from root to the parent and appends the
// leaf; subtrees off the path keep identity, matching the page-tree patch
// contract.
func insertFolder(n *model.FolderNode, parentID string, leaf *model.FolderNode) *model.FolderNode {
	if n.ID == parentID {
		clone := *n
		clone.Children = make([]*model.FolderNode, len(n.Children), len(n.Children)+1)
		copy(clone.Children, n.Children)
		clone.Children = append(clone.Children, leaf)
		return &clone
	}
	for i, child := range n.Children {
		inserted := insertFolder(child, parentID, leaf)
		if inserted == child {
			continue
		}
		clone := *n
		clone.Children = make([]*model.FolderNode, len(n.Children))
		copy(clone.Children, n.Children)
		clone.Children[i] = inserted
		return &clone
	}
	return n
}

// FindFolder returns the first folder with the given id in depth-first
// order, or nil.
func FindFolder(root *model.FolderNode, id string) *model.FolderNode {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, c := range root.Children {
		if found := FindFolder(c, id); found != nil {
			return found
		}
	}
	return nil
}

// SeedFolderTree returns the example tree used when a folder-structure
// container has no config yet. Missing props never surface as failures;
// they get a usable default.
func SeedFolderTree() *model.FolderNode {
	return &model.FolderNode{
		ID:   uuid.NewString(),
		Name: "Dokumente",
		Children: []*model.FolderNode{
			{ID: uuid.NewString(), Name: "Projekte"},
			{ID: uuid.NewString(), Name: "Rechnungen"},
		},
	}
}

// ExpandState tracks which folders are collapsed in the view. It is
// view-local state keyed by folder id; ids it has never seen default to
// expanded.
type ExpandState map[string]bool

// Expanded reports whether the folder with the given id is expanded.
func (s ExpandState) Expanded(id string) bool {
	collapsed, seen := s[id]
	if !seen {
		return true
	}
	return !collapsed
}

// Toggle flips the expand state of the folder with the given id.
func (s ExpandState) Toggle(id string) {
	s[id] = s.Expanded(id)
}
