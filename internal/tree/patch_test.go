package tree

import (
	"testing"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

func intp(v int) *int { return &v }

// testTree builds a small page tree:
//
//	root
//	├── heading (text)
//	├── cta (button)
//	└── section (container)
//	    └── nested (text)
func testTree() *model.Node {
	return &model.Node{
		ID:   model.RootNodeID,
		Type: model.NodeContainer,
		Children: []*model.Node{
			{ID: "heading", Type: model.NodeText, Props: model.Props{Text: "Willkommen"}},
			{ID: "cta", Type: model.NodeButton, Props: model.Props{
				Label:      "Weiter",
				Action:     model.ActionNavigate,
				TargetPage: "Start",
			}},
			{ID: "section", Type: model.NodeContainer, Children: []*model.Node{
				{ID: "nested", Type: model.NodeText, Props: model.Props{Text: "Details"}},
			}},
		},
	}
}

func TestApplyPatch_missingTargetIsNoOp(t *testing.T) {
	root := testTree()

	got := ApplyPatch(root, "does-not-exist", model.Patch{X: intp(10)})
	if got != root {
		t.Error("patching a missing id must return the original root by reference")
	}
}

func TestApplyPatch_mergesProps(t *testing.T) {
	root := testTree()

	got := ApplyPatch(root, "cta", model.Patch{
		Props: &model.Props{Label: "Los geht's"},
	})

	patched := FindNode(got, "cta")
	if patched == nil {
		t.Fatal("cta not found after patch")
	}
	if patched.Props.Label != "Los geht's" {
		t.Errorf("Label = %q, want %q", patched.Props.Label, "Los geht's")
	}
	// Untouched prop fields survive the shallow merge.
	if patched.Props.Action != model.ActionNavigate {
		t.Errorf("Action = %q, want navigate", patched.Props.Action)
	}
	if patched.Props.TargetPage != "Start" {
		t.Errorf("TargetPage = %q, want Start", patched.Props.TargetPage)
	}
}

func TestApplyPatch_siblingSubtreesKeepIdentity(t *testing.T) {
	root := testTree()
	heading := root.Children[0]
	section := root.Children[2]

	got := ApplyPatch(root, "cta", model.Patch{X: intp(40), Y: intp(80)})

	if got == root {
		t.Fatal("patching an existing id must return a new root")
	}
	if got.Children[0] != heading {
		t.Error("heading subtree must be reference-equal to its pre-patch value")
	}
	if got.Children[2] != section {
		t.Error("section subtree must be reference-equal to its pre-patch value")
	}
	if got.Children[1] == root.Children[1] {
		t.Error("patched node must be a fresh copy")
	}
	// The input tree itself stays untouched.
	if root.Children[1].X != 0 {
		t.Errorf("original cta.X = %d, want 0", root.Children[1].X)
	}
}

func TestApplyPatch_nestedTargetClonesPathOnly(t *testing.T) {
	root := testTree()
	heading := root.Children[0]
	cta := root.Children[1]

	got := ApplyPatch(root, "nested", model.Patch{
		Props: &model.Props{Text: "Mehr Details"},
	})

	if got == root {
		t.Fatal("want a new root")
	}
	if got.Children[0] != heading || got.Children[1] != cta {
		t.Error("subtrees off the patch path must keep identity")
	}
	if got.Children[2] == root.Children[2] {
		t.Error("the section on the patch path must be cloned")
	}
	if FindNode(got, "nested").Props.Text != "Mehr Details" {
		t.Error("nested text not patched")
	}
	if FindNode(root, "nested").Props.Text != "Details" {
		t.Error("original tree mutated")
	}
}

func TestApplyPatch_styleMergesKeyByKey(t *testing.T) {
	root := testTree()
	root.Children[0].Style = map[string]string{"color": "#222", "fontSize": "18"}

	got := ApplyPatch(root, "heading", model.Patch{
		Style: map[string]string{"color": "#e11"},
	})

	style := FindNode(got, "heading").Style
	if style["color"] != "#e11" {
		t.Errorf("color = %q, want #e11", style["color"])
	}
	if style["fontSize"] != "18" {
		t.Errorf("fontSize = %q, want 18 (retained)", style["fontSize"])
	}
}

func TestApplyPatch_childrenReplaceWholesale(t *testing.T) {
	root := testTree()
	replacement := []*model.Node{
		{ID: "only", Type: model.NodeText, Props: model.Props{Text: "neu"}},
	}

	got := ApplyPatch(root, "section", model.Patch{Children: replacement})

	section := FindNode(got, "section")
	if len(section.Children) != 1 || section.Children[0].ID != "only" {
		t.Fatalf("children = %+v, want the replacement list", section.Children)
	}
	// Patch without children retains them.
	got2 := ApplyPatch(got, "section", model.Patch{X: intp(5)})
	if len(FindNode(got2, "section").Children) != 1 {
		t.Error("children must be retained when the patch omits them")
	}
}

func TestApplyPatch_duplicateIDsPatchFirstMatch(t *testing.T) {
	root := &model.Node{
		ID:   model.RootNodeID,
		Type: model.NodeContainer,
		Children: []*model.Node{
			{ID: "dup", Type: model.NodeText, Props: model.Props{Text: "first"}},
			{ID: "dup", Type: model.NodeText, Props: model.Props{Text: "second"}},
		},
	}

	got := ApplyPatch(root, "dup", model.Patch{Props: &model.Props{Text: "patched"}})

	if got.Children[0].Props.Text != "patched" {
		t.Errorf("first match Text = %q, want patched", got.Children[0].Props.Text)
	}
	if got.Children[1].Props.Text != "second" {
		t.Errorf("second match Text = %q, want untouched", got.Children[1].Props.Text)
	}
}

func TestValidateTree(t *testing.T) {
	tests := []struct {
		name    string
		root    *model.Node
		wantErr bool
	}{
		{"valid", testTree(), false},
		{"nil root", nil, true},
		{
			"wrong root id",
			&model.Node{ID: "page", Type: model.NodeContainer},
			true,
		},
		{
			"root not container",
			&model.Node{ID: model.RootNodeID, Type: model.NodeText},
			true,
		},
		{
			"unknown node type",
			&model.Node{ID: model.RootNodeID, Type: model.NodeContainer, Children: []*model.Node{
				{ID: "x", Type: "video"},
			}},
			true,
		},
		{
			"duplicate ids",
			&model.Node{ID: model.RootNodeID, Type: model.NodeContainer, Children: []*model.Node{
				{ID: "a", Type: model.NodeText},
				{ID: "a", Type: model.NodeText},
			}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTree(tt.root)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTree() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	root := testTree()
	root.Children[1].W = 100 // explicit width survives

	ApplyDefaults(root)

	if root.W != 296 || root.H != 160 {
		t.Errorf("container frame = %dx%d, want 296x160", root.W, root.H)
	}
	cta := root.Children[1]
	if cta.W != 100 {
		t.Errorf("explicit width overwritten: %d", cta.W)
	}
	if cta.H != 52 {
		t.Errorf("button default height = %d, want 52", cta.H)
	}
	heading := root.Children[0]
	if heading.W != 240 || heading.H != 28 {
		t.Errorf("text frame = %dx%d, want 240x28", heading.W, heading.H)
	}
}

func TestCountNodes(t *testing.T) {
	if got := CountNodes(testTree()); got != 5 {
		t.Errorf("CountNodes = %d, want 5", got)
	}
}
