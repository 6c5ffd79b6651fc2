package integration

import (
	"net/http"
	"testing"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// ==========================================================================
// Editor flow: generate, save, patch, transition, render
// ==========================================================================

func TestEditorFlow_generateSavePatchRender(t *testing.T) {
	h := NewTestHarness(t)

	// 1. Generate a page from a prompt; no API key means deterministic output.
	var gen struct {
		Page   model.PageTree `json:"page"`
		Source string         `json:"source"`
	}
	resp := h.POST("/api/generate", map[string]string{
		"prompt":   "Eine Firmen-App mit Zeiterfassung",
		"pageName": "Zeiten",
	}, "")
	h.AssertJSON(t, resp, http.StatusOK, &gen)

	if gen.Source != "fallback" {
		t.Fatalf("source = %q, want fallback", gen.Source)
	}
	if gen.Page.Tree == nil || gen.Page.Tree.ID != model.RootNodeID {
		t.Fatal("generated page has no rooted tree")
	}

	// 2. Save the generated page.
	resp = h.PUT("/api/projects/p1/pages/Zeiten", gen.Page, "")
	h.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	// 3. Patch a child node's position.
	childID := gen.Page.Tree.Children[0].ID
	var patched struct {
		Page    model.PageTree `json:"page"`
		Applied bool           `json:"applied"`
	}
	resp = h.POST("/api/projects/p1/pages/Zeiten/patch", map[string]any{
		"targetId": childID,
		"patch":    map[string]any{"x": 42, "y": 17},
	}, "")
	h.AssertJSON(t, resp, http.StatusOK, &patched)

	if !patched.Applied {
		t.Fatal("patch not applied")
	}
	if got := patched.Page.Tree.Children[0]; got.X != 42 || got.Y != 17 {
		t.Errorf("patched frame = (%d,%d), want (42,17)", got.X, got.Y)
	}

	// 4. Reload and confirm persistence.
	var reloaded model.PageTree
	resp = h.GET("/api/projects/p1/pages/Zeiten", "")
	h.AssertJSON(t, resp, http.StatusOK, &reloaded)
	if reloaded.Tree.Children[0].X != 42 {
		t.Error("patch not persisted across reload")
	}

	// 5. Render the stored tree.
	var rendered struct {
		Element model.Element `json:"element"`
	}
	resp = h.POST("/api/render", map[string]any{"tree": reloaded.Tree}, "")
	h.AssertJSON(t, resp, http.StatusOK, &rendered)
	if rendered.Element.Kind != "container" {
		t.Errorf("root kind = %q, want container", rendered.Element.Kind)
	}
}

func TestEditorFlow_widgetTransitionRoundTrip(t *testing.T) {
	h := NewTestHarness(t)

	page := model.PageTree{
		Name: "Aufgaben",
		Tree: &model.Node{
			ID:   model.RootNodeID,
			Type: model.NodeContainer,
			Children: []*model.Node{{
				ID:    "list",
				Type:  model.NodeContainer,
				Props: model.Props{Component: model.ComponentTasks},
			}},
		},
	}
	resp := h.PUT("/api/projects/p1/pages/Aufgaben", page, "")
	h.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	var out struct {
		Node    *model.Node `json:"node"`
		Applied bool        `json:"applied"`
	}
	resp = h.POST("/api/projects/p1/pages/Aufgaben/widgets/list/add-task",
		map[string]string{"title": "Rechnung schreiben"}, "")
	h.AssertJSON(t, resp, http.StatusOK, &out)

	if !out.Applied || len(out.Node.Props.Tasks) != 1 {
		t.Fatalf("tasks = %+v, want exactly one", out.Node.Props.Tasks)
	}

	taskID := out.Node.Props.Tasks[0].ID
	resp = h.POST("/api/projects/p1/pages/Aufgaben/widgets/list/toggle-task",
		map[string]string{"taskId": taskID}, "")
	h.AssertJSON(t, resp, http.StatusOK, &out)
	if !out.Node.Props.Tasks[0].Done {
		t.Error("task not marked done after toggle")
	}

	var reloaded model.PageTree
	resp = h.GET("/api/projects/p1/pages/Aufgaben", "")
	h.AssertJSON(t, resp, http.StatusOK, &reloaded)
	if !reloaded.Tree.Children[0].Props.Tasks[0].Done {
		t.Error("toggled task not persisted")
	}
}

func TestEditorFlow_listAndDelete(t *testing.T) {
	h := NewTestHarness(t)

	for _, name := range []string{"Start", "Profil"} {
		page := model.PageTree{
			Name: name,
			Tree: &model.Node{ID: model.RootNodeID, Type: model.NodeContainer},
		}
		resp := h.PUT("/api/projects/p1/pages/"+name, page, "")
		h.AssertStatus(t, resp, http.StatusOK)
		resp.Body.Close()
	}

	var list struct {
		Pages []model.PageTree `json:"pages"`
	}
	resp := h.GET("/api/projects/p1/pages/", "")
	h.AssertJSON(t, resp, http.StatusOK, &list)
	if len(list.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(list.Pages))
	}
	if list.Pages[0].Name != "Profil" || list.Pages[1].Name != "Start" {
		t.Errorf("pages not in name order: %q, %q", list.Pages[0].Name, list.Pages[1].Name)
	}

	resp = h.DELETE("/api/projects/p1/pages/Start", "")
	h.AssertStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = h.GET("/api/projects/p1/pages/", "")
	h.AssertJSON(t, resp, http.StatusOK, &list)
	if len(list.Pages) != 1 {
		t.Errorf("pages after delete = %d, want 1", len(list.Pages))
	}

	// Pages are scoped per project.
	resp = h.GET("/api/projects/p2/pages/", "")
	h.AssertJSON(t, resp, http.StatusOK, &list)
	if len(list.Pages) != 0 {
		t.Errorf("pages in other project = %d, want 0", len(list.Pages))
	}
}

func TestEditorFlow_multiPageGeneration(t *testing.T) {
	h := NewTestHarness(t)

	var out struct {
		Pages []model.PageTree `json:"pages"`
	}
	resp := h.POST("/api/generate/pages",
		map[string]string{"prompt": "Firmenportal mit Login, Chat und Support"}, "")
	h.AssertJSON(t, resp, http.StatusOK, &out)

	if len(out.Pages) < 3 {
		t.Fatalf("pages = %d, want home plus the intent pages", len(out.Pages))
	}
	for _, p := range out.Pages {
		if p.Tree == nil || p.Tree.ID != model.RootNodeID {
			t.Errorf("page %q has no rooted tree", p.Name)
		}
	}
}
