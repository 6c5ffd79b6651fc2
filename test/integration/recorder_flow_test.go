package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/widget"
	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// fakeCaptureDevice yields sessions that return a fixed playable URL.
type fakeCaptureDevice struct {
	url string
}

type fakeCaptureSession struct {
	url string
}

func (d *fakeCaptureDevice) Open(_ context.Context) (widget.CaptureSession, error) {
	return &fakeCaptureSession{url: d.url}, nil
}

func (s *fakeCaptureSession) Result() (string, error) { return s.url, nil }
func (s *fakeCaptureSession) Close() error            { return nil }

func TestRecorder_startStopAppendsNote(t *testing.T) {
	h := NewTestHarness(t, WithCaptureDevice(&fakeCaptureDevice{url: "blob:rec-1"}))

	page := model.PageTree{
		Name: "Notizen",
		Tree: &model.Node{
			ID:   model.RootNodeID,
			Type: model.NodeContainer,
			Children: []*model.Node{{
				ID:    "rec",
				Type:  model.NodeContainer,
				Props: model.Props{Component: model.ComponentAudioNotes},
			}},
		},
	}
	resp := h.PUT("/api/projects/p1/pages/Notizen", page, "")
	h.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = h.POST("/api/projects/p1/pages/Notizen/widgets/rec/record-start", nil, "")
	h.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	var out struct {
		Node *model.Node `json:"node"`
	}
	resp = h.POST("/api/projects/p1/pages/Notizen/widgets/rec/record-stop",
		map[string]string{"label": "Besprechung"}, "")
	h.AssertJSON(t, resp, http.StatusOK, &out)

	notes := out.Node.Props.AudioNotes
	if len(notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(notes))
	}
	if notes[0].Label != "Besprechung" || notes[0].URL != "blob:rec-1" {
		t.Errorf("note = %+v, want label Besprechung and url blob:rec-1", notes[0])
	}
}

func TestRecorder_stopWithoutStartIsNoop(t *testing.T) {
	h := NewTestHarness(t, WithCaptureDevice(&fakeCaptureDevice{url: "blob:rec-2"}))

	page := model.PageTree{
		Name: "Notizen",
		Tree: &model.Node{
			ID:   model.RootNodeID,
			Type: model.NodeContainer,
			Children: []*model.Node{{
				ID:    "rec",
				Type:  model.NodeContainer,
				Props: model.Props{Component: model.ComponentAudioNotes},
			}},
		},
	}
	resp := h.PUT("/api/projects/p1/pages/Notizen", page, "")
	h.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	var out struct {
		Node *model.Node `json:"node"`
	}
	resp = h.POST("/api/projects/p1/pages/Notizen/widgets/rec/record-stop",
		map[string]string{"label": "Leer"}, "")
	h.AssertJSON(t, resp, http.StatusOK, &out)

	if len(out.Node.Props.AudioNotes) != 0 {
		t.Errorf("notes = %d, want 0 when nothing was recorded", len(out.Node.Props.AudioNotes))
	}
}
