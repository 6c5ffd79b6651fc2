package widget

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// --- folder tree ---

func folderFixture() *model.FolderNode {
	return &model.FolderNode{
		ID:   "f-root",
		Name: "Dokumente",
		Children: []*model.FolderNode{
			{ID: "f-a", Name: "Projekte"},
			{ID: "f-b", Name: "Rechnungen", Children: []*model.FolderNode{
				{ID: "f-b1", Name: "2025"},
			}},
		},
	}
}

func TestAddFolder_underNestedParent(t *testing.T) {
	root := folderFixture()

	got := AddFolder(root, "f-b1", "März")

	parent := FindFolder(got, "f-b1")
	if len(parent.Children) != 1 || parent.Children[0].Name != "März" {
		t.Fatalf("children of f-b1 = %+v, want one folder named März", parent.Children)
	}
	// Sibling subtree keeps identity; original is untouched.
	if got.Children[0] != root.Children[0] {
		t.Error("untouched sibling must keep identity")
	}
	if len(FindFolder(root, "f-b1").Children) != 0 {
		t.Error("original tree mutated")
	}
}

func TestAddFolder_emptyParentTargetsRoot(t *testing.T) {
	got := AddFolder(folderFixture(), "", "Neu")
	if len(got.Children) != 3 {
		t.Fatalf("root children = %d, want 3", len(got.Children))
	}
	if got.Children[2].Name != "Neu" {
		t.Errorf("appended name = %q, want Neu", got.Children[2].Name)
	}
	if got.Children[2].ID == "" {
		t.Error("new folder needs a fresh id")
	}
}

func TestAddFolder_unknownParentIsNoOp(t *testing.T) {
	root := folderFixture()
	if got := AddFolder(root, "missing", "X"); got != root {
		t.Error("unknown parent id must return the tree unchanged by reference")
	}
}

func TestExpandState_defaultsExpanded(t *testing.T) {
	s := ExpandState{}
	if !s.Expanded("never-seen") {
		t.Error("unseen ids must default to expanded")
	}
	s.Toggle("never-seen")
	if s.Expanded("never-seen") {
		t.Error("toggle must collapse")
	}
	s.Toggle("never-seen")
	if !s.Expanded("never-seen") {
		t.Error("second toggle must expand again")
	}
}

// --- tasks and tickets ---

func TestToggleTask(t *testing.T) {
	items := []model.TaskItem{
		{ID: "t1", Title: "Angebot schreiben"},
		{ID: "t2", Title: "Rechnung prüfen", Done: true},
	}

	got := ToggleTask(items, "t1")
	if !got[0].Done {
		t.Error("t1 must be done after toggle")
	}
	if items[0].Done {
		t.Error("input list mutated")
	}
	if unchanged := ToggleTask(items, "missing"); unchanged[0].Done || !unchanged[1].Done {
		t.Error("unknown id must leave the list unchanged")
	}
}

func TestCreateTicket_appendOnly(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)

	got := CreateTicket(nil, "Login klemmt", "Ich komme nicht rein.", "email", now)
	got = CreateTicket(got, "Zweites Thema", "Noch eine Frage.", "email", now.Add(time.Hour))

	if len(got) != 2 {
		t.Fatalf("tickets = %d, want 2", len(got))
	}
	first := got[0]
	if first.Subject != "Login klemmt" || first.Channel != "email" {
		t.Errorf("first ticket = %+v", first)
	}
	if !first.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", first.CreatedAt, now)
	}
	if first.ID == got[1].ID {
		t.Error("tickets need distinct ids")
	}
}

// --- recorder ---

type fakeSession struct {
	url    string
	err    error
	closed int
}

func (s *fakeSession) Result() (string, error) { return s.url, s.err }
func (s *fakeSession) Close() error            { s.closed++; return nil }

type fakeDevice struct {
	session *fakeSession
	err     error
	opens   int
}

func (d *fakeDevice) Open(context.Context) (CaptureSession, error) {
	d.opens++
	if d.err != nil {
		return nil, d.err
	}
	return d.session, nil
}

func TestRecorder_startStopAppendsNote(t *testing.T) {
	dev := &fakeDevice{session: &fakeSession{url: "blob:abc123"}}
	rec := NewRecorder(dev)
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	started, err := rec.Start(context.Background())
	if err != nil || !started {
		t.Fatalf("Start = (%v, %v), want (true, nil)", started, err)
	}
	if !rec.Recording() {
		t.Fatal("Recording() = false after Start")
	}

	notes, err := rec.Stop(nil, "Besprechung", now)
	if err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(notes))
	}
	if notes[0].URL != "blob:abc123" || notes[0].Label != "Besprechung" {
		t.Errorf("note = %+v", notes[0])
	}
	if dev.session.closed == 0 {
		t.Error("session must be released on Stop")
	}
	if rec.Recording() {
		t.Error("Recording() = true after Stop")
	}
}

func TestRecorder_concurrentStartIsNoOp(t *testing.T) {
	dev := &fakeDevice{session: &fakeSession{url: "blob:x"}}
	rec := NewRecorder(dev)

	if started, _ := rec.Start(context.Background()); !started {
		t.Fatal("first Start must open a session")
	}
	started, err := rec.Start(context.Background())
	if err != nil {
		t.Fatalf("second Start error: %v", err)
	}
	if started {
		t.Error("Start while recording must be a no-op")
	}
	if dev.opens != 1 {
		t.Errorf("device opened %d times, want 1", dev.opens)
	}
}

func TestRecorder_stopReleasesStreamOnError(t *testing.T) {
	session := &fakeSession{err: errors.New("capture failed")}
	rec := NewRecorder(&fakeDevice{session: session})

	rec.Start(context.Background())
	notes, err := rec.Stop(nil, "x", time.Now())
	if err == nil {
		t.Fatal("want error from failing session")
	}
	if len(notes) != 0 {
		t.Error("no note on failure")
	}
	if session.closed == 0 {
		t.Error("stream must be released on the failure path too")
	}
}

func TestRecorder_stopWithoutStartIsNoOp(t *testing.T) {
	rec := NewRecorder(&fakeDevice{})
	notes := []model.AudioNote{{ID: "n1"}}

	got, err := rec.Stop(notes, "x", time.Now())
	if err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("notes = %d, want unchanged 1", len(got))
	}
}

// --- games ---

func TestPlayCell_winAndDraw(t *testing.T) {
	g := NewTicTacToe()
	// X takes the top row with O interleaved: X0 O3 X1 O4 X2.
	for _, cell := range []int{0, 3, 1, 4, 2} {
		g = PlayCell(g, cell)
	}
	if !g.Over || g.Turn != "X" {
		t.Errorf("state = over:%v winner:%q, want win for X", g.Over, g.Turn)
	}

	// Further moves on a finished game are ignored.
	if after := PlayCell(g, 5); after.Board[5] != "" {
		t.Error("move after game over must be ignored")
	}

	// Draw: X O X / X O O / O X X. No win line, board full.
	draw := NewTicTacToe()
	for _, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
		draw = PlayCell(draw, cell)
	}
	if !draw.Over || draw.Turn != "" {
		t.Errorf("draw state = over:%v winner:%q, want draw", draw.Over, draw.Turn)
	}
}

func TestPlayCell_occupiedCellIgnored(t *testing.T) {
	g := PlayCell(NewTicTacToe(), 4)
	again := PlayCell(g, 4)
	if again.Board[4] != "X" || again.Turn != "O" {
		t.Errorf("occupied cell changed state: %+v", again)
	}
}

func TestRollDice_deterministicWithSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := model.GameState{}
	for i := 0; i < 10; i++ {
		g = RollDice(g, rng)
	}
	if len(g.Rolls) != 10 {
		t.Fatalf("rolls = %d, want 10", len(g.Rolls))
	}
	for i, r := range g.Rolls {
		if r < 1 || r > 6 {
			t.Errorf("roll %d = %d, out of range", i, r)
		}
	}
}
