package generate

import (
	"github.com/google/uuid"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// The page builders. Each produces a complete, valid page from nothing
// but the prompt; the deterministic path is not a degraded mode.

func buildHomePage(prompt string) model.PageTree {
	palette := PickPalette(prompt)
	heading := "Meine App"
	if prompt != "" {
		heading = "Deine neue App"
	}

	children := VStack([]StackItem{
		{Type: model.NodeText, Props: model.Props{Text: heading},
			Style: map[string]string{"fontSize": "28", "fontWeight": "bold"}},
		{Type: model.NodeText, Props: model.Props{Text: "Tippe auf ein Element, um es zu bearbeiten."}},
		{Type: model.NodeButton, Props: model.Props{
			Label: "Los geht's", Action: model.ActionNavigate, TargetPage: "Start",
		}},
		{Type: model.NodeContainer, Props: model.Props{
			Component: model.ComponentNavbar,
			NavItems: []model.NavbarItem{
				{ID: uuid.NewString(), Label: "Start", Action: model.ActionNavigate, TargetPage: "Start", Icon: "home"},
				{ID: uuid.NewString(), Label: "Kontakt", Action: model.ActionEmail, Icon: "mail"},
			},
		}, Height: 72},
	}, 48, 20)

	return newPage("Start", palette, children)
}

func buildAuthPage() model.PageTree {
	palette := PickPalette("auth")

	children := VStack([]StackItem{
		{Type: model.NodeText, Props: model.Props{Text: "Anmelden"},
			Style: map[string]string{"fontSize": "24", "fontWeight": "bold"}},
		{Type: model.NodeInput, Props: model.Props{Placeholder: "E-Mail", InputType: "email"}},
		{Type: model.NodeInput, Props: model.Props{Placeholder: "Passwort", InputType: "password"}},
		{Type: model.NodeButton, Props: model.Props{Label: "Login", Action: model.ActionLogin}},
		{Type: model.NodeButton, Props: model.Props{Label: "Registrieren", Action: model.ActionRegister},
			Style: map[string]string{"variant": "ghost"}},
		{Type: model.NodeButton, Props: model.Props{Label: "Passwort vergessen?", Action: model.ActionResetPassword},
			Style: map[string]string{"variant": "link"}},
	}, 64, 18)

	return newPage("Login", palette, children)
}

func buildChatPage() model.PageTree {
	palette := PickPalette("chat")

	children := VStack([]StackItem{
		{Type: model.NodeText, Props: model.Props{Text: "Chat"},
			Style: map[string]string{"fontSize": "24", "fontWeight": "bold"}},
		{Type: model.NodeContainer, Props: model.Props{
			Component: model.ComponentChat,
			ChatMessages: []model.ChatMessage{
				{ID: uuid.NewString(), Role: "assistant", Text: "Hallo! Wie kann ich helfen?"},
			},
		}, Height: 420},
		{Type: model.NodeInput, Props: model.Props{Placeholder: "Nachricht schreiben…", InputType: "text"}},
	}, 40, 16)

	return newPage("Chat", palette, children)
}

func buildTimeTrackingPage() model.PageTree {
	palette := PickPalette("time")

	children := VStack([]StackItem{
		{Type: model.NodeText, Props: model.Props{Text: "Zeiterfassung"},
			Style: map[string]string{"fontSize": "24", "fontWeight": "bold"}},
		{Type: model.NodeContainer, Props: model.Props{
			Component: model.ComponentTimeTracking,
			TimeTracking: &model.TimeTracking{
				Entries: []model.TimeEntry{
					{ID: uuid.NewString(), Label: "Projektarbeit", Seconds: 5400},
					{ID: uuid.NewString(), Label: "Team-Meeting", Seconds: 1800},
				},
			},
		}, Height: 320},
		{Type: model.NodeButton, Props: model.Props{Label: "Übersicht", Action: model.ActionNavigate, TargetPage: "Start"}},
	}, 40, 20)

	return newPage("Zeiterfassung", palette, children)
}

func buildPresencePage() model.PageTree {
	palette := PickPalette("presence")

	children := VStack([]StackItem{
		{Type: model.NodeText, Props: model.Props{Text: "Wer ist online?"},
			Style: map[string]string{"fontSize": "24", "fontWeight": "bold"}},
		{Type: model.NodeContainer, Props: model.Props{Component: model.ComponentPresence}, Height: 360},
	}, 40, 20)

	return newPage("Online-Status", palette, children)
}

// buildCompanySuitePages emits one page per detected company-suite topic.
func buildCompanySuitePages(intents map[Intent]bool) []model.PageTree {
	var pages []model.PageTree

	if intents[IntentProjects] {
		palette := PickPalette("projects")
		pages = append(pages, newPage("Projekte", palette, VStack([]StackItem{
			{Type: model.NodeText, Props: model.Props{Text: "Projekte"},
				Style: map[string]string{"fontSize": "24", "fontWeight": "bold"}},
			{Type: model.NodeContainer, Props: model.Props{
				Component:  model.ComponentFolderTree,
				FolderTree: seedProjectFolders(),
			}, Height: 340},
		}, 40, 20)))
	}

	if intents[IntentTasks] {
		palette := PickPalette("tasks")
		pages = append(pages, newPage("Aufgaben", palette, VStack([]StackItem{
			{Type: model.NodeText, Props: model.Props{Text: "Aufgaben"},
				Style: map[string]string{"fontSize": "24", "fontWeight": "bold"}},
			{Type: model.NodeContainer, Props: model.Props{
				Component: model.ComponentTasks,
				Tasks: []model.TaskItem{
					{ID: uuid.NewString(), Title: "Kickoff vorbereiten"},
					{ID: uuid.NewString(), Title: "Angebot freigeben", Done: true},
				},
			}, Height: 320},
		}, 40, 20)))
	}

	if intents[IntentNotifications] {
		palette := PickPalette("notifications")
		pages = append(pages, newPage("Benachrichtigungen", palette, VStack([]StackItem{
			{Type: model.NodeText, Props: model.Props{Text: "Benachrichtigungen"},
				Style: map[string]string{"fontSize": "24", "fontWeight": "bold"}},
			{Type: model.NodeContainer, Props: model.Props{Component: model.ComponentStats}, Height: 280},
		}, 40, 20)))
	}

	if intents[IntentCommunication] {
		palette := PickPalette("communication")
		pages = append(pages, newPage("Kommunikation", palette, VStack([]StackItem{
			{Type: model.NodeText, Props: model.Props{Text: "Kommunikation"},
				Style: map[string]string{"fontSize": "24", "fontWeight": "bold"}},
			{Type: model.NodeContainer, Props: model.Props{Component: model.ComponentChat}, Height: 380},
		}, 40, 20)))
	}

	return pages
}

func seedProjectFolders() *model.FolderNode {
	return &model.FolderNode{
		ID:   uuid.NewString(),
		Name: "Alle Projekte",
		Children: []*model.FolderNode{
			{ID: uuid.NewString(), Name: "Intern"},
			{ID: uuid.NewString(), Name: "Kunden"},
		},
	}
}
