package widget

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// The "tasks" and "todo" component kinds share this widget under
// different labels.

// ToggleTask flips the done flag of the task with the given id. Unknown
// ids leave the list unchanged.
func ToggleTask(items []model.TaskItem, id string) []model.TaskItem {
	out := make([]model.TaskItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			out[i].Done = !out[i].Done
			break
		}
	}
	return out
}

// AddTask appends a new open task with the given title.
func AddTask(items []model.TaskItem, title string) []model.TaskItem {
	out := make([]model.TaskItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, model.TaskItem{ID: uuid.NewString(), Title: title})
}

// CreateTicket appends a ticket to the support log. The log is
// append-only; there is no edit or delete transition.
func CreateTicket(tickets []model.SupportTicket, subject, message, channel string, now time.Time) []model.SupportTicket {
	out := make([]model.SupportTicket, len(tickets), len(tickets)+1)
	copy(out, tickets)
	return append(out, model.SupportTicket{
		ID:        uuid.NewString(),
		Subject:   subject,
		Message:   message,
		CreatedAt: now,
		Channel:   channel,
	})
}

// AppendMessage appends a chat message with the given role and text.
func AppendMessage(messages []model.ChatMessage, role, text string, now time.Time) []model.ChatMessage {
	out := make([]model.ChatMessage, len(messages), len(messages)+1)
	copy(out, messages)
	return append(out, model.ChatMessage{
		ID:     uuid.NewString(),
		Role:   role,
		Text:   text,
		SentAt: now,
	})
}

// DefaultNavItems is the small fallback nav rendered when a navbar
// container carries no items.
func DefaultNavItems() []model.NavbarItem {
	return []model.NavbarItem{
		{ID: uuid.NewString(), Label: "Start", Action: model.ActionNavigate, TargetPage: "Start", Icon: "home"},
		{ID: uuid.NewString(), Label: "Profil", Action: model.ActionNavigate, TargetPage: "Profil", Icon: "user"},
	}
}
