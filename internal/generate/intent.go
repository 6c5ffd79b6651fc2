package generate

import (
	"regexp"
	"strings"
)

// Intent is one detected request category. Intents are classified
// independently: a single prompt can carry several at once.
type Intent string

const (
	IntentAuth          Intent = "auth"
	IntentChat          Intent = "chat"
	IntentTimeTracking  Intent = "time-tracking"
	IntentPresence      Intent = "presence"
	IntentProjects      Intent = "projects"
	IntentTasks         Intent = "tasks"
	IntentNotifications Intent = "notifications"
	IntentCommunication Intent = "communication"
)

// Fixed keyword vocabularies per intent, matched against the lowercased
// prompt. German and English terms both count; the editor audience is
// mixed.
var intentVocabularies = map[Intent]*regexp.Regexp{
	IntentAuth:          regexp.MustCompile(`\b(login|log\s*in|anmelden|anmeldung|auth\w*|sign\s*in|registrier\w*|passwort|password)`),
	IntentChat:          regexp.MustCompile(`\b(chat\w*|nachricht\w*|messag\w*|unterhaltung)`),
	IntentTimeTracking:  regexp.MustCompile(`\b(zeiterfassung|zeit\s*erfassen|time\s*track\w*|arbeitszeit\w*|stunden\s*(erfassen|zettel)|timer)`),
	IntentPresence:      regexp.MustCompile(`\b(online[-\s]*status|presence|anwesenheit\w*|verfügbarkeit|wer\s+ist\s+online)`),
	IntentProjects:      regexp.MustCompile(`\b(projekt\w*|project\w*)`),
	IntentTasks:         regexp.MustCompile(`\b(aufgabe\w*|task\w*|todo\w*|to-do\w*)`),
	IntentNotifications: regexp.MustCompile(`\b(benachrichtigung\w*|notification\w*|mitteilung\w*)`),
	IntentCommunication: regexp.MustCompile(`\b(kommunikation\w*|communication\w*|team[-\s]*chat)`),
}

// ClassifyIntents returns every intent whose vocabulary matches the
// prompt. Matching is independent per intent; intents are not mutually
// exclusive.
func ClassifyIntents(prompt string) map[Intent]bool {
	lowered := strings.ToLower(prompt)
	detected := make(map[Intent]bool)
	for intent, vocab := range intentVocabularies {
		if vocab.MatchString(lowered) {
			detected[intent] = true
		}
	}
	return detected
}

// authPageName matches page names that look like an auth page.
var authPageName = regexp.MustCompile(`(?i)^(login|anmelden|auth|authentication|sign\s*in)$`)

// SanitizePageNameHint suppresses a page-name hint that looks like an
// auth page when the prompt does not explicitly request auth. Without the
// guard, a generic edit request issued on a page named "Login" would bias
// any downstream LLM call toward regenerating a login form.
func SanitizePageNameHint(pageName, prompt string) string {
	if pageName == "" {
		return ""
	}
	if authPageName.MatchString(pageName) && !ClassifyIntents(prompt)[IntentAuth] {
		return ""
	}
	return pageName
}
