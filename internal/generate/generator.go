package generate

import (
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/tree"
	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// GeneratePages synthesizes a complete multi-page set from a free-text
// prompt. Builders run in a fixed order (home, defaults, company suite,
// auth, chat, presence) and the first page produced under each name
// wins, so a company-suite builder can never shadow the home page.
// An empty prompt still yields a valid single-page set.
func GeneratePages(prompt string) []model.PageTree {
	intents := ClassifyIntents(prompt)

	var pages []model.PageTree
	pages = append(pages, buildHomePage(prompt))

	if intents[IntentTimeTracking] {
		pages = append(pages, buildTimeTrackingPage())
	}

	pages = append(pages, buildCompanySuitePages(intents)...)

	if intents[IntentAuth] {
		pages = append(pages, buildAuthPage())
	}
	if intents[IntentChat] {
		pages = append(pages, buildChatPage())
	}
	if intents[IntentPresence] {
		pages = append(pages, buildPresencePage())
	}

	return dedupeByName(pages)
}

// GeneratePage synthesizes one page for the single-page endpoint. The
// intent decides which builder answers; generic prompts get the home
// layout under the requested name.
func GeneratePage(prompt, pageName string) model.PageTree {
	intents := ClassifyIntents(prompt)

	var page model.PageTree
	switch {
	case intents[IntentAuth]:
		page = buildAuthPage()
	case intents[IntentTimeTracking]:
		page = buildTimeTrackingPage()
	case intents[IntentChat]:
		page = buildChatPage()
	case intents[IntentPresence]:
		page = buildPresencePage()
	default:
		page = buildHomePage(prompt)
	}

	if pageName != "" {
		page.Name = pageName
	}
	tree.ApplyDefaults(page.Tree)
	return page
}

// dedupeByName keeps only the first occurrence of each page name, in
// builder-invocation order, and normalizes frames.
func dedupeByName(pages []model.PageTree) []model.PageTree {
	seen := make(map[string]bool, len(pages))
	out := make([]model.PageTree, 0, len(pages))
	for _, p := range pages {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		tree.ApplyDefaults(p.Tree)
		out = append(out, p)
	}
	return out
}
