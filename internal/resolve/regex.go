package resolve

import (
	"regexp"
	"strings"

	"wpagent/internal/op"
)

// Deterministic last-resort patterns for short French commands. Substring
// matching on purpose, no tokenization: this is a safety net for when no
// model is reachable, not a parser. ExtractSimple is only invoked by
// callers that ask for it; it is never chained behind the classifier.

var (
	creationVerbs = []string{"crée", "créer", "créé", "creer", "ajoute", "ajouter"}
	listVerbs     = []string{"liste", "lister", "affiche", "afficher", "montre", "montrer"}

	titleRe   = regexp.MustCompile(`(?i)(intitulé|titre|nommé)\s+["']?([^"']+)["']?`)
	contentRe = regexp.MustCompile(`(?i)(contenu|texte|corps)\s+["']?([^"']+)["']?`)
)

const (
	defaultTitle   = "Nouvel article"
	defaultContent = "Contenu de l'article"
)

// ExtractSimple pattern-matches a short French command into a REST
// operation without any external call. The second return is false when no
// pattern family matches; the caller must try another strategy, never
// treat no-match as success.
func ExtractSimple(text string) (op.Rest, bool) {
	lower := strings.ToLower(text)

	if containsAny(lower, creationVerbs) && mentionsPost(lower) {
		title := defaultTitle
		if m := titleRe.FindStringSubmatch(text); m != nil {
			title = strings.TrimSpace(m[2])
		}
		content := defaultContent
		if m := contentRe.FindStringSubmatch(text); m != nil {
			content = strings.TrimSpace(m[2])
		}
		return op.Rest{
			Method:   "post",
			Endpoint: "posts",
			Params:   map[string]any{},
			Data: map[string]any{
				"title":   title,
				"content": content,
				"status":  "publish",
			},
		}, true
	}

	if containsAny(lower, listVerbs) {
		if mentionsPost(lower) {
			return op.Rest{Method: "get", Endpoint: "posts", Params: map[string]any{}, Data: map[string]any{}}, true
		}
		if strings.Contains(lower, "page") {
			return op.Rest{Method: "get", Endpoint: "pages", Params: map[string]any{}, Data: map[string]any{}}, true
		}
	}

	return op.Rest{}, false
}

func mentionsPost(lower string) bool {
	return strings.Contains(lower, "article") || strings.Contains(lower, "post")
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
