// Package intent implements the local statistical classifier. It maps an
// utterance to a wpapi.<resource>.<action> label with a confidence score,
// using token weights learned from a built-in bilingual corpus. Tokens
// shared by many labels (list verbs, articles) weigh less than tokens
// specific to a few. The classifier is fully offline and never errors:
// an utterance it cannot place comes back with a score of zero.
package intent

import (
	"regexp"
	"sort"
	"strings"
)

// numToken stands in for any numeric token, so one training utterance
// with an %id% placeholder matches every concrete ID.
const numToken = "#num"

// labelRe matches wpapi.<resource>.<action>.
var labelRe = regexp.MustCompile(`^wpapi\.([a-z_]+)\.([a-zA-Z]+)$`)

var (
	quotedRe = regexp.MustCompile(`["']([^"']+)["']|«\s*([^»]+?)\s*»`)
	numberRe = regexp.MustCompile(`\b(\d+)\b`)
	fileRe   = regexp.MustCompile(`\b(\S+\.(?:jpe?g|png|gif|webp|svg|pdf|mp4|mp3|zip))\b`)
)

// accentFolder maps French accented characters to their ASCII base so
// "crée" and "cree" train and match identically.
var accentFolder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
)

// stopwords carry no intent signal and are dropped before scoring.
var stopwords = map[string]bool{
	"le": true, "la": true, "les": true, "l": true, "un": true, "une": true,
	"de": true, "du": true, "des": true, "d": true, "et": true, "en": true,
	"mon": true, "ma": true, "mes": true, "moi": true, "me": true,
	"tous": true, "toutes": true, "tout": true, "toute": true, "au": true,
	"the": true, "a": true, "an": true, "all": true, "my": true,
	"to": true, "of": true, "is": true, "it": true, "please": true,
	"plait": true, "stp": true, "svp": true,
}

// Result is one classification outcome.
type Result struct {
	Label    string
	Resource string
	Action   string
	Score    float64
	Entities map[string]string
}

// Classifier scores utterances against trained labels. Train may be called
// after New to add labels or utterances; Classify never writes, so a
// trained classifier is safe for concurrent use. Train must not run
// concurrently with Classify.
type Classifier struct {
	vocab map[string]map[string]bool
	df    map[string]int
}

// New returns a classifier trained on the built-in corpus.
func New() *Classifier {
	c := &Classifier{vocab: make(map[string]map[string]bool)}
	for label, utterances := range trainingCorpus {
		c.Train(label, utterances...)
	}
	return c
}

// Train adds utterances under a label. An unknown label creates a new
// class; repeated calls accumulate vocabulary.
func (c *Classifier) Train(label string, utterances ...string) {
	set := c.vocab[label]
	if set == nil {
		set = make(map[string]bool)
		c.vocab[label] = set
	}
	for _, u := range utterances {
		for _, tok := range tokenize(u) {
			set[tok] = true
		}
	}
	c.rebuildDF()
}

// Classify scores the utterance against every trained label and returns
// the best match. Score is in [0, 1]: the mean distinctiveness weight of
// the known input tokens the winning label covers. Ties resolve to the first
// label in sorted order, keeping results deterministic.
func (c *Classifier) Classify(text string) Result {
	entities := extractEntities(text)
	scored := quotedRe.ReplaceAllString(text, " ")
	tokens := tokenize(scored)
	if len(tokens) == 0 || len(c.vocab) == 0 {
		return Result{Entities: entities}
	}

	// Tokens no label has seen are entity material (titles, plugin
	// names), not intent signal; they do not dilute the score.
	known := 0
	for _, tok := range tokens {
		if c.df[tok] > 0 {
			known++
		}
	}
	if known == 0 {
		return Result{Entities: entities}
	}

	labels := make([]string, 0, len(c.vocab))
	for label := range c.vocab {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best := Result{Entities: entities}
	for _, label := range labels {
		var sum float64
		for _, tok := range tokens {
			if c.vocab[label][tok] {
				sum += c.weight(tok)
			}
		}
		score := sum / float64(known)
		if score > best.Score {
			best.Label = label
			best.Score = score
		}
	}

	if m := labelRe.FindStringSubmatch(best.Label); m != nil {
		best.Resource = m[1]
		best.Action = m[2]
	}
	finishEntities(&best, text)
	return best
}

// weight returns the distinctiveness of a token: 1 when only one label
// trained it, decaying toward a floor as more labels share it. The decay
// is damped so common action verbs (liste, affiche, show) still carry
// enough signal to clear the confidence gate alongside a specific noun.
func (c *Classifier) weight(tok string) float64 {
	n := len(c.vocab)
	if n <= 1 {
		return 1
	}
	w := 1 - 0.8*float64(c.df[tok]-1)/float64(n-1)
	if w < 0.2 {
		return 0.2
	}
	return w
}

// rebuildDF recounts document frequencies. Train pays this cost so that
// inference stays read-only.
func (c *Classifier) rebuildDF() {
	df := make(map[string]int)
	for _, set := range c.vocab {
		for tok := range set {
			df[tok]++
		}
	}
	c.df = df
}

// tokenize lowercases, folds accents, splits on non-alphanumerics, drops
// stopwords, and collapses numbers and %id% placeholders into numToken.
// Other %...% placeholders are slots, not tokens, and are dropped.
func tokenize(text string) []string {
	folded := accentFolder.Replace(strings.ToLower(text))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '%')
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		switch {
		case f == "%id%" || isNumber(f):
			tokens = append(tokens, numToken)
		case strings.HasPrefix(f, "%") && strings.HasSuffix(f, "%"):
		case stopwords[f]:
		case f != "":
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// extractEntities pulls slot values visible in any utterance: the first
// quoted string and the first standalone number.
func extractEntities(text string) map[string]string {
	entities := make(map[string]string)
	if m := quotedRe.FindStringSubmatch(text); m != nil {
		v := m[1]
		if v == "" {
			v = m[2]
		}
		entities["name"] = v
	}
	if m := numberRe.FindStringSubmatch(text); m != nil {
		entities["id"] = m[1]
	}
	return entities
}

// finishEntities adds resource-specific slots once the label is known.
func finishEntities(r *Result, text string) {
	switch r.Resource {
	case "plugins":
		if name, ok := r.Entities["name"]; ok {
			r.Entities["plugin"] = name
			delete(r.Entities, "name")
		} else if p := wordAfter(text, "plugin", "extension"); p != "" {
			r.Entities["plugin"] = p
		}
	case "media":
		if r.Action == "upload" {
			if m := fileRe.FindStringSubmatch(text); m != nil {
				r.Entities["file"] = m[1]
			}
		}
	}
}

// wordAfter returns the token immediately following the first occurrence
// of any marker word, skipping stopwords.
func wordAfter(text string, markers ...string) string {
	folded := accentFolder.Replace(strings.ToLower(text))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_')
	})
	for i, f := range fields {
		for _, m := range markers {
			if f != m {
				continue
			}
			for j := i + 1; j < len(fields); j++ {
				if !stopwords[fields[j]] {
					return fields[j]
				}
			}
		}
	}
	return ""
}
