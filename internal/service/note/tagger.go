package note

import (
	"strings"
	"unicode"
)

type tagRule struct {
	tag      string
	keywords []string
}

// tagRules is evaluated in order, which fixes the order of derived tags.
var tagRules = []tagRule{
	{tag: "work", keywords: []string{"meeting", "project", "deadline", "client", "report", "standup"}},
	{tag: "health", keywords: []string{"doctor", "dentist", "gym", "workout", "run", "medication", "sleep"}},
	{tag: "finance", keywords: []string{"pay", "invoice", "bill", "budget", "tax", "taxes", "bank", "rent"}},
	{tag: "family", keywords: []string{"mom", "dad", "kids", "family", "birthday", "anniversary"}},
	{tag: "errand", keywords: []string{"groceries", "pickup", "store", "errand", "buy", "return"}},
	{tag: "idea", keywords: []string{"idea", "maybe", "someday", "brainstorm"}},
}

// Tags returns rule tags whose keywords appear as whole words in text,
// followed by explicit tags not already present. Matching ignores case.
func Tags(text string, explicit []string) []string {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = struct{}{}
	}

	tags := []string{}
	seen := make(map[string]struct{})
	add := func(tag string) {
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}

	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if _, ok := words[kw]; ok {
				add(rule.tag)
				break
			}
		}
	}

	for _, tag := range explicit {
		if tag = strings.TrimSpace(tag); tag != "" {
			add(tag)
		}
	}

	return tags
}
