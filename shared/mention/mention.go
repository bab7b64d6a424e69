// Package mention derives "@name" references from message text.
package mention

import (
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

// Extract returns the canonical names of known members referenced in text,
// in order of appearance and including repeats. Matching is case-insensitive:
// "@Alice" and "@alice" both resolve to the member's own spelling.
// Tokens that match no member are ignored.
func Extract(text string, knownMembers []string) []string {
	result := []string{}
	if len(knownMembers) == 0 || !strings.Contains(text, "@") {
		return result
	}

	canonical := make(map[string]string, len(knownMembers))
	for _, name := range knownMembers {
		key := strings.ToLower(name)
		// first spelling wins if two members differ only in case
		if _, ok := canonical[key]; !ok {
			canonical[key] = name
		}
	}

	for _, m := range tokenRe.FindAllStringSubmatch(text, -1) {
		if name, ok := canonical[strings.ToLower(m[1])]; ok {
			result = append(result, name)
		}
	}
	return result
}
