package storage

import (
	"strings"
	"unicode"
)

const maxTags = 10

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the a an and or but in on at to for of with by is are was were be been
have has had do does did will would could should may might can this that these those
i you he she it we they me him her us them`) {
		stopWords[w] = struct{}{}
	}
}

// ExtractTags picks up to ten distinct keywords from text: lowercased words
// longer than three characters that are not stop words, in order of first
// appearance.
func ExtractTags(text string) []string {
	seen := map[string]struct{}{}
	tags := []string{}
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(word)) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tags = append(tags, word)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}
