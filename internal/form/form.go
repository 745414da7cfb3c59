// Package form holds the entry form's validation and sizing helpers.
package form

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Field struct {
	Name     string
	Value    string
	Required bool
	Invalid  bool
}

type Form struct {
	Fields []Field
}

// Set updates the value of the named field.
func (f *Form) Set(name, value string) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			f.Fields[i].Value = value
			return
		}
	}
}

// Validate marks every blank required field invalid and clears the mark on
// filled ones. It reports whether all required fields are filled.
func (f *Form) Validate() bool {
	ok := true
	for i := range f.Fields {
		field := &f.Fields[i]
		if !field.Required {
			continue
		}
		if strings.TrimSpace(field.Value) == "" {
			field.Invalid = true
			ok = false
			continue
		}
		field.Invalid = false
	}
	return ok
}

func (f Form) IsInvalid(name string) bool {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Invalid
		}
	}
	return false
}

// Stats counts characters and words the way the counter under the content
// box shows them.
type Stats struct {
	Characters int
	Words      int
}

func Count(text string) Stats {
	return Stats{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d characters, %d words", s.Characters, s.Words)
}

// FitHeight clamps a line count to [minRows, maxRows].
func FitHeight(lines, minRows, maxRows int) int {
	if minRows < 1 {
		minRows = 1
	}
	if maxRows < minRows {
		maxRows = minRows
	}
	switch {
	case lines < minRows:
		return minRows
	case lines > maxRows:
		return maxRows
	default:
		return lines
	}
}
