// Package intake implements the client intake flow: profile capture, the
// questionnaire navigator with its required-answer gate, and the answer store
// that accumulates typed answers for one session.
package intake

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnswerValue is either free text (text and single-choice kinds) or an
// ordered set of selected options (multi-choice kinds).
type AnswerValue struct {
	selection bool
	text      string
	options   []string
}

// Text builds a text answer.
func Text(s string) AnswerValue {
	return AnswerValue{text: s}
}

// Selection builds a selection answer. Duplicates are dropped, keeping the
// first occurrence.
func Selection(options ...string) AnswerValue {
	v := AnswerValue{selection: true, options: make([]string, 0, len(options))}
	for _, o := range options {
		if !v.Contains(o) {
			v.options = append(v.options, o)
		}
	}
	return v
}

// IsSelection reports whether v holds a set of options.
func (v AnswerValue) IsSelection() bool {
	return v.selection
}

// Text returns the text of a text answer, or "" for a selection.
func (v AnswerValue) Text() string {
	return v.text
}

// Options returns a copy of the selected options in insertion order.
func (v AnswerValue) Options() []string {
	if !v.selection {
		return nil
	}
	return append([]string(nil), v.options...)
}

// Contains reports whether option is selected.
func (v AnswerValue) Contains(option string) bool {
	for _, o := range v.options {
		if o == option {
			return true
		}
	}
	return false
}

// Len is the number of selected options; 0 for text answers.
func (v AnswerValue) Len() int {
	return len(v.options)
}

// IsEmpty reports whether the answer carries nothing: blank text after
// trimming, or no selected options.
func (v AnswerValue) IsEmpty() bool {
	if v.selection {
		return len(v.options) == 0
	}
	return strings.TrimSpace(v.text) == ""
}

// String renders the answer for plain-text output.
func (v AnswerValue) String() string {
	if v.selection {
		return strings.Join(v.options, ", ")
	}
	return v.text
}

// with returns a copy with option added (included) or removed.
func (v AnswerValue) with(option string, included bool) AnswerValue {
	out := Selection()
	for _, o := range v.options {
		if o != option {
			out.options = append(out.options, o)
		}
	}
	if included {
		out.options = append(out.options, option)
	}
	return out
}

// MarshalJSON encodes text answers as a JSON string and selections as an array.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.selection {
		return json.Marshal(v.Options())
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = Text(text)
		return nil
	}
	var options []string
	if err := json.Unmarshal(data, &options); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings: %w", err)
	}
	*v = Selection(options...)
	return nil
}
