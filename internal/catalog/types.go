// Package catalog holds the read-only service catalog: the services offered
// and the ordered questionnaire asked for each of them.
package catalog

// Category groups services by the kind of deliverable.
type Category string

// Service categories.
const (
	CategoryWeb         Category = "web"
	CategoryMobile      Category = "mobile"
	CategoryAutomation  Category = "automation"
	CategoryDevelopment Category = "development"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryAutomation, CategoryDevelopment:
		return true
	}
	return false
}

// Kind is the answer shape a question expects.
type Kind string

// Question kinds.
const (
	KindShortText        Kind = "short_text"
	KindLongText         Kind = "long_text"
	KindSingleChoice     Kind = "single_choice"
	KindSingleChoiceList Kind = "single_choice_list"
	KindMultiChoice      Kind = "multi_choice"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindShortText, KindLongText, KindSingleChoice, KindSingleChoiceList, KindMultiChoice:
		return true
	}
	return false
}

// IsSelection reports whether answers to this kind are a set of options
// rather than a single string.
func (k Kind) IsSelection() bool {
	return k == KindMultiChoice
}

// HasChoices reports whether the kind is answered from a fixed option list.
func (k Kind) HasChoices() bool {
	switch k {
	case KindSingleChoice, KindSingleChoiceList, KindMultiChoice:
		return true
	}
	return false
}

// ServiceDefinition describes one service a client can request.
type ServiceDefinition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon" yaml:"icon"`
	Category    Category `json:"category" yaml:"category"`
}

// QuestionDefinition is one screen of a service questionnaire.
type QuestionDefinition struct {
	ID       string   `json:"id" yaml:"id"`
	Prompt   string   `json:"prompt" yaml:"prompt"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Choices  []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	Required bool     `json:"required" yaml:"required"`
}

// HasChoice reports whether option is one of the question's fixed choices.
func (q QuestionDefinition) HasChoice(option string) bool {
	for _, c := range q.Choices {
		if c == option {
			return true
		}
	}
	return false
}
