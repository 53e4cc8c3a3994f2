package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/webjhones/requirements-intake/internal/schemas"
	"gopkg.in/yaml.v3"
)

//go:embed services.yaml
var defaultDocument []byte

// Catalog is the immutable set of services and their question sequences.
// It is loaded once at startup and shared read-only by every session.
type Catalog struct {
	services  []ServiceDefinition
	byID      map[string]int
	questions map[string][]QuestionDefinition
}

type document struct {
	Services  []ServiceDefinition             `yaml:"services"`
	Questions map[string][]QuestionDefinition `yaml:"questions"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(defaultDocument)
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return Load(data)
}

// Load decodes and checks a YAML (or JSON) catalog document.
func Load(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Message: "failed to parse document", Cause: err}
	}
	if err := schemas.ValidateCatalog(raw); err != nil {
		return nil, &LoadError{Message: "document does not match schema", Cause: err}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to decode document", Cause: err}
	}
	return build(doc)
}

func build(doc document) (*Catalog, error) {
	c := &Catalog{
		services:  make([]ServiceDefinition, 0, len(doc.Services)),
		byID:      make(map[string]int, len(doc.Services)),
		questions: make(map[string][]QuestionDefinition, len(doc.Questions)),
	}

	for _, svc := range doc.Services {
		if _, dup := c.byID[svc.ID]; dup {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate service id %q", svc.ID)}
		}
		if !svc.Category.Valid() {
			return nil, &LoadError{Message: fmt.Sprintf("service %q has unknown category %q", svc.ID, svc.Category)}
		}
		c.byID[svc.ID] = len(c.services)
		c.services = append(c.services, svc)
	}

	for serviceID, sequence := range doc.Questions {
		if _, ok := c.byID[serviceID]; !ok {
			return nil, &LoadError{Message: fmt.Sprintf("questions declared for unknown service %q", serviceID)}
		}
		if err := checkSequence(serviceID, sequence); err != nil {
			return nil, err
		}
		c.questions[serviceID] = sequence
	}

	return c, nil
}

func checkSequence(serviceID string, sequence []QuestionDefinition) error {
	seen := make(map[string]bool, len(sequence))
	for _, q := range sequence {
		if seen[q.ID] {
			return &LoadError{Message: fmt.Sprintf("service %q: duplicate question id %q", serviceID, q.ID)}
		}
		seen[q.ID] = true

		if !q.Kind.Valid() {
			return &LoadError{Message: fmt.Sprintf("service %q: question %q has unknown kind %q", serviceID, q.ID, q.Kind)}
		}
		if q.Kind.HasChoices() && len(q.Choices) == 0 {
			return &LoadError{Message: fmt.Sprintf("service %q: question %q of kind %s needs choices", serviceID, q.ID, q.Kind)}
		}
		if !q.Kind.HasChoices() && len(q.Choices) > 0 {
			return &LoadError{Message: fmt.Sprintf("service %q: question %q of kind %s cannot have choices", serviceID, q.ID, q.Kind)}
		}
	}
	return nil
}

// Services returns every service in declaration order.
func (c *Catalog) Services() []ServiceDefinition {
	out := make([]ServiceDefinition, len(c.services))
	copy(out, c.services)
	return out
}

// Service looks up a service by id.
func (c *Catalog) Service(id string) (ServiceDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ServiceDefinition{}, false
	}
	return c.services[i], true
}

// QuestionsFor returns the ordered question sequence for a service.
// An unknown service yields an empty sequence, not an error; callers treat
// an empty result as "no questionnaire available".
func (c *Catalog) QuestionsFor(serviceID string) []QuestionDefinition {
	sequence := c.questions[serviceID]
	out := make([]QuestionDefinition, len(sequence))
	for i, q := range sequence {
		q.Choices = append([]string(nil), q.Choices...)
		out[i] = q
	}
	return out
}
