package i18n

import (
	"fmt"
	"sort"
)

// Entity domains a strings document may name. The bridge never invents
// domains, so anything else in a document is an authoring error.
var knownDomains = map[string]bool{
	"sensor":        true,
	"binary_sensor": true,
	"button":        true,
	"select":        true,
	"switch":        true,
	"light":         true,
	"lock":          true,
	"climate":       true,
	"cover":         true,
	"number":        true,
}

// Table is the immutable lookup view over one strings document. It is
// built once at startup and shared read-only afterwards.
type Table struct {
	entity map[string]map[string]Value
	steps  map[string]Step
	errs   map[string]Value
	aborts map[string]Value
}

// NewTable validates a document and indexes it for lookup. Each entity
// domain must be known, and every (domain, key) pair must carry a
// non-empty name.
func NewTable(doc *Document) (*Table, error) {
	t := &Table{
		entity: make(map[string]map[string]Value, len(doc.Entity)),
		steps:  make(map[string]Step, len(doc.Config.Step)),
		errs:   make(map[string]Value, len(doc.Config.Error)),
		aborts: make(map[string]Value, len(doc.Config.Abort)),
	}
	for dom, keys := range doc.Entity {
		if !knownDomains[dom] {
			return nil, fmt.Errorf("unknown entity domain %q", dom)
		}
		byKey := make(map[string]Value, len(keys))
		for key, entry := range keys {
			if key == "" {
				return nil, fmt.Errorf("entity domain %q: empty key", dom)
			}
			if entry.Name.IsZero() {
				return nil, fmt.Errorf("entity %s.%s: empty name", dom, key)
			}
			byKey[key] = entry.Name
		}
		t.entity[dom] = byKey
	}
	for id, step := range doc.Config.Step {
		data := make(map[string]Value, len(step.Data))
		for field, v := range step.Data {
			if v.IsZero() {
				return nil, fmt.Errorf("config step %q: field %q has empty label", id, field)
			}
			data[field] = v
		}
		t.steps[id] = Step{Title: step.Title, Description: step.Description, Data: data}
	}
	for code, v := range doc.Config.Error {
		if v.IsZero() {
			return nil, fmt.Errorf("config error %q: empty text", code)
		}
		t.errs[code] = v
	}
	for code, v := range doc.Config.Abort {
		if v.IsZero() {
			return nil, fmt.Errorf("config abort %q: empty text", code)
		}
		t.aborts[code] = v
	}
	return t, nil
}

// EntityName returns the display name value for an entity. A miss wraps
// ErrMissingKey; it never panics.
func (t *Table) EntityName(domain, key string) (Value, error) {
	if v, ok := t.entity[domain][key]; ok {
		return v, nil
	}
	return Value{}, fmt.Errorf("entity %s.%s: %w", domain, key, ErrMissingKey)
}

// ConfigField returns the label for one input of a setup-flow step.
func (t *Table) ConfigField(step, field string) (Value, error) {
	if v, ok := t.steps[step].Data[field]; ok {
		return v, nil
	}
	return Value{}, fmt.Errorf("config step %s, field %s: %w", step, field, ErrMissingKey)
}

// StepTitle returns the title of a setup-flow step.
func (t *Table) StepTitle(step string) (Value, error) {
	s, ok := t.steps[step]
	if !ok || s.Title.IsZero() {
		return Value{}, fmt.Errorf("config step %s: title: %w", step, ErrMissingKey)
	}
	return s.Title, nil
}

// StepDescription returns the description of a setup-flow step.
func (t *Table) StepDescription(step string) (Value, error) {
	s, ok := t.steps[step]
	if !ok || s.Description.IsZero() {
		return Value{}, fmt.Errorf("config step %s: description: %w", step, ErrMissingKey)
	}
	return s.Description, nil
}

// FlowError returns the text for a setup-flow error code.
func (t *Table) FlowError(code string) (Value, error) {
	if v, ok := t.errs[code]; ok {
		return v, nil
	}
	return Value{}, fmt.Errorf("config error %s: %w", code, ErrMissingKey)
}

// FlowAbort returns the text for a setup-flow abort reason.
func (t *Table) FlowAbort(code string) (Value, error) {
	if v, ok := t.aborts[code]; ok {
		return v, nil
	}
	return Value{}, fmt.Errorf("config abort %s: %w", code, ErrMissingKey)
}

// Domains lists the entity domains present in the table, sorted.
func (t *Table) Domains() []string {
	out := make([]string, 0, len(t.entity))
	for dom := range t.entity {
		out = append(out, dom)
	}
	sort.Strings(out)
	return out
}

// Keys lists the entity keys of one domain, sorted.
func (t *Table) Keys(domain string) []string {
	out := make([]string, 0, len(t.entity[domain]))
	for key := range t.entity[domain] {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Document rebuilds the wire document for the table. Together with
// ParseDocument this makes serialization lossless both ways.
func (t *Table) Document() *Document {
	doc := &Document{}
	if len(t.entity) > 0 {
		doc.Entity = make(map[string]map[string]EntityEntry, len(t.entity))
		for dom, keys := range t.entity {
			byKey := make(map[string]EntityEntry, len(keys))
			for key, v := range keys {
				byKey[key] = EntityEntry{Name: v}
			}
			doc.Entity[dom] = byKey
		}
	}
	if len(t.steps) > 0 {
		doc.Config.Step = make(map[string]Step, len(t.steps))
		for id, step := range t.steps {
			data := make(map[string]Value, len(step.Data))
			for field, v := range step.Data {
				data[field] = v
			}
			doc.Config.Step[id] = Step{Title: step.Title, Description: step.Description, Data: data}
		}
	}
	if len(t.errs) > 0 {
		doc.Config.Error = make(map[string]Value, len(t.errs))
		for code, v := range t.errs {
			doc.Config.Error[code] = v
		}
	}
	if len(t.aborts) > 0 {
		doc.Config.Abort = make(map[string]Value, len(t.aborts))
		for code, v := range t.aborts {
			doc.Config.Abort[code] = v
		}
	}
	return doc
}
