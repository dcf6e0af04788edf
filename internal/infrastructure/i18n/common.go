package i18n

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CommonTable is the host-shared text catalog that strings documents may
// reference instead of repeating wording. Paths address nested objects
// with :: separators, e.g. "config_flow::data::host".
type CommonTable struct {
	root map[string]any
}

// ParseCommon decodes the common catalog. Leaves must be strings.
func ParseCommon(data []byte) (*CommonTable, error) {
	if err := checkDuplicateKeys(data); err != nil {
		return nil, err
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode common document: %w", err)
	}
	return &CommonTable{root: root}, nil
}

// Lookup walks a :: path to its string leaf. A missing segment or a
// non-string leaf wraps ErrUnresolvedRef.
func (c *CommonTable) Lookup(path string) (string, error) {
	node := any(c.root)
	for _, seg := range strings.Split(path, refSeparator) {
		obj, ok := node.(map[string]any)
		if !ok {
			return "", fmt.Errorf("common path %q: %w", path, ErrUnresolvedRef)
		}
		node, ok = obj[seg]
		if !ok {
			return "", fmt.Errorf("common path %q: %w", path, ErrUnresolvedRef)
		}
	}
	leaf, ok := node.(string)
	if !ok {
		return "", fmt.Errorf("common path %q is not a string: %w", path, ErrUnresolvedRef)
	}
	return leaf, nil
}

// ResolveValue is the one step that turns a value into display text.
// Literals pass through. References are looked up in the common table;
// on failure the raw reference text is returned together with the error
// so a caller can keep running with it.
func ResolveValue(v Value, common *CommonTable) (string, error) {
	if !v.IsRef() {
		return v.String(), nil
	}
	if common == nil {
		return v.String(), fmt.Errorf("common path %q: no common table: %w", v.RefPath(), ErrUnresolvedRef)
	}
	text, err := common.Lookup(v.RefPath())
	if err != nil {
		return v.String(), err
	}
	return text, nil
}

// Resolved returns a copy of the table with every reference replaced by
// its common text. Unresolved references keep their raw form in the copy
// and are reported; the caller decides whether that is fatal.
func (t *Table) Resolved(common *CommonTable) (*Table, []error) {
	var errs []error
	resolve := func(v Value) Value {
		text, err := ResolveValue(v, common)
		if err != nil {
			errs = append(errs, err)
		}
		return Literal(text)
	}
	out := &Table{
		entity: make(map[string]map[string]Value, len(t.entity)),
		steps:  make(map[string]Step, len(t.steps)),
		errs:   make(map[string]Value, len(t.errs)),
		aborts: make(map[string]Value, len(t.aborts)),
	}
	for dom, keys := range t.entity {
		byKey := make(map[string]Value, len(keys))
		for key, v := range keys {
			byKey[key] = resolve(v)
		}
		out.entity[dom] = byKey
	}
	for id, step := range t.steps {
		data := make(map[string]Value, len(step.Data))
		for field, v := range step.Data {
			data[field] = resolve(v)
		}
		rs := Step{Data: data}
		if !step.Title.IsZero() {
			rs.Title = resolve(step.Title)
		}
		if !step.Description.IsZero() {
			rs.Description = resolve(step.Description)
		}
		out.steps[id] = rs
	}
	for code, v := range t.errs {
		out.errs[code] = resolve(v)
	}
	for code, v := range t.aborts {
		out.aborts[code] = resolve(v)
	}
	return out, errs
}
