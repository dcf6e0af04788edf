package i18n

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Lookup errors. Callers are expected to treat both as soft failures:
// log, fall back to the raw key or reference text, keep running.
var (
	ErrMissingKey    = errors.New("no such key")
	ErrUnresolvedRef = errors.New("unresolved common reference")
)

const (
	refPrefix    = "[%key:"
	refSuffix    = "%]"
	refNamespace = "common"
	refSeparator = "::"
)

// Value is one localizable string from a strings document: either a
// literal, or a reference into the shared common document written
// [%key:common::config_flow::data::host%]. The wire form round-trips
// exactly through parsing and formatting.
type Value struct {
	literal string
	ref     string
}

// Literal builds a plain text value.
func Literal(s string) Value { return Value{literal: s} }

// CommonRef builds a reference to a common-document path such as
// "config_flow::data::host".
func CommonRef(path string) Value { return Value{ref: path} }

// IsRef reports whether the value is a common reference.
func (v Value) IsRef() bool { return v.ref != "" }

// RefPath returns the common path for reference values, "" otherwise.
func (v Value) RefPath() string { return v.ref }

// IsZero reports whether the value carries nothing at all.
func (v Value) IsZero() bool { return v.literal == "" && v.ref == "" }

// String renders the wire form: the literal itself, or the bracketed
// reference syntax.
func (v Value) String() string {
	if v.ref != "" {
		return refPrefix + refNamespace + refSeparator + v.ref + refSuffix
	}
	return v.literal
}

// ParseValue reads the wire form of a single value. Anything that does
// not start with the reference prefix is a literal. References must name
// the common namespace and a non-empty path.
func ParseValue(s string) (Value, error) {
	if !strings.HasPrefix(s, refPrefix) {
		return Value{literal: s}, nil
	}
	if !strings.HasSuffix(s, refSuffix) {
		return Value{}, fmt.Errorf("malformed reference %q: missing %q", s, refSuffix)
	}
	inner := s[len(refPrefix) : len(s)-len(refSuffix)]
	ns, path, ok := strings.Cut(inner, refSeparator)
	if !ok || ns != refNamespace {
		return Value{}, fmt.Errorf("malformed reference %q: only the %s namespace is supported", s, refNamespace)
	}
	for _, seg := range strings.Split(path, refSeparator) {
		if seg == "" {
			return Value{}, fmt.Errorf("malformed reference %q: empty path segment", s)
		}
	}
	return Value{ref: path}, nil
}

// MarshalText implements encoding.TextMarshaler so values embed cleanly
// in JSON documents.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := ParseValue(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// EntityEntry is the per-entity block of a strings document. Only the
// display name is carried today.
type EntityEntry struct {
	Name Value `json:"name"`
}

// Step is one form of the setup flow: a title, a description and the
// per-field labels shown next to each input.
type Step struct {
	Title       Value            `json:"title,omitzero"`
	Description Value            `json:"description,omitzero"`
	Data        map[string]Value `json:"data,omitempty"`
}

// ConfigSection is the setup-flow text: steps keyed by step id, plus the
// error and abort reason texts keyed by code.
type ConfigSection struct {
	Step  map[string]Step  `json:"step,omitempty"`
	Error map[string]Value `json:"error,omitempty"`
	Abort map[string]Value `json:"abort,omitempty"`
}

// Document is the parsed shape of a strings file: the setup-flow section
// and the entity name catalog keyed by domain then key.
type Document struct {
	Config ConfigSection                     `json:"config,omitzero"`
	Entity map[string]map[string]EntityEntry `json:"entity,omitempty"`
}

// ParseDocument strictly decodes a strings document. Unknown fields and
// duplicated object keys are rejected so a broken document fails at load
// rather than at lookup.
func ParseDocument(data []byte) (*Document, error) {
	if err := checkDuplicateKeys(data); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode strings document: %w", err)
	}
	return &doc, nil
}

// checkDuplicateKeys walks the raw JSON token stream and errors on any
// object that repeats a key. encoding/json silently keeps the last
// occurrence, which would hide an authoring mistake.
func checkDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	var path []string
	return walkObject(dec, path)
}

func walkObject(dec *json.Decoder, path []string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil // scalar
	}
	switch delim {
	case '{':
		seen := map[string]bool{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key := keyTok.(string)
			if seen[key] {
				return fmt.Errorf("duplicate key %q at %s", key, strings.Join(path, "."))
			}
			seen[key] = true
			if err := walkObject(dec, append(path, key)); err != nil {
				return err
			}
		}
		_, err = dec.Token() // consume '}'
		return err
	case '[':
		for dec.More() {
			if err := walkObject(dec, path); err != nil {
				return err
			}
		}
		_, err = dec.Token() // consume ']'
		return err
	}
	return nil
}
