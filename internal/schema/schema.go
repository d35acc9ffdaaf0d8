// Package schema describes the editable fields of each section type.
//
// A SectionSchema is an ordered list of FieldDescriptors. The editor renders
// one form control per descriptor and validates against it; the registry
// maps each section type to its schema and is read-only once built.
package schema

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"portfolio/internal/domain"
)

// FieldKind selects the form control and the value shape of a field.
type FieldKind string

const (
	KindText     FieldKind = "text"     // LocalizedString, single line
	KindTextarea FieldKind = "textarea" // LocalizedString, multi line
	KindImage    FieldKind = "image"    // ImageValue
	KindSelect   FieldKind = "select"   // string, one of Options
	KindSwitch   FieldKind = "switch"   // bool
	KindChips    FieldKind = "chips"    // ordered []string
)

// Localized reports whether values of this kind are LocalizedStrings.
func (k FieldKind) Localized() bool {
	return k == KindText || k == KindTextarea
}

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDescriptor describes one editable property of a section type.
type FieldDescriptor struct {
	Key         string    `json:"key"`
	Kind        FieldKind `json:"type"`
	Label       string    `json:"label"`
	Required    bool      `json:"required,omitempty"`
	Help        string    `json:"help,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// HasOption reports whether value is one of the declared options.
func (f FieldDescriptor) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// DefaultOption returns the first declared option value, or "".
func (f FieldDescriptor) DefaultOption() string {
	if len(f.Options) == 0 {
		return ""
	}
	return f.Options[0].Value
}

// SectionSchema is the ordered field list for one section type.
type SectionSchema struct {
	Type   domain.SectionType `json:"type"`
	Fields []FieldDescriptor  `json:"fields"`
}

// Field returns the descriptor for key.
func (s SectionSchema) Field(key string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// FieldsOfKind returns the descriptors of the given kind in schema order.
func (s SectionSchema) FieldsOfKind(kind FieldKind) []FieldDescriptor {
	var out []FieldDescriptor
	for _, f := range s.Fields {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func (s SectionSchema) clone() SectionSchema {
	out := SectionSchema{Type: s.Type, Fields: make([]FieldDescriptor, len(s.Fields))}
	for i, f := range s.Fields {
		f.Options = append([]Option(nil), f.Options...)
		out.Fields[i] = f
	}
	return out
}

var ErrUnknownType = errors.New("no schema for section type")

// Registry maps section types to their schemas.
type Registry struct {
	mu      sync.RWMutex
	schemas map[domain.SectionType]SectionSchema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[domain.SectionType]SectionSchema)}
}

// NewDefaultRegistry creates a registry holding the built-in schemas.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range builtins() {
		r.Register(s)
	}
	return r
}

// Register adds a schema. Panics on an unknown section type or a duplicate
// registration.
func (r *Registry) Register(s SectionSchema) {
	if !s.Type.Valid() {
		panic(fmt.Sprintf("schema registry: unknown section type %q", s.Type))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemas[s.Type]; exists {
		panic(fmt.Sprintf("schema registry: duplicate registration for section type %q", s.Type))
	}
	r.schemas[s.Type] = s.clone()
}

// Lookup returns a copy of the schema for t.
func (r *Registry) Lookup(t domain.SectionType) (SectionSchema, error) {
	r.mu.RLock()
	s, ok := r.schemas[t]
	r.mu.RUnlock()
	if !ok {
		return SectionSchema{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return s.clone(), nil
}

// Types returns the registered section types in library order.
func (r *Registry) Types() []domain.SectionType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.SectionType
	for _, t := range domain.SectionTypes {
		if _, ok := r.schemas[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// All returns copies of every registered schema in library order.
func (r *Registry) All() []SectionSchema {
	types := r.Types()
	out := make([]SectionSchema, 0, len(types))
	for _, t := range types {
		s, _ := r.Lookup(t)
		out = append(out, s)
	}
	return out
}

// DefaultData builds the empty payload for a new section of type t:
// localized fields get an empty LocalizedString, chips an empty list,
// switches false and selects their first option. Image fields stay unset.
func (r *Registry) DefaultData(t domain.SectionType) (map[string]any, error) {
	s, err := r.Lookup(t)
	if err != nil {
		return nil, err
	}
	data := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		switch f.Kind {
		case KindText, KindTextarea:
			data[f.Key] = domain.LocalizedString{}.Value()
		case KindChips:
			data[f.Key] = []any{}
		case KindSwitch:
			data[f.Key] = false
		case KindSelect:
			if v := f.DefaultOption(); v != "" {
				data[f.Key] = v
			}
		}
	}
	return data, nil
}

// NewSection builds a section of type t with a fresh id, the default payload
// and no effects. Unknown types are rejected.
func (r *Registry) NewSection(t domain.SectionType) (domain.Section, error) {
	if !t.Valid() {
		return domain.Section{}, fmt.Errorf("%w: %q", domain.ErrUnknownSectionType, t)
	}
	data, err := r.DefaultData(t)
	if err != nil {
		return domain.Section{}, err
	}
	return domain.Section{
		ID:   uuid.NewString(),
		Type: t,
		Data: data,
	}, nil
}
