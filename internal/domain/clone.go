package domain

import (
	"encoding/json"
	"fmt"
)

// Clone returns a fully independent copy of p. Section data is expected to
// be JSON-normal (see Normalize); any other value is shared, not copied.
func (p Portfolio) Clone() Portfolio {
	out := p
	if p.Sections != nil {
		out.Sections = make([]Section, len(p.Sections))
		for i := range p.Sections {
			out.Sections[i] = p.Sections[i].Clone()
		}
	}
	if p.EnabledLocales != nil {
		out.EnabledLocales = append([]Locale(nil), p.EnabledLocales...)
	}
	return out
}

// Clone returns a fully independent copy of s.
func (s Section) Clone() Section {
	out := s
	if s.Data != nil {
		out.Data = CloneData(s.Data)
	}
	return out
}

// CloneData deep-copies a JSON-normal mapping.
func CloneData(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a JSON-normal value.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneData(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = CloneValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// Normalize round-trips v through JSON so that it only contains
// map[string]any, []any, string, float64, bool and nil.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return out, nil
}

// NormalizeData normalizes a data mapping. A nil mapping stays nil.
func NormalizeData(m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	v, err := Normalize(m)
	if err != nil {
		return nil, err
	}
	out, _ := v.(map[string]any)
	return out, nil
}

// NormalizeSection normalizes the section's data in place.
func NormalizeSection(s *Section) error {
	data, err := NormalizeData(s.Data)
	if err != nil {
		return fmt.Errorf("section %s: %w", s.ID, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	s.Data = data
	return nil
}

// NormalizePortfolio normalizes every section of p in place.
func NormalizePortfolio(p *Portfolio) error {
	for i := range p.Sections {
		if err := NormalizeSection(&p.Sections[i]); err != nil {
			return err
		}
	}
	return nil
}

// Tree converts p into its generic JSON tree, the form the path accessor
// operates on.
func (p Portfolio) Tree() (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("portfolio tree: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("portfolio tree: %w", err)
	}
	return tree, nil
}

// PortfolioFromTree decodes a generic JSON tree back into a Portfolio.
func PortfolioFromTree(tree map[string]any) (Portfolio, error) {
	var p Portfolio
	data, err := json.Marshal(tree)
	if err != nil {
		return p, fmt.Errorf("portfolio from tree: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("portfolio from tree: %w", err)
	}
	return p, nil
}

// DecodeData decodes a section's generic data into one of the typed views.
func DecodeData[T any](data map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(data)
	if err != nil {
		return out, fmt.Errorf("decode section data: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode section data: %w", err)
	}
	return out, nil
}
