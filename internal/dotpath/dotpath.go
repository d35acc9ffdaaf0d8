// Package dotpath reads and writes nested values in generic JSON trees
// addressed by a "." or "/" separated key path, e.g. "sections.0.data.title"
// or "theme/primaryColor".
package dotpath

import (
	"strconv"
	"strings"
)

// Split breaks path into its non-empty segments.
func Split(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '.' || r == '/' })
}

// Get walks doc one segment at a time. Mappings are indexed by key and
// lists by numeric index. It reports false as soon as an intermediate value
// is missing, nil or not traversable. An empty path returns doc itself.
func Get(doc any, path string) (any, bool) {
	cur := doc
	for _, key := range Split(path) {
		if cur == nil {
			return nil, false
		}
		next, ok := child(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Set assigns value at path, creating a mapping for every missing
// intermediate segment. Any non-traversable value found along the way is
// overwritten with an empty mapping. doc is mutated in place and returned;
// callers needing the original intact must pass a copy. An empty path is a
// no-op.
//
// Lists are traversed when the segment is an in-range index. Assigning to a
// list index that does not exist leaves the list unchanged.
func Set(doc map[string]any, path string, value any) map[string]any {
	keys := Split(path)
	if len(keys) == 0 || doc == nil {
		return doc
	}
	last := keys[len(keys)-1]

	var cur any = doc
	for _, key := range keys[:len(keys)-1] {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok || !container(next) {
				next = map[string]any{}
				node[key] = next
			}
			cur = next
		case []any:
			i, ok := index(key, len(node))
			if !ok {
				return doc
			}
			if !container(node[i]) {
				node[i] = map[string]any{}
			}
			cur = node[i]
		}
	}

	switch node := cur.(type) {
	case map[string]any:
		node[last] = value
	case []any:
		if i, ok := index(last, len(node)); ok {
			node[i] = value
		}
	}
	return doc
}

func child(node any, key string) (any, bool) {
	switch t := node.(type) {
	case map[string]any:
		v, ok := t[key]
		return v, ok
	case []any:
		i, ok := index(key, len(t))
		if !ok {
			return nil, false
		}
		return t[i], true
	}
	return nil, false
}

func container(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

func index(key string, n int) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
