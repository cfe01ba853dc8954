package query

import (
	"net/url"
	"sort"
	"strings"
)

// maxDepth bounds bracket nesting in query keys.
const maxDepth = 5

// ParseValues turns a URL query into raw parameters, expanding bracket
// notation: price[gte]=50 becomes {"price": {"gte": "50"}}. Repeated keys
// become []string. Keys with unbalanced brackets are kept verbatim.
func ParseValues(values url.Values) map[string]any {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := make(map[string]any, len(values))
	for _, key := range keys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		var v any = vals[0]
		if len(vals) > 1 {
			v = append([]string(nil), vals...)
		}
		insert(root, splitKey(key), v)
	}
	return root
}

func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return []string{key}
	}

	parts := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		parts = append(parts, rest[1:end])
		rest = rest[end+1:]
	}

	// a[]=x is the same as a=x
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > maxDepth+1 {
		return []string{key}
	}
	return parts
}

// insert places v at path. When a key is used both as a leaf and as a
// nested object, the nested object wins.
func insert(m map[string]any, path []string, v any) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}

	leaf := path[len(path)-1]
	if _, isMap := m[leaf].(map[string]any); isMap {
		return
	}
	if existing, ok := m[leaf]; ok {
		m[leaf] = appendValues(existing, v)
		return
	}
	m[leaf] = v
}

func appendValues(existing, v any) []string {
	var out []string
	for _, x := range []any{existing, v} {
		switch t := x.(type) {
		case string:
			out = append(out, t)
		case []string:
			out = append(out, t...)
		}
	}
	return out
}
