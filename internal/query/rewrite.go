package query

// comparisonOperators maps the client-facing operator tokens onto the
// store's namespaced operator syntax.
var comparisonOperators = map[string]string{
	"gte": OpGte,
	"gt":  OpGt,
	"lte": OpLte,
	"lt":  OpLt,
}

// RewriteOperators returns a filter document in which every operator sub-key
// (a key of a nested object) equal to gte, gt, lte or lt is renamed to its
// $-prefixed form. Top-level keys are field names and are never rewritten.
// Values pass through unchanged.
func RewriteOperators(filter map[string]any) map[string]any {
	out := make(map[string]any, len(filter))
	for field, v := range filter {
		out[field] = rewriteValue(v)
	}
	return out
}

func rewriteValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			if op, ok := comparisonOperators[k]; ok {
				k = op
			}
			m[k] = rewriteValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = rewriteValue(inner)
		}
		return s
	default:
		return v
	}
}
