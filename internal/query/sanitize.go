package query

// ReservedKeys control pagination and response shaping; they are never
// treated as filter predicates.
var ReservedKeys = []string{"page", "sort", "limit", "fields"}

// Sanitize returns a copy of raw without the reserved keys.
func Sanitize(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, k := range ReservedKeys {
		delete(out, k)
	}
	return out
}
