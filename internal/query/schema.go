package query

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/catalog-api/internal/apperr"
)

// Operators understood by the product stores.
const (
	OpEq  = "$eq"
	OpIn  = "$in"
	OpGt  = "$gt"
	OpGte = "$gte"
	OpLt  = "$lt"
	OpLte = "$lte"
)

var rangeOperators = map[string]bool{OpGt: true, OpGte: true, OpLt: true, OpLte: true}

type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	// TypeRef holds the identifier of a related document.
	TypeRef
	TypeTime
)

func (t FieldType) numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Field describes one attribute of an entity and what clients may do with it.
type Field struct {
	Name       string
	Type       FieldType
	Filterable bool
	Sortable   bool
	// Array fields match an equality predicate when any element matches.
	Array bool
}

// Condition is a single validated predicate. Value is coerced to the field
// type; for OpIn it is a []any.
type Condition struct {
	Field string
	Op    string
	Value any
}

// Schema is the declared field set of an entity.
type Schema struct {
	fields map[string]Field
}

func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		s.fields[f.Name] = f
	}
	return s
}

// Field returns the declared field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// ProductSchema is the field set of the product entity as exposed over HTTP.
var ProductSchema = NewSchema(
	Field{Name: "id", Type: TypeRef},
	Field{Name: "title", Type: TypeString, Filterable: true, Sortable: true},
	Field{Name: "slug", Type: TypeString, Filterable: true, Sortable: true},
	Field{Name: "description", Type: TypeString},
	Field{Name: "quantity", Type: TypeInt, Filterable: true, Sortable: true},
	Field{Name: "sold", Type: TypeInt, Filterable: true, Sortable: true},
	Field{Name: "price", Type: TypeFloat, Filterable: true, Sortable: true},
	Field{Name: "price_after_discount", Type: TypeFloat, Filterable: true, Sortable: true},
	Field{Name: "colors", Type: TypeString, Filterable: true, Array: true},
	Field{Name: "image_cover", Type: TypeString},
	Field{Name: "images", Type: TypeString, Array: true},
	Field{Name: "category", Type: TypeRef, Filterable: true},
	Field{Name: "ratings_average", Type: TypeFloat, Filterable: true, Sortable: true},
	Field{Name: "ratings_quantity", Type: TypeInt, Filterable: true, Sortable: true},
	Field{Name: "created_at", Type: TypeTime, Sortable: true},
	Field{Name: "updated_at", Type: TypeTime, Sortable: true},
)

// Guard validates a rewritten filter document against the schema and turns
// it into conditions. Unknown fields, unknown operators, range operators on
// non-numeric fields and values that do not parse as the field type are
// rejected with a 400. Conditions are ordered by field then operator.
func (s *Schema) Guard(filter map[string]any) ([]Condition, error) {
	var conds []Condition
	for _, name := range sortedKeys(filter) {
		v := filter[name]
		f, ok := s.fields[name]
		if !ok || !f.Filterable {
			return nil, apperr.BadRequest("unknown filter field %q", name)
		}

		switch t := v.(type) {
		case string:
			val, err := f.coerce(t)
			if err != nil {
				return nil, err
			}
			conds = append(conds, Condition{Field: name, Op: OpEq, Value: val})
		case []string:
			vals := make([]any, 0, len(t))
			for _, raw := range t {
				val, err := f.coerce(raw)
				if err != nil {
					return nil, err
				}
				vals = append(vals, val)
			}
			conds = append(conds, Condition{Field: name, Op: OpIn, Value: vals})
		case map[string]any:
			for _, op := range sortedKeys(t) {
				operand := t[op]
				if !rangeOperators[op] {
					return nil, apperr.BadRequest("unsupported operator %q for field %q", op, name)
				}
				if !f.Type.numeric() {
					return nil, apperr.BadRequest("operator %q is not supported on field %q", op, name)
				}
				raw, ok := operand.(string)
				if !ok {
					return nil, apperr.BadRequest("operator %q on field %q expects a single value", op, name)
				}
				val, err := f.coerce(raw)
				if err != nil {
					return nil, err
				}
				conds = append(conds, Condition{Field: name, Op: op, Value: val})
			}
		default:
			return nil, apperr.BadRequest("invalid value for filter field %q", name)
		}
	}

	sort.Slice(conds, func(i, j int) bool {
		if conds[i].Field != conds[j].Field {
			return conds[i].Field < conds[j].Field
		}
		return conds[i].Op < conds[j].Op
	})
	return conds, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f Field) coerce(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch f.Type {
	case TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.BadRequest("filter field %q expects an integer, got %q", f.Name, raw)
		}
		return n, nil
	case TypeFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, apperr.BadRequest("filter field %q expects a number, got %q", f.Name, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// SortField is one key of a sort order.
type SortField struct {
	Field string
	Desc  bool
}

// ParseSort reads a comma separated sort list such as
// "price,-sold". A leading '-' sorts descending.
func (s *Schema) ParseSort(raw any) ([]SortField, error) {
	tokens, err := listParam("sort", raw)
	if err != nil {
		return nil, err
	}

	var out []SortField
	for _, tok := range tokens {
		sf := SortField{Field: tok}
		if strings.HasPrefix(tok, "-") {
			sf = SortField{Field: tok[1:], Desc: true}
		}
		f, ok := s.fields[sf.Field]
		if !ok || !f.Sortable {
			return nil, apperr.BadRequest("cannot sort by %q", sf.Field)
		}
		out = append(out, sf)
	}
	return out, nil
}

// ParseFields reads a comma separated field selection such as "title,price".
// The id is always part of a selection.
func (s *Schema) ParseFields(raw any) ([]string, error) {
	tokens, err := listParam("fields", raw)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	out := []string{"id"}
	seen := map[string]bool{"id": true}
	for _, tok := range tokens {
		if _, ok := s.fields[tok]; !ok {
			return nil, apperr.BadRequest("unknown field %q", tok)
		}
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out, nil
}

func listParam(name string, raw any) ([]string, error) {
	var joined string
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case string:
		joined = t
	case []string:
		joined = strings.Join(t, ",")
	default:
		return nil, apperr.BadRequest("invalid %s parameter", name)
	}

	var out []string
	for _, tok := range strings.Split(joined, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out, nil
}
