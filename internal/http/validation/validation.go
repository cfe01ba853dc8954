// Package validation runs per-route request rules and rejects the request
// with every collected error at once.
package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// Locations of a validated value.
const (
	LocationBody   = "body"
	LocationParams = "params"
)

// FieldError describes one failed rule.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// Response is the body written when validation fails.
type Response struct {
	Errors []FieldError `json:"errors"`
}

// Rule inspects a request and returns the errors it finds.
type Rule func(r *http.Request) []FieldError

type ctxKey struct{}

type result struct {
	errs []FieldError
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Check runs rules against the request and records their errors. It never
// rejects on its own; Middleware does.
func Check(rules ...Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, ok := r.Context().Value(ctxKey{}).(*result)
			if !ok {
				res = &result{}
				r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, res))
			}
			for _, rule := range rules {
				res.errs = append(res.errs, rule(r)...)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Errors returns the errors recorded on the request so far.
func Errors(r *http.Request) []FieldError {
	if res, ok := r.Context().Value(ctxKey{}).(*result); ok {
		return res.errs
	}
	return nil
}

// Middleware responds 400 with every recorded error, or passes the request on
// when there are none.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errs := Errors(r)
		if len(errs) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(Response{Errors: errs})
	})
}

// IDParam rejects a path parameter that valid does not accept.
func IDParam(name string, valid func(string) bool) Rule {
	return func(r *http.Request) []FieldError {
		id := chi.URLParam(r, name)
		if valid(id) {
			return nil
		}
		return []FieldError{{
			Type:     "field",
			Value:    id,
			Msg:      "Invalid id format",
			Path:     name,
			Location: LocationParams,
		}}
	}
}

// JSONBody decodes the body into the value returned by newDst, validates it
// with its struct tags and then runs checks on it. The body is restored so
// the handler can read it again.
func JSONBody(newDst func() any, checks ...func(dst any) []FieldError) Rule {
	return func(r *http.Request) []FieldError {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return []FieldError{bodyError("unable to read request body")}
		}
		r.Body = io.NopCloser(bytes.NewReader(raw))

		dst := newDst()
		if err := json.Unmarshal(raw, dst); err != nil {
			return []FieldError{decodeError(err)}
		}

		errs := Struct(dst)
		for _, check := range checks {
			errs = append(errs, check(dst)...)
		}
		return errs
	}
}

// Struct validates v with its validate tags and converts the failures.
func Struct(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{bodyError(err.Error())}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Type:     "field",
			Value:    fe.Value(),
			Msg:      message(fe),
			Path:     fieldPath(fe),
			Location: LocationBody,
		})
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isText(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s items", field, fe.Param())
	case "max":
		if isText(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at most %s items", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func isText(k reflect.Kind) bool {
	return k == reflect.String
}

func bodyError(msg string) FieldError {
	return FieldError{Type: "field", Msg: msg, Location: LocationBody}
}

func decodeError(err error) FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return FieldError{
			Type:     "field",
			Value:    typeErr.Value,
			Msg:      fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()),
			Path:     typeErr.Field,
			Location: LocationBody,
		}
	}
	return bodyError("request body must be valid JSON")
}
