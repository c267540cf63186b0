package validation

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Draft holds the raw submitted values of a form keyed by field name.
type Draft map[string]string

// Field is a named, ordered list of validators. The first failing validator wins.
type Field struct {
	Name       string
	Validators []Validator
}

// Check is a cross-field rule. It runs only when every field in Fields passed its own
// validators, and reports its message against Field.
type Check struct {
	Field  string
	Fields []string
	Fn     func(d Draft) string
}

// Schema is the declarative description of one resource's form.
type Schema struct {
	Resource string
	Fields   []Field
	Checks   []Check
}

// Result is the outcome of validating a draft. Errors is never nil.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Error reports a draft that failed validation.
type Error struct {
	Resource string
	Fields   map[string]string
}

func (e *Error) Error() string {
	names := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+": "+e.Fields[n])
	}
	return fmt.Sprintf("invalid %s: %s", e.Resource, strings.Join(parts, "; "))
}

// Err returns the result as an *Error, or nil when valid.
func (r Result) Err(resource string) error {
	if r.Valid {
		return nil
	}
	return &Error{Resource: resource, Fields: maps.Clone(r.Errors)}
}

// Validate checks every schema field against the draft. Draft keys the schema does not
// know about are ignored.
func (s *Schema) Validate(d Draft) Result {
	errs := make(map[string]string)
	for _, f := range s.Fields {
		if msg := runField(f, d[f.Name]); msg != "" {
			errs[f.Name] = msg
		}
	}
	s.runChecks(d, errs, nil)
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateUpdate validates only the fields present in patch. Cross-field checks touching a
// patched field run against current overlaid with patch.
func (s *Schema) ValidateUpdate(current, patch Draft) Result {
	errs := make(map[string]string)
	for _, f := range s.Fields {
		v, ok := patch[f.Name]
		if !ok {
			continue
		}
		if msg := runField(f, v); msg != "" {
			errs[f.Name] = msg
		}
	}
	merged := maps.Clone(current)
	if merged == nil {
		merged = Draft{}
	}
	maps.Copy(merged, patch)
	s.runChecks(merged, errs, patch)
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateField validates a single value, as on blur. ok is false for unknown fields.
func (s *Schema) ValidateField(field, value string) (msg string, ok bool) {
	f, ok := s.field(field)
	if !ok {
		return "", false
	}
	return runField(f, value), true
}

// Has reports whether the schema declares field.
func (s *Schema) Has(field string) bool {
	_, ok := s.field(field)
	return ok
}

func (s *Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// runChecks applies cross-field rules; with a non-nil patch only checks touching it run.
func (s *Schema) runChecks(d Draft, errs map[string]string, patch Draft) {
	for _, c := range s.Checks {
		if _, taken := errs[c.Field]; taken {
			continue
		}
		if patch != nil && !slices.ContainsFunc(c.Fields, func(n string) bool { _, ok := patch[n]; return ok }) {
			continue
		}
		ready := true
		for _, n := range c.Fields {
			f, _ := s.field(n)
			if _, bad := errs[n]; bad || strings.TrimSpace(d[n]) == "" || runField(f, d[n]) != "" {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		if msg := c.Fn(d); msg != "" {
			errs[c.Field] = msg
		}
	}
}

func runField(f Field, v string) string {
	for _, fn := range f.Validators {
		if msg := fn(v); msg != "" {
			return msg
		}
	}
	return ""
}

// DraftFromJSON flattens a decoded JSON object into a draft. Numbers keep their shortest
// decimal form and nested objects are re-encoded as JSON.
func DraftFromJSON(raw map[string]any) Draft {
	d := make(Draft, len(raw))
	for k, v := range raw {
		switch x := v.(type) {
		case nil:
			d[k] = ""
		case string:
			d[k] = x
		case float64:
			d[k] = strconv.FormatFloat(x, 'f', -1, 64)
		case json.Number:
			d[k] = x.String()
		case bool:
			d[k] = strconv.FormatBool(x)
		default:
			b, err := json.Marshal(x)
			if err != nil {
				d[k] = fmt.Sprint(x)
				continue
			}
			d[k] = string(b)
		}
	}
	return d
}
