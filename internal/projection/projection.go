// Package projection derives filtered and sorted views over a cached resource collection.
// Everything here is pure: inputs are never modified and the same criteria always yield the
// same ordered output.
package projection

import (
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// AllValue disables a status or category filter.
const AllValue = "all"

// ErrInvalidCriteria is wrapped by every ParseCriteria failure.
var ErrInvalidCriteria = errors.New("invalid criteria")

type searcher interface {
	Search(data any) (any, error)
}

// Criteria is the transient filter and sort state of a list view.
type Criteria struct {
	Search   string
	Status   string
	Category string
	Metadata string
	Sort     string
	Dir      Direction
	Limit    int
	Offset   int

	expr searcher
}

// ParseCriteria reads criteria from list query parameters. A metadata expression is compiled
// here so a bad expression is rejected before any data is read.
func ParseCriteria(q url.Values) (Criteria, error) {
	c := Criteria{
		Search:   strings.TrimSpace(q.Get("q")),
		Status:   strings.TrimSpace(q.Get("status")),
		Category: strings.TrimSpace(q.Get("category")),
		Sort:     strings.TrimSpace(q.Get("sort")),
	}

	switch Direction(strings.ToLower(strings.TrimSpace(q.Get("dir")))) {
	case "", Asc:
		c.Dir = Asc
	case Desc:
		c.Dir = Desc
	default:
		return Criteria{}, fmt.Errorf("%w: dir must be asc or desc", ErrInvalidCriteria)
	}

	var err error
	if c.Limit, err = nonNegative(q.Get("limit"), "limit"); err != nil {
		return Criteria{}, err
	}
	if c.Offset, err = nonNegative(q.Get("offset"), "offset"); err != nil {
		return Criteria{}, err
	}

	return c.WithMetadata(q.Get("metadata"))
}

// WithMetadata returns a copy of c filtering on the JMESPath expression expr.
func (c Criteria) WithMetadata(expr string) (Criteria, error) {
	expr = strings.TrimSpace(expr)
	c.Metadata = expr
	c.expr = nil
	if expr == "" {
		return c, nil
	}
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return Criteria{}, fmt.Errorf("%w: metadata: %w", ErrInvalidCriteria, err)
	}
	c.expr = compiled
	return c, nil
}

func nonNegative(v, name string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidCriteria, name)
	}
	return n, nil
}

// Accessors tells Apply how to read the filterable parts of T. Nil accessors disable the
// matching filter.
type Accessors[T any] struct {
	Search   func(T) []string
	Status   func(T) string
	Category func(T) string
	Metadata func(T) any
	Sorts    map[string]func(a, b T) int
}

// SortKeys lists the supported sort keys in a stable order.
func (a Accessors[T]) SortKeys() []string {
	keys := make([]string, 0, len(a.Sorts))
	for k := range a.Sorts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Apply filters items conjunctively and sorts the survivors stably. Unknown sort keys keep
// input order. The result is always a new slice.
func Apply[T any](items []T, c Criteria, acc Accessors[T]) []T {
	search := strings.ToLower(c.Search)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matches(it, c, search, acc) {
			out = append(out, it)
		}
	}

	if less, ok := acc.Sorts[c.Sort]; ok && less != nil {
		if c.Dir == Desc {
			slices.SortStableFunc(out, func(a, b T) int { return less(b, a) })
		} else {
			slices.SortStableFunc(out, less)
		}
	}
	return out
}

// Page applies the criteria's offset and limit to an already projected slice.
func Page[T any](items []T, c Criteria) []T {
	if c.Offset >= len(items) {
		return []T{}
	}
	items = items[c.Offset:]
	if c.Limit > 0 && c.Limit < len(items) {
		items = items[:c.Limit]
	}
	return slices.Clone(items)
}

func matches[T any](it T, c Criteria, search string, acc Accessors[T]) bool {
	if search != "" && acc.Search != nil {
		found := false
		for _, f := range acc.Search(it) {
			if strings.Contains(strings.ToLower(f), search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if isSet(c.Status) && acc.Status != nil && !strings.EqualFold(acc.Status(it), c.Status) {
		return false
	}
	if isSet(c.Category) && acc.Category != nil && !strings.EqualFold(acc.Category(it), c.Category) {
		return false
	}
	if c.expr != nil && acc.Metadata != nil {
		res, err := c.expr.Search(acc.Metadata(it))
		if err != nil || !truthy(res) {
			return false
		}
	}
	return true
}

func isSet(v string) bool {
	return v != "" && !strings.EqualFold(v, AllValue)
}

// truthy follows JMESPath truthiness: false, null and empty strings, arrays and objects are
// false; everything else, including 0, is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

// Categories returns "all" followed by the distinct categories of items in first-seen order.
func Categories[T any](items []T, category func(T) string) []string {
	out := []string{AllValue}
	seen := map[string]bool{AllValue: true}
	for _, it := range items {
		c := category(it)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func byString[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(strings.ToLower(get(a)), strings.ToLower(get(b))) }
}

func byNumber[T any](get func(T) float64) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}
