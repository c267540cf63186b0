// Package validation implements data-driven form schemas for the studio resources.
//
// A draft is the raw string form of a submission. Validators never mutate the draft; they
// return a message when the value is unacceptable and "" otherwise.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shutterdesk/studio/internal/domain/model"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required fails with message when the value is blank.
func Required(message string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return message
		}
		return ""
	}
}

// MaxLen validates that a field does not exceed maxLen characters.
// Uses rune count for proper Unicode support.
func MaxLen(fieldName string, maxLen int) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// OneOf validates that a field matches one of the provided options (case-insensitive).
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		if canonical(v, options) != "" {
			return ""
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// canonical returns the option matching v case-insensitively, or "".
func canonical(v string, options []string) string {
	v = strings.TrimSpace(v)
	for _, opt := range options {
		if strings.EqualFold(v, opt) {
			return opt
		}
	}
	return ""
}

// PositiveNumber coerces the value to a number and requires it to be greater than zero.
// A blank value coerces to zero and therefore fails.
func PositiveNumber(message string) Validator {
	return func(v string) string {
		f, ok := parseNumber(v)
		if !ok || f <= 0 {
			return message
		}
		return ""
	}
}

// NonNegativeNumber requires a number greater than or equal to zero.
func NonNegativeNumber(fieldName string) Validator {
	return func(v string) string {
		f, ok := parseNumber(v)
		if !ok || f < 0 {
			return fieldName + " must be zero or more."
		}
		return ""
	}
}

// NonNegativeInt requires a whole number greater than or equal to zero.
func NonNegativeInt(fieldName string) Validator {
	return func(v string) string {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fieldName + " must be a whole number."
		}
		if i < 0 {
			return fieldName + " must be zero or more."
		}
		return ""
	}
}

// Date accepts RFC3339 timestamps and YYYY-MM-DD dates.
func Date(message string) Validator {
	return func(v string) string {
		if _, err := model.ParseDate(v); err != nil {
			return message
		}
		return ""
	}
}

// URL validates an absolute http(s) URL.
func URL() Validator {
	return func(v string) string {
		p, err := url.Parse(strings.TrimSpace(v))
		if err != nil || (p.Scheme != "http" && p.Scheme != "https") || p.Host == "" {
			return "Enter a valid http(s) URL."
		}
		return ""
	}
}

// Email validates a bare email address.
func Email() Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return "Enter a valid email address."
		}
		return ""
	}
}

// JSONObject validates that the value is a JSON object.
func JSONObject(message string) Validator {
	return func(v string) string {
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil || m == nil {
			return message
		}
		return ""
	}
}

// Optional runs validators only when the value is not blank.
func Optional(validators ...Validator) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		for _, fn := range validators {
			if msg := fn(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}

func parseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
