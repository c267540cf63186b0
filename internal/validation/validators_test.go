package validation

import (
	"testing"
)

const errTitleRequired = "Title is required."

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid input", value: "valid"},
		{name: "empty string", value: "", wantErr: true},
		{name: "whitespace only", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Required(errTitleRequired)(tt.value)
			if tt.wantErr && got != errTitleRequired {
				t.Errorf("Required() = %q, want %q", got, errTitleRequired)
			}
			if !tt.wantErr && got != "" {
				t.Errorf("Required() = %q, want no error", got)
			}
		})
	}
}

func TestMaxLen(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "within limit", value: "abc"},
		{name: "exactly max length", value: "exact"},
		{name: "exceeds max length", value: "toolong", want: "Title cannot exceed 5 characters."},
		{name: "unicode characters within limit", value: "héllo"},
		{name: "surrounding whitespace ignored", value: "  exact  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxLen("Title", 5)(tt.value); got != tt.want {
				t.Errorf("MaxLen() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	v := OneOf("Status", []string{"open", "filled", "closed"})
	for _, ok := range []string{"open", "OPEN", " Filled "} {
		if got := v(ok); got != "" {
			t.Errorf("OneOf(%q) = %q, want no error", ok, got)
		}
	}
	if got := v("archived"); got != "Status must be one of: open, filled, closed" {
		t.Errorf("OneOf(archived) = %q", got)
	}
}

func TestPositiveNumber(t *testing.T) {
	const msg = "Amount must be a positive number"
	tests := []struct {
		value string
		want  string
	}{
		{"12.50", ""},
		{" 1 ", ""},
		{"0", msg},
		{"-3", msg},
		{"", msg},
		{"abc", msg},
		{"NaN", msg},
		{"Inf", msg},
	}
	for _, tt := range tests {
		if got := PositiveNumber(msg)(tt.value); got != tt.want {
			t.Errorf("PositiveNumber(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestNonNegativeInt(t *testing.T) {
	v := NonNegativeInt("Photographers needed")
	if got := v("0"); got != "" {
		t.Errorf("got %q", got)
	}
	if got := v("-1"); got != "Photographers needed must be zero or more." {
		t.Errorf("got %q", got)
	}
	if got := v("1.5"); got != "Photographers needed must be a whole number." {
		t.Errorf("got %q", got)
	}
}

func TestDate(t *testing.T) {
	v := Date("bad date")
	for _, ok := range []string{"2026-03-01", "2026-03-01T10:00:00Z"} {
		if got := v(ok); got != "" {
			t.Errorf("Date(%q) = %q", ok, got)
		}
	}
	for _, bad := range []string{"", "03/01/2026", "2026-13-01"} {
		if got := v(bad); got != "bad date" {
			t.Errorf("Date(%q) = %q", bad, got)
		}
	}
}

func TestURLAndEmail(t *testing.T) {
	if got := URL()("https://cdn.example.com/a.jpg"); got != "" {
		t.Errorf("URL() = %q", got)
	}
	for _, bad := range []string{"ftp://x", "not a url", "https://"} {
		if got := URL()(bad); got == "" {
			t.Errorf("URL(%q) accepted", bad)
		}
	}
	if got := Email()("ana@example.com"); got != "" {
		t.Errorf("Email() = %q", got)
	}
	for _, bad := range []string{"ana", "Ana <ana@example.com>"} {
		if got := Email()(bad); got == "" {
			t.Errorf("Email(%q) accepted", bad)
		}
	}
}

func TestJSONObject(t *testing.T) {
	v := JSONObject("bad")
	if got := v(`{"a":1}`); got != "" {
		t.Errorf("got %q", got)
	}
	for _, bad := range []string{`[1]`, `null`, `"x"`, `{`} {
		if got := v(bad); got != "bad" {
			t.Errorf("JSONObject(%q) = %q", bad, got)
		}
	}
}

func TestOptional(t *testing.T) {
	v := Optional(NonNegativeInt("Count"), MaxLen("Count", 1))
	if got := v(""); got != "" {
		t.Errorf("blank should pass, got %q", got)
	}
	if got := v("-1"); got != "Count must be zero or more." {
		t.Errorf("first failing validator should win, got %q", got)
	}
	if got := v("10"); got != "Count cannot exceed 1 characters." {
		t.Errorf("got %q", got)
	}
}
