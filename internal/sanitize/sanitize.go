// Package sanitize neutralizes untrusted text before it is sent to the
// task API or rendered, and validates task form input client-side.
package sanitize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Title and description limits enforced before any network call.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// eventAttrPattern matches inline event-handler attribute syntax
// (onclick=, onerror=, ...) so it can be stripped from user input.
var eventAttrPattern = regexp.MustCompile(`(?i)on\w+=`)

// cleanReplacer escapes the characters a renderer could interpret as
// markup. The ampersand is intentionally not escaped here; EscapeHTML
// is the display-side helper that does.
var cleanReplacer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// htmlReplacer performs full HTML escaping, ampersand first.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Clean escapes markup characters in user input and strips inline
// event-handler attribute prefixes. Empty input is returned unchanged.
func Clean(s string) string {
	if s == "" {
		return s
	}
	return eventAttrPattern.ReplaceAllString(cleanReplacer.Replace(s), "")
}

// CleanPtr applies Clean to a nullable string, passing nil through.
func CleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := Clean(*s)
	return &cleaned
}

// EscapeHTML escapes text for safe rendering of dynamic content.
// Unlike Clean it also escapes the ampersand.
func EscapeHTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlReplacer.Replace(s)
}

// ValidationResult carries the outcome of validating task form input.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ValidateTaskInput checks a task title and optional description
// against the form constraints. All failures are reported, not just
// the first.
func ValidateTaskInput(title string, description *string) ValidationResult {
	var errs []string

	if strings.TrimSpace(title) == "" {
		errs = append(errs, "title is required")
	} else {
		if utf8.RuneCountInString(title) > MaxTitleLen {
			errs = append(errs, "title must be 200 characters or fewer")
		}
		if strings.ContainsAny(title, "<>") {
			errs = append(errs, "title contains disallowed characters")
		}
	}

	if description != nil {
		if utf8.RuneCountInString(*description) > MaxDescriptionLen {
			errs = append(errs, "description must be 1000 characters or fewer")
		}
		if strings.ContainsAny(*description, "<>") {
			errs = append(errs, "description contains disallowed characters")
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// IsSafeURL reports whether raw is safe to open from the client:
// either it resolves to the given origin, or to one of the trusted
// absolute origins. When raw cannot be parsed it is treated as a safe
// relative path only if it carries no scheme separator and no
// protocol-relative prefix.
func IsSafeURL(raw string, origin string, trusted []string) bool {
	if raw == "" {
		return false
	}

	base, err := url.Parse(origin)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return false
	}

	u, err := base.Parse(raw)
	if err != nil {
		return !strings.Contains(raw, ":") && !strings.Contains(raw, "//")
	}

	target := originOf(u)
	if target == originOf(base) {
		return true
	}
	for _, t := range trusted {
		if target == strings.TrimRight(t, "/") {
			return true
		}
	}
	return false
}

// originOf returns the scheme://host origin of a URL.
func originOf(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
