package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// URLValidationError represents a URL validation failure
type URLValidationError struct {
	Field   string
	Message string
	URL     string
}

func (e URLValidationError) Error() string {
	return fmt.Sprintf("%s: %s (url: %s)", e.Field, e.Message, e.URL)
}

// ValidateBaseURL checks a server base URL: http or https, a host, and
// nothing after the authority except an optional trailing slash. Empty is
// allowed. requireHTTPS rejects plain http.
func ValidateBaseURL(raw, field string, requireHTTPS bool) error {
	if raw == "" {
		return nil
	}

	fail := func(msg string) error {
		return URLValidationError{Field: field, Message: msg, URL: raw}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fail("invalid URL format")
	}

	scheme := strings.ToLower(u.Scheme)
	switch {
	case scheme == "":
		return fail("URL must include a scheme (http:// or https://)")
	case scheme != "http" && scheme != "https":
		return fail("URL scheme must be http or https")
	case u.Host == "":
		return fail("URL must include a host")
	case requireHTTPS && scheme != "https":
		return fail("URL must use HTTPS in production")
	case u.Path != "" && u.Path != "/":
		return fail("base URL must not contain a path")
	case u.RawQuery != "":
		return fail("base URL must not contain query parameters")
	case u.Fragment != "":
		return fail("base URL must not contain a fragment")
	}
	return nil
}
