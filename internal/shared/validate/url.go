// Package validate holds the field checks shared by the submission payloads.
package validate

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrInvalidURL       = errors.New("invalid URL format")
	ErrDisallowedScheme = errors.New("URL scheme not allowed")
)

// schemes that are meaningless without an authority component
var hostSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "ws": true, "wss": true,
}

// ParseAbsoluteURL parses raw and requires a scheme. Hierarchical schemes
// (http, https, ftp, ws, wss) must also carry a host.
func ParseAbsoluteURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil, ErrInvalidURL
	}
	if hostSchemes[strings.ToLower(u.Scheme)] && u.Host == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}

// IsAbsoluteURL reports whether raw parses as an absolute URL.
func IsAbsoluteURL(raw string) bool {
	_, err := ParseAbsoluteURL(raw)
	return err == nil
}

// ParseWebURL is ParseAbsoluteURL restricted to http and https.
func ParseWebURL(raw string) (*url.URL, error) {
	u, err := ParseAbsoluteURL(raw)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, nil
	default:
		return nil, ErrDisallowedScheme
	}
}

// AbsoluteURL is an ozzo rule for string values. Non-strings fail.
func AbsoluteURL(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok || !IsAbsoluteURL(s) {
			return errors.New(message)
		}
		return nil
	})
}

// WebURL is AbsoluteURL limited to http and https.
func WebURL(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return errors.New(message)
		}
		if _, err := ParseWebURL(strings.TrimSpace(s)); err != nil {
			return errors.New(message)
		}
		return nil
	})
}
