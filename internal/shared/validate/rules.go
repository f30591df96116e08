package validate

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// The rules below accept the loosely typed values produced by decoding a
// JSON body into interface{} fields: strings, float64 numbers, []interface{}.

// String fails unless value is a string.
func String(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if _, ok := value.(string); !ok {
			return errors.New(message)
		}
		return nil
	})
}

// NonBlank fails on a string that is empty after trimming.
func NonBlank(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	})
}

// MaxRunes fails on a string longer than max characters.
func MaxRunes(max int, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) > max {
			return errors.New(message)
		}
		return nil
	})
}

// NumberBetween fails unless value is a finite number in [min, max].
func NumberBetween(min, max float64, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		n, ok := value.(float64)
		if !ok || math.IsNaN(n) || n < min || n > max {
			return errors.New(message)
		}
		return nil
	})
}

// PositiveInteger fails unless value is a whole number greater than zero.
func PositiveInteger(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		n, ok := value.(float64)
		if !ok || n <= 0 || n != math.Trunc(n) || n > math.MaxInt64 {
			return errors.New(message)
		}
		return nil
	})
}

// Array fails unless value is a JSON array.
func Array(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if _, ok := value.([]interface{}); !ok {
			return errors.New(message)
		}
		return nil
	})
}

// Email fails on a string that is not shaped like an email address.
func Email(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok || !IsEmail(s) {
			return errors.New(message)
		}
		return nil
	})
}

// OptionalString returns the trimmed string or nil for anything that is not
// a non-blank string.
func OptionalString(value interface{}) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
