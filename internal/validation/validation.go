// Package validation provides explicit per-field input validators. Each
// validator returns nil on success or a single field error; Collect drops the
// nils so callers can build a validation failure in one pass.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"unicode"

	"github.com/yoockh/hireboard/internal/utils"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

func Collect(errs ...*utils.FieldError) []utils.FieldError {
	var out []utils.FieldError
	for _, e := range errs {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}

func Required(field, value string) *utils.FieldError {
	if value == "" {
		return &utils.FieldError{Field: field, Message: "is required"}
	}
	return nil
}

func MaxLen(field, value string, max int) *utils.FieldError {
	if len(value) > max {
		return &utils.FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}

func Username(field, value string) *utils.FieldError {
	if !usernameRe.MatchString(value) {
		return &utils.FieldError{Field: field, Message: "must be 3-30 letters, digits or underscores"}
	}
	return nil
}

func Email(field, value string) *utils.FieldError {
	if _, err := mail.ParseAddress(value); err != nil {
		return &utils.FieldError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}

// URL accepts empty values; optional link fields use it directly.
func URL(field, value string) *utils.FieldError {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &utils.FieldError{Field: field, Message: "must be a valid http(s) URL"}
	}
	return nil
}

// Password checks the credential policy: at least 8 characters with an upper
// case letter, a lower case letter and a digit.
func Password(field, value string) *utils.FieldError {
	if len(value) < 8 {
		return &utils.FieldError{Field: field, Message: "must be at least 8 characters"}
	}
	if len(value) > 128 {
		return &utils.FieldError{Field: field, Message: "must not exceed 128 characters"}
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return &utils.FieldError{Field: field, Message: "must contain upper and lower case letters and a digit"}
	}
	return nil
}
