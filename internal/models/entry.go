package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PhonePattern is the accepted phone number format: four digits, a slash,
// then seven or eight digits (e.g. "0171/4527294").
var PhonePattern = regexp.MustCompile(`^\d{4}/\d{7,8}$`)

// Entry represents a shared phone book entry.
type Entry struct {
	// ID is the unique identifier for the entry (UUID format).
	// Generated at creation, immutable afterwards.
	ID string `json:"id"`

	// Name is the display name of the contact.
	Name string `json:"name"`

	// Phone is the phone number, matching PhonePattern.
	Phone string `json:"phone"`

	// CreatedAt is the Unix timestamp when the entry was created.
	CreatedAt int64 `json:"-"`
}

// NewEntry creates an Entry with a freshly generated identity.
// The caller is responsible for validating name and phone first.
func NewEntry(name, phone string) *Entry {
	return &Entry{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now().Unix(),
	}
}

// ValidationError reports a malformed input field along with the rule that
// was violated. Callers must not retry without correcting the input.
type ValidationError struct {
	// Field is the name of the offending input field.
	Field string
	// Rule is a human-readable description of the violated rule.
	Rule string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Rule)
}

// ValidateEntry checks a candidate (name, phone) pair against the entry
// rules. Both values are expected to be trimmed already; ValidateEntry
// trims again so it is safe to call directly on raw input.
func ValidateEntry(name, phone string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Rule: "must not be empty"}
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return &ValidationError{Field: "phone", Rule: "must not be empty"}
	}
	if !PhonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Rule: "must match format XXXX/XXXXXXX (e.g. 0171/4527294)"}
	}
	return nil
}
