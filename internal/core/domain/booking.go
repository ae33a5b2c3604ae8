package domain

import (
	"strings"
	"time"
)

// Booking is a persisted interview booking. It is created exactly once
// per successful booking tool invocation and never mutated.
type Booking struct {
	// ID is the generated booking identifier.
	ID string

	// FullName is the interviewee's name.
	FullName string

	// Email is the interviewee's contact address.
	Email string

	// Date is the interview date as supplied by the user (e.g. "2024-09-15").
	Date string

	// Time is the interview time as supplied by the user (e.g. "14:30").
	Time string

	// CreatedAt is when the booking was persisted.
	CreatedAt time.Time
}

// Validate checks that all caller-supplied fields are present.
// The agent is expected to gather every field before booking; the
// tool itself never prompts for missing data.
func (b Booking) Validate() error {
	var missing []string
	if strings.TrimSpace(b.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(b.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(b.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(b.Time) == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// MissingFieldsError reports booking fields that were not supplied.
type MissingFieldsError struct {
	Fields []string
}

// Error implements the error interface.
func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
