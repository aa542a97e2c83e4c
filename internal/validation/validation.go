package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	weekRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slugRegex   = regexp.MustCompile(`^[a-z0-9\-]+$`)
	decadeRegex = regexp.MustCompile(`^(19|20)\d0s$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateDisplayName checks if a display name is valid
func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "display_name", Message: "display name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "display_name", Message: "display name must be at least 2 characters"}
	}
	if len(name) > 40 {
		return ValidationError{Field: "display_name", Message: "display name must be at most 40 characters"}
	}
	return nil
}

// ValidateChartSlug checks if a chart slug is well formed
func ValidateChartSlug(slug string) error {
	if slug == "" {
		return ValidationError{Field: "chart", Message: "chart is required"}
	}
	if !slugRegex.MatchString(slug) {
		return ValidationError{Field: "chart", Message: "invalid chart slug"}
	}
	return nil
}

// ValidateChartWeek checks if a chart week is a YYYY-MM-DD date
func ValidateChartWeek(week string) error {
	if week == "" {
		return ValidationError{Field: "week", Message: "week is required"}
	}
	if !weekRegex.MatchString(week) {
		return ValidationError{Field: "week", Message: "week must be YYYY-MM-DD"}
	}
	return nil
}

// ValidateDecade checks a quick-play decade label like "1990s"
func ValidateDecade(decade string) error {
	if decade == "" {
		return ValidationError{Field: "decade", Message: "decade is required"}
	}
	if !decadeRegex.MatchString(decade) {
		return ValidationError{Field: "decade", Message: "decade must look like 1990s"}
	}
	return nil
}
