package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the labels shown to users.
var FieldLabels = map[string]string{
	"Name":         "Name",
	"Role":         "Role",
	"Location":     "Location",
	"Salary":       "Expected salary",
	"Image":        "Profile photo URL",
	"Experience":   "Experience",
	"Bio":          "Bio",
	"Phones":       "Phone number",
	"Emails":       "Email",
	"Degree":       "Degree",
	"Institution":  "Institution",
	"Year":         "Year",
	"Company":      "Company",
	"Position":     "Position",
	"Duration":     "Duration",
	"Education":    "Education",
	"WorkHistory":  "Work history",
	"Achievements": "Achievements",
	"Skills":       "Skills",
	"Categories":   "Job categories",
	"VideoID":      "Video introduction",
	"PageSize":     "Page size",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins FormatValidationErrors into one line for AppError messages.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must have at least %s entries", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must have at most %s entries", label, param)
	case "email":
		return fmt.Sprintf("%s: invalid email address", label)
	case "url":
		return fmt.Sprintf("%s: invalid URL", label)
	case "valid_name":
		return fmt.Sprintf("%s: only letters, numbers, spaces and common punctuation are allowed", label)
	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or symbols", label)
	case "video_id":
		return fmt.Sprintf("%s: invalid YouTube video id", label)
	case "job_category":
		return fmt.Sprintf("%s: unknown category %q", label, e.Value())
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
