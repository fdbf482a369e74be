package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for request payloads. These bound what the HTTP
// layer accepts before the domain layers see it; the registry and field
// validators enforce the real invariants.
const (
	maxRecordTitleLen = 300
	maxGroupTitleLen  = 200
	maxGroupFields    = 100
	maxGroupLocations = 50
)

// validateRecordTitle checks a record title and returns the first error
// found, or "".
func validateRecordTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxRecordTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateGroup checks field-group payload bounds and returns the first
// error found, or "".
func validateGroup(title string, locations, fieldCount int) string {
	if strings.TrimSpace(title) == "" {
		return "Group title is required."
	}
	if utf8.RuneCountInString(title) > maxGroupTitleLen {
		return "Group title is too long (max 200 characters)."
	}
	if locations > maxGroupLocations {
		return "Too many locations (max 50)."
	}
	if fieldCount > maxGroupFields {
		return "Too many fields in one group (max 100)."
	}
	return ""
}
