package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	tenantPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	hotelPattern  = regexp.MustCompile(`^[a-zA-Z0-9_.:-]{1,128}$`)
)

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}
	if !tenantPattern.MatchString(tenant) {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// ValidateHotelID validates hotel/place identifiers
func ValidateHotelID(hotelID string) error {
	if strings.TrimSpace(hotelID) == "" {
		return fmt.Errorf("hotel ID cannot be empty")
	}
	if !hotelPattern.MatchString(hotelID) {
		return fmt.Errorf("invalid hotel ID format")
	}
	return nil
}

// ValidateIngestLimit enforces the 1..100 ingestion bound. Zero means
// "use the default"; anything else out of range is rejected, not clamped.
func ValidateIngestLimit(limit int) error {
	if limit == 0 {
		return nil
	}
	if limit < 1 || limit > 100 {
		return fmt.Errorf("limit must be between 1 and 100")
	}
	return nil
}

// ValidateListLimit clamps list/pagination limits to sane values
func ValidateListLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
