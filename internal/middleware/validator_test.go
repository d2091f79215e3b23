package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTenantID(t *testing.T) {
	assert.NoError(t, ValidateTenantID("acme-hotels_01"))
	assert.Error(t, ValidateTenantID(""))
	assert.Error(t, ValidateTenantID("bad tenant"))
	assert.Error(t, ValidateTenantID("tenant/evil"))
}

func TestValidateHotelID(t *testing.T) {
	assert.NoError(t, ValidateHotelID("H001"))
	assert.NoError(t, ValidateHotelID("chain:resort.north-1"))
	assert.Error(t, ValidateHotelID(""))
	assert.Error(t, ValidateHotelID("  "))
	assert.Error(t, ValidateHotelID("hotel id with spaces"))
}

func TestValidateIngestLimit(t *testing.T) {
	assert.NoError(t, ValidateIngestLimit(0)) // zero means default
	assert.NoError(t, ValidateIngestLimit(1))
	assert.NoError(t, ValidateIngestLimit(100))
	assert.Error(t, ValidateIngestLimit(-5))
	assert.Error(t, ValidateIngestLimit(101))
}

func TestValidateListLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateListLimit(0))
	assert.Equal(t, 20, ValidateListLimit(-1))
	assert.Equal(t, 100, ValidateListLimit(500))
	assert.Equal(t, 42, ValidateListLimit(42))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00  "))
	assert.Equal(t, "a\tb", SanitizeString("a\tb\x1b"))
}
