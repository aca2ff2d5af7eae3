package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail_Valid(t *testing.T) {
	for _, email := range []string{
		"prueba@gmail.com",
		"ventas@empresa.com.mx",
		"first.last@sub.domain.io",
	} {
		assert.NoError(t, ValidateEmail(email), "email %q should be valid", email)
	}
}

func TestValidateEmail_MalformedSyntax(t *testing.T) {
	for _, email := range []string{
		"",
		"   ",
		"sinarroba.com",
		"@nodomain",
		"user@",
		"user@domain",  // no TLD
		"user@.com",    // empty label
		"user@dom.c",   // TLD too short
		"user@dom.c0m", // non-alphabetic TLD
	} {
		err := ValidateEmail(email)
		assert.Error(t, err, "email %q should be invalid", email)
		assert.Contains(t, err.Error(), "valid email")
	}
}

func TestValidateEmail_ImplausibleDomains(t *testing.T) {
	for _, email := range []string{
		"user@mailinator.com",
		"user@yopmail.com",
		"user@example.com",
	} {
		err := ValidateEmail(email)
		assert.Error(t, err, "email %q should be rejected", email)
		assert.Contains(t, err.Error(), "valid email")
	}
}

func TestValidateEmail_Pure(t *testing.T) {
	// Same input, same answer
	first := ValidateEmail("prueba@gmail.com")
	second := ValidateEmail("prueba@gmail.com")
	assert.Equal(t, first, second)
}
