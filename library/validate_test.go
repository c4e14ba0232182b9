package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice"))
	assert.NoError(t, ValidateName("Zoë"))

	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("Alice Smith")) // space
	assert.Error(t, ValidateName("R2D2"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@gmail.com"))
	assert.NoError(t, ValidateEmail("Bob@GMAIL.ORG"))
	assert.NoError(t, ValidateEmail("carol@gmail.in"))

	assert.Error(t, ValidateEmail("alice@example.com"))
	assert.Error(t, ValidateEmail("gmail.com"))
	assert.Error(t, ValidateEmail("@gmail.com"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abc12!"))
	assert.NoError(t, ValidatePassword("s3cure#pass"))

	assert.Error(t, ValidatePassword("a1!"))      // too short
	assert.Error(t, ValidatePassword("abcdef1"))  // no special
	assert.Error(t, ValidatePassword("abcdef!"))  // no digit
	assert.Error(t, ValidatePassword("123456!"))  // no letter
}
