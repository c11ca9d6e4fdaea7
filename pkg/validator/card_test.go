package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCardValidator(t *testing.T) {
	validator := NewCardValidator()
	assert.NotNil(t, validator)
}

func TestValidateNumber_Valid(t *testing.T) {
	validator := NewCardValidator()

	validNumbers := []struct {
		input    string
		expected string
		name     string
	}{
		{"1234567890123456", "1234567890123456", "Plain 16 digits"},
		{"1234 5678 9012 3456", "1234567890123456", "With spaces"},
		{"1234-5678-9012-3456", "1234567890123456", "With dashes"},
		{"0000000000000000", "0000000000000000", "All zeros"},
	}

	for _, tc := range validNumbers {
		t.Run(tc.name, func(t *testing.T) {
			sanitized, err := validator.ValidateNumber(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sanitized)
		})
	}
}

func TestValidateNumber_Invalid(t *testing.T) {
	validator := NewCardValidator()

	invalidNumbers := []struct {
		input       string
		expectedErr error
		name        string
	}{
		{"", ErrEmptyCardNumber, "Empty string"},
		{"123456789012345", ErrInvalidCardLength, "15 digits"},
		{"12345678901234567", ErrInvalidCardLength, "17 digits"},
		{"123456789012345a", ErrInvalidCardFormat, "Contains letter"},
		{"1234 5678 9012 345!", ErrInvalidCardFormat, "Contains special character"},
	}

	for _, tc := range invalidNumbers {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.ValidateNumber(tc.input)
			assert.Error(t, err)
			assert.Equal(t, tc.expectedErr, err)
		})
	}
}

func TestValidateCVV(t *testing.T) {
	validator := NewCardValidator()

	t.Run("Valid", func(t *testing.T) {
		cvv, err := validator.ValidateCVV("123")
		require.NoError(t, err)
		assert.Equal(t, "123", cvv)

		cvv, err = validator.ValidateCVV(" 007 ")
		require.NoError(t, err)
		assert.Equal(t, "007", cvv)
	})

	t.Run("Wrong Length", func(t *testing.T) {
		_, err := validator.ValidateCVV("12")
		assert.Equal(t, ErrInvalidCVVLength, err)

		_, err = validator.ValidateCVV("1234")
		assert.Equal(t, ErrInvalidCVVLength, err)

		_, err = validator.ValidateCVV("")
		assert.Equal(t, ErrInvalidCVVLength, err)
	})

	t.Run("Non Digits", func(t *testing.T) {
		_, err := validator.ValidateCVV("12a")
		assert.Equal(t, ErrInvalidCVVFormat, err)
	})
}

func TestMaskNumber(t *testing.T) {
	validator := NewCardValidator()

	assert.Equal(t, "************3456", validator.MaskNumber("1234567890123456"))
	assert.Equal(t, "***", validator.MaskNumber("123"))
}
