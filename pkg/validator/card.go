package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyCardNumber indicates the card number is empty
	ErrEmptyCardNumber = errors.New("card number cannot be empty")

	// ErrInvalidCardLength indicates the card number is not 16 digits
	ErrInvalidCardLength = errors.New("card number must be exactly 16 digits")

	// ErrInvalidCardFormat indicates the card number contains non-digits
	ErrInvalidCardFormat = errors.New("card number can only contain digits")

	// ErrInvalidCVVLength indicates the CVV is not 3 digits
	ErrInvalidCVVLength = errors.New("CVV must be exactly 3 digits")

	// ErrInvalidCVVFormat indicates the CVV contains non-digits
	ErrInvalidCVVFormat = errors.New("CVV can only contain digits")
)

// digitsRegex matches digits only
var digitsRegex = regexp.MustCompile(`^\d+$`)

// CardValidator handles payment-card format validation. No issuer lookup or
// authorization is performed; only the shape of the data is checked.
type CardValidator struct{}

// NewCardValidator creates a new card validator instance
func NewCardValidator() *CardValidator {
	return &CardValidator{}
}

// ValidateNumber validates a 16-digit card number.
// Accepts grouped input such as "1234 5678 9012 3456" or with dashes.
// Returns the sanitized number (digits only) and an error if invalid.
func (v *CardValidator) ValidateNumber(number string) (string, error) {
	if number == "" {
		return "", ErrEmptyCardNumber
	}

	sanitized := v.Sanitize(number)

	if !digitsRegex.MatchString(sanitized) {
		return "", ErrInvalidCardFormat
	}

	if len(sanitized) != 16 {
		return "", ErrInvalidCardLength
	}

	return sanitized, nil
}

// ValidateCVV validates a 3-digit card verification value.
func (v *CardValidator) ValidateCVV(cvv string) (string, error) {
	sanitized := strings.TrimSpace(cvv)

	if len(sanitized) != 3 {
		return "", ErrInvalidCVVLength
	}

	if !digitsRegex.MatchString(sanitized) {
		return "", ErrInvalidCVVFormat
	}

	return sanitized, nil
}

// Sanitize removes spaces and dashes from a card number
func (v *CardValidator) Sanitize(number string) string {
	var sb strings.Builder
	for _, r := range number {
		if r == ' ' || r == '-' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// MaskNumber returns the card number with all but the last four digits hidden,
// for logging and summaries.
func (v *CardValidator) MaskNumber(number string) string {
	if len(number) < 4 {
		return strings.Repeat("*", len(number))
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
