// Package cpf validates Brazilian CPF numbers (11 digits, two check digits).
package cpf

import "errors"

var (
	ErrLength   = errors.New("cpf must be exactly 11 numeric digits")
	ErrRepeated = errors.New("cpf with all identical digits is invalid")
	ErrChecksum = errors.New("cpf check digits do not match")
)

// Valid reports whether s is a checksum-valid CPF.
func Valid(s string) bool {
	return Validate(s) == nil
}

// Validate checks s against the CPF rules in order: exactly 11 ASCII
// digits, not all identical, and both check digits matching. It returns
// the first rule violated, or nil.
func Validate(s string) error {
	if len(s) != 11 {
		return ErrLength
	}
	var digits [11]int
	for i := 0; i < 11; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return ErrLength
		}
		digits[i] = int(c - '0')
	}

	identical := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			identical = false
			break
		}
	}
	if identical {
		return ErrRepeated
	}

	if checkDigit(digits[:9], 10) != digits[9] {
		return ErrChecksum
	}
	if checkDigit(digits[:10], 11) != digits[10] {
		return ErrChecksum
	}
	return nil
}

// checkDigit computes a CPF check digit: a weighted sum with weights
// descending from firstWeight down to 2, mod 11.
func checkDigit(digits []int, firstWeight int) int {
	sum := 0
	for i, d := range digits {
		sum += d * (firstWeight - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
