package validation

import "strings"

// siretLength is the fixed length of a French SIRET number.
const siretLength = 14

// ValidateSIRET validates a French SIRET number. An empty value is valid
// (the field is optional). A non-empty value must be exactly 14 ASCII
// digits and pass the Luhn checksum. Pure function, safe for concurrent use.
func ValidateSIRET(siret string) bool {
	if siret == "" {
		return true
	}
	if len(siret) != siretLength {
		return false
	}

	total := 0
	for i := 0; i < siretLength; i++ {
		c := siret[i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		// Digits at even distance from the rightmost position are
		// doubled (standard Luhn, applied right to left).
		if (siretLength-i)%2 == 0 {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		total += n
	}
	return total%10 == 0
}

// FormatSIRET renders a 14-character SIRET as "XXX XXX XXX XXXXX" for
// display. Anything that is not 14 characters long is returned unchanged.
// The canonical stored form stays the bare 14 digits; this grouped form is
// presentation-only and is never fed back through validation.
func FormatSIRET(siret string) string {
	if len(siret) != siretLength {
		return siret
	}
	return strings.Join([]string{siret[:3], siret[3:6], siret[6:9], siret[9:]}, " ")
}
