package validation

import (
	"strings"
	"testing"
)

const validSIRET = "73282932000074"

func TestValidateSIRETKnownVectors(t *testing.T) {
	cases := []struct {
		siret string
		want  bool
	}{
		{validSIRET, true},
		{"12345678901234", false},
		{"", true},                 // optional field
		{"7328293200007", false},   // 13 digits
		{"732829320000740", false}, // 15 digits
		{"7328293200007a", false},  // non-digit
		{"732829320000 4", false},  // embedded space
	}

	for _, c := range cases {
		if got := ValidateSIRET(c.siret); got != c.want {
			t.Errorf("ValidateSIRET(%q) = %v, want %v", c.siret, got, c.want)
		}
	}
}

func TestValidateSIRETRejectsSingleDigitMutations(t *testing.T) {
	for i := 0; i < len(validSIRET); i++ {
		for d := byte('0'); d <= '9'; d++ {
			if validSIRET[i] == d {
				continue
			}
			mutated := validSIRET[:i] + string(d) + validSIRET[i+1:]
			if ValidateSIRET(mutated) {
				t.Errorf("expected mutation %q (pos %d) to be invalid", mutated, i)
			}
		}
	}
}

func TestFormatSIRET(t *testing.T) {
	got := FormatSIRET(validSIRET)
	if got != "732 829 320 00074" {
		t.Fatalf("FormatSIRET(%q) = %q", validSIRET, got)
	}

	groups := strings.Split(got, " ")
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}
	for i, want := range []int{3, 3, 3, 5} {
		if len(groups[i]) != want {
			t.Errorf("group %d has length %d, want %d", i, len(groups[i]), want)
		}
	}

	// Removing the spaces must reassemble the canonical form.
	if strings.ReplaceAll(got, " ", "") != validSIRET {
		t.Fatalf("formatted SIRET does not round-trip: %q", got)
	}
}

func TestFormatSIRETPassThrough(t *testing.T) {
	for _, s := range []string{"", "123", "123456789012345"} {
		if got := FormatSIRET(s); got != s {
			t.Errorf("FormatSIRET(%q) = %q, want unchanged", s, got)
		}
	}
}
