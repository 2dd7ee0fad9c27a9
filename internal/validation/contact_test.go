package validation

import (
	"strings"
	"testing"

	"github.com/parogest/parogest/internal/domain"
)

func validContact() *domain.Contact {
	return &domain.Contact{
		ContactType: domain.ContactTypeSupplier,
		IsCompany:   true,
		Name:        "EDF",
		Email:       "contact@edf.fr",
		SIRET:       "73282932000074",
		Active:      true,
	}
}

func TestValidateContactOK(t *testing.T) {
	c := validContact()
	if errs := ValidateContact(c); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if c.Country != "France" {
		t.Fatalf("expected country default France, got %q", c.Country)
	}
}

func TestValidateContactAnyTypeWithValidSIRET(t *testing.T) {
	// The model is permissive: a checksum-valid identifier validates
	// whatever the declared contact type is.
	for _, ct := range domain.ContactTypes {
		c := validContact()
		c.ContactType = ct
		if errs := ValidateContact(c); len(errs) != 0 {
			t.Errorf("type %s: expected no errors, got %v", ct, errs)
		}
	}
}

func TestValidateContactBadSIRET(t *testing.T) {
	c := validContact()
	c.SIRET = "12345678901234"

	errs := ValidateContact(c)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Field != "siret" || errs[0].Code != CodeInvalidIdentifier {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
	if errs[0].Value != "12345678901234" {
		t.Fatalf("expected rejected value to be carried, got %q", errs[0].Value)
	}
}

func TestValidateContactAccumulatesAllErrors(t *testing.T) {
	c := &domain.Contact{
		ContactType: domain.ContactType("PARISHIONER"),
		Name:        "",
		Email:       "not-an-email",
		SIRET:       "123",
	}

	errs := ValidateContact(c)
	for _, field := range []string{"name", "email", "siret", "contact_type"} {
		if !errs.Has(field) {
			t.Errorf("expected an error for %s, got %v", field, errs)
		}
	}
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateContactLengthCaps(t *testing.T) {
	c := validContact()
	c.Name = strings.Repeat("a", 201)
	c.City = strings.Repeat("b", 101)
	c.IBAN = strings.Repeat("1", 35)

	errs := ValidateContact(c)
	for _, field := range []string{"name", "city", "iban"} {
		if !errs.Has(field) {
			t.Errorf("expected a too_long error for %s", field)
		}
	}
}

func TestValidateContactPermissiveFieldGroups(t *testing.T) {
	// A supplier carrying donor, clergy and volunteer fields is admissible;
	// the validator must not reject or drop them.
	c := validContact()
	c.IsDonor = true
	c.MinistryRole = "Curé"
	c.VolunteerSkills = map[string]any{"comptage": true}

	if errs := ValidateContact(c); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if !c.IsDonor || c.MinistryRole != "Curé" || c.VolunteerSkills == nil {
		t.Fatalf("cross-type fields must be preserved")
	}
}

func TestErrorSetErr(t *testing.T) {
	var errs ErrorSet
	if errs.Err() != nil {
		t.Fatalf("empty set must yield nil error")
	}
	errs.Add("name", CodeRequired, "name is required")
	err := errs.Err()
	if err == nil {
		t.Fatalf("non-empty set must yield an error")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("unexpected error text: %v", err)
	}
}
