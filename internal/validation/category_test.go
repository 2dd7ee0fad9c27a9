package validation

import (
	"strings"
	"testing"

	"github.com/parogest/parogest/internal/domain"
)

func TestValidateCategory(t *testing.T) {
	c := &domain.Category{Name: "Entretien", Code: "615", IsActive: true}
	if errs := ValidateCategory(c); len(errs) != 0 {
		t.Fatalf("expected a valid category, got %v", errs)
	}

	// Code is optional.
	c = &domain.Category{Name: "Culte"}
	if errs := ValidateCategory(c); len(errs) != 0 {
		t.Fatalf("expected a codeless category to be valid, got %v", errs)
	}
}

func TestValidateCategoryRequiresName(t *testing.T) {
	c := &domain.Category{Name: "   ", Code: "615"}
	errs := ValidateCategory(c)
	if len(errs) != 1 || errs[0].Field != "name" || errs[0].Code != CodeRequired {
		t.Fatalf("expected a single required-name error, got %v", errs)
	}
}

func TestValidateCategoryAccumulates(t *testing.T) {
	c := &domain.Category{
		Name: strings.Repeat("x", 101),
		Code: strings.Repeat("6", 11),
	}
	errs := ValidateCategory(c)
	if len(errs) != 2 {
		t.Fatalf("expected both caps to be reported, got %v", errs)
	}
	for _, field := range []string{"name", "code"} {
		if !errs.Has(field) {
			t.Errorf("expected an error for %s, got %v", field, errs)
		}
	}
	for _, e := range errs {
		if e.Code != CodeTooLong {
			t.Errorf("expected too_long for %s, got %s", e.Field, e.Code)
		}
	}

	// At the caps both fields pass.
	c = &domain.Category{
		Name: strings.Repeat("x", 100),
		Code: strings.Repeat("6", 10),
	}
	if errs := ValidateCategory(c); len(errs) != 0 {
		t.Fatalf("expected fields at their caps to be valid, got %v", errs)
	}
}
