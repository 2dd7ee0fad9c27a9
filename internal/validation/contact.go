package validation

import (
	"fmt"
	"strings"

	"github.com/parogest/parogest/internal/domain"
)

// DefaultCountry is applied when a contact has no country set.
const DefaultCountry = "France"

// Length caps for contact fields, matching the persisted column widths.
const (
	maxNameLen     = 200
	maxEmailLen    = 250
	maxPhoneLen    = 20
	maxStreetLen   = 255
	maxZipLen      = 10
	maxCityLen     = 100
	maxCountryLen  = 100
	maxVATLen      = 50
	maxMinistryLen = 100
	maxBankNameLen = 100
	maxIBANLen     = 34
	maxBICLen      = 11
)

// ValidateContact checks a candidate contact and returns every violated
// field in one pass. It also applies the country default. The contact type
// is permissive: fields from another type's group (a supplier marked as
// donor, a volunteer with a SIRET) are neither rejected nor dropped.
//
// Uniqueness of email or SIRET across contacts is the persistence layer's
// concern, not shape validation.
func ValidateContact(c *domain.Contact) ErrorSet {
	var errs ErrorSet

	if strings.TrimSpace(c.Name) == "" {
		errs.Add("name", CodeRequired, "name is required")
	} else if len(c.Name) > maxNameLen {
		errs.Add("name", CodeTooLong, fmt.Sprintf("name must be at most %d characters", maxNameLen))
	}
	if len(c.DisplayName) > maxNameLen {
		errs.Add("display_name", CodeTooLong, fmt.Sprintf("display_name must be at most %d characters", maxNameLen))
	}

	if !c.ContactType.Valid() {
		errs.AddValue("contact_type", CodeInvalidValue, "unknown contact type", string(c.ContactType))
	}

	if c.Email != "" {
		if len(c.Email) > maxEmailLen {
			errs.Add("email", CodeTooLong, fmt.Sprintf("email must be at most %d characters", maxEmailLen))
		} else if !plausibleEmail(c.Email) {
			errs.AddValue("email", CodeInvalidValue, "invalid email address", c.Email)
		}
	}
	checkLen(&errs, "phone", c.Phone, maxPhoneLen)
	checkLen(&errs, "mobile", c.Mobile, maxPhoneLen)

	checkLen(&errs, "street", c.Street, maxStreetLen)
	checkLen(&errs, "street2", c.Street2, maxStreetLen)
	checkLen(&errs, "zip_code", c.ZipCode, maxZipLen)
	checkLen(&errs, "city", c.City, maxCityLen)

	if c.Country == "" {
		c.Country = DefaultCountry
	} else if len(c.Country) > maxCountryLen {
		errs.Add("country", CodeTooLong, fmt.Sprintf("country must be at most %d characters", maxCountryLen))
	}

	if !ValidateSIRET(c.SIRET) {
		errs.AddValue("siret", CodeInvalidIdentifier,
			"invalid SIRET number: must be 14 digits and pass the checksum", c.SIRET)
	}
	checkLen(&errs, "vat_number", c.VATNumber, maxVATLen)

	checkLen(&errs, "ministry_role", c.MinistryRole, maxMinistryLen)

	checkLen(&errs, "bank_name", c.BankName, maxBankNameLen)
	checkLen(&errs, "iban", c.IBAN, maxIBANLen)
	checkLen(&errs, "bic", c.BIC, maxBICLen)

	return errs
}

func checkLen(errs *ErrorSet, field, value string, max int) {
	if len(value) > max {
		errs.Add(field, CodeTooLong, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}

// plausibleEmail applies the minimal shape check: one "@" with a dotted
// domain. Deliverability is not this module's concern.
func plausibleEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, dom := s[:at], s[at+1:]
	if strings.ContainsAny(local, " \t") || strings.ContainsRune(dom, '@') {
		return false
	}
	dot := strings.IndexByte(dom, '.')
	return dot > 0 && dot < len(dom)-1
}
