package domain

import (
	"fmt"
	"time"
)

// ContactType classifies a third party. The model is unified: a single
// Contact row can represent any of these, and the type tag never forbids
// fields belonging to another group.
type ContactType string

const (
	ContactTypeSupplier  ContactType = "SUPPLIER"
	ContactTypeDonor     ContactType = "DONOR"
	ContactTypeVolunteer ContactType = "VOLUNTEER"
	ContactTypePriest    ContactType = "PRIEST"
	ContactTypeDiocese   ContactType = "DIOCESE"
	ContactTypeOther     ContactType = "OTHER"
)

// ContactTypes lists every valid tag, in display order.
var ContactTypes = []ContactType{
	ContactTypeSupplier,
	ContactTypeDonor,
	ContactTypeVolunteer,
	ContactTypePriest,
	ContactTypeDiocese,
	ContactTypeOther,
}

// Valid reports whether t is one of the known tags.
func (t ContactType) Valid() bool {
	switch t {
	case ContactTypeSupplier, ContactTypeDonor, ContactTypeVolunteer,
		ContactTypePriest, ContactTypeDiocese, ContactTypeOther:
		return true
	}
	return false
}

// ParseContactType maps a wire value onto a ContactType. Wire values are
// uppercase; that casing is the stable contract.
func ParseContactType(s string) (ContactType, error) {
	t := ContactType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown contact type %q", s)
	}
	return t, nil
}

// Contact represents any third party: supplier, donor, volunteer, priest,
// diocese or other. Field groups are scoped by ContactType but never
// exclusive to it.
type Contact struct {
	ID          int64
	ContactType ContactType
	IsCompany   bool
	Name        string // Required, display name of the party
	DisplayName string // Optional (e.g. "Abbé Martin")

	// Communication channels
	Email  string // Unique across contacts (enforced by persistence)
	Phone  string
	Mobile string

	// Postal address
	Street  string
	Street2 string
	ZipCode string
	City    string
	Country string // Defaults to "France"

	// Legal identifiers (supplier group)
	SIRET     string // 14 digits, Luhn-checked, canonical form has no separators
	VATNumber string

	// Donor group
	IsDonor           bool
	AnonymizeDonation bool

	// Clergy group
	MinistryRole   string
	OrdinationDate *time.Time

	// Volunteer group: open key/value skills map
	VolunteerSkills map[string]any

	// Banking details (for reimbursements)
	BankName string
	IBAN     string
	BIC      string

	// Lifecycle
	Active bool
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactFilter narrows contact listings. Zero values mean "no filter".
type ContactFilter struct {
	Search      string // name OR email OR siret, substring match
	ContactType ContactType
	Name        string
	Email       string
	SIRET       string // exact match
	City        string
	Active      *bool
}

// ContactRepository defines data access for contacts
type ContactRepository interface {
	Create(contact *Contact) error
	GetByID(id int64) (*Contact, error)
	GetByEmail(email string) (*Contact, error)
	Update(contact *Contact) error
	Delete(id int64) error
	List(filter ContactFilter, skip, limit int) ([]*Contact, error)
	Count(filter ContactFilter) (int, error)
}
