package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/parogest/parogest/internal/domain"
)

// PostgresContactRepository implements domain.ContactRepository using PostgreSQL
type PostgresContactRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresContactRepository creates a new contact repository
func NewPostgresContactRepository(db *sql.DB, logger *slog.Logger) *PostgresContactRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresContactRepository{
		db:     db,
		logger: logger,
	}
}

const contactColumns = `
	id, contact_type, is_company, name, COALESCE(display_name, ''),
	COALESCE(email, ''), COALESCE(phone, ''), COALESCE(mobile, ''),
	COALESCE(street, ''), COALESCE(street2, ''), COALESCE(zip_code, ''),
	COALESCE(city, ''), country, COALESCE(siret, ''), COALESCE(vat_number, ''),
	is_donor, anonymize_donation, COALESCE(ministry_role, ''), ordination_date,
	volunteer_skills, COALESCE(bank_name, ''), COALESCE(iban, ''),
	COALESCE(bic, ''), active, COALESCE(notes, ''), created_at, updated_at
`

// Create inserts a new contact
func (r *PostgresContactRepository) Create(c *domain.Contact) error {
	skills, err := marshalSkills(c.VolunteerSkills)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contacts (
			contact_type, is_company, name, display_name, email, phone, mobile,
			street, street2, zip_code, city, country, siret, vat_number,
			is_donor, anonymize_donation, ministry_role, ordination_date,
			volunteer_skills, bank_name, iban, bic, active, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(
		query,
		string(c.ContactType),
		c.IsCompany,
		c.Name,
		nullString(c.DisplayName),
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Mobile),
		nullString(c.Street),
		nullString(c.Street2),
		nullString(c.ZipCode),
		nullString(c.City),
		c.Country,
		nullString(c.SIRET),
		nullString(c.VATNumber),
		c.IsDonor,
		c.AnonymizeDonation,
		nullString(c.MinistryRole),
		c.OrdinationDate,
		skills,
		nullString(c.BankName),
		nullString(c.IBAN),
		nullString(c.BIC),
		c.Active,
		nullString(c.Notes),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		err = mapConflict(err)
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			r.logger.Error("failed to create contact",
				slog.String("name", c.Name),
				slog.String("error", err.Error()),
			)
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// GetByID retrieves a contact by ID
func (r *PostgresContactRepository) GetByID(id int64) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a contact by email
func (r *PostgresContactRepository) GetByEmail(email string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE email = $1`
	return r.scanOne(r.db.QueryRow(query, email))
}

// Update saves every mutable field of an existing contact
func (r *PostgresContactRepository) Update(c *domain.Contact) error {
	skills, err := marshalSkills(c.VolunteerSkills)
	if err != nil {
		return err
	}

	query := `
		UPDATE contacts SET
			contact_type = $1, is_company = $2, name = $3, display_name = $4,
			email = $5, phone = $6, mobile = $7, street = $8, street2 = $9,
			zip_code = $10, city = $11, country = $12, siret = $13,
			vat_number = $14, is_donor = $15, anonymize_donation = $16,
			ministry_role = $17, ordination_date = $18, volunteer_skills = $19,
			bank_name = $20, iban = $21, bic = $22, active = $23, notes = $24,
			updated_at = NOW()
		WHERE id = $25
		RETURNING updated_at
	`

	err = r.db.QueryRow(
		query,
		string(c.ContactType),
		c.IsCompany,
		c.Name,
		nullString(c.DisplayName),
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Mobile),
		nullString(c.Street),
		nullString(c.Street2),
		nullString(c.ZipCode),
		nullString(c.City),
		c.Country,
		nullString(c.SIRET),
		nullString(c.VATNumber),
		c.IsDonor,
		c.AnonymizeDonation,
		nullString(c.MinistryRole),
		c.OrdinationDate,
		skills,
		nullString(c.BankName),
		nullString(c.IBAN),
		nullString(c.BIC),
		c.Active,
		nullString(c.Notes),
		c.ID,
	).Scan(&c.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update contact: %w", mapConflict(err))
	}

	return nil
}

// Delete removes a contact
func (r *PostgresContactRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns a page of contacts matching the filter
func (r *PostgresContactRepository) List(filter domain.ContactFilter, skip, limit int) ([]*domain.Contact, error) {
	where, args := contactWhere(filter)
	query := fmt.Sprintf(
		`SELECT %s FROM contacts %s ORDER BY name ASC OFFSET $%d LIMIT $%d`,
		contactColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, skip, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("failed to list contacts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Count returns the number of contacts matching the filter
func (r *PostgresContactRepository) Count(filter domain.ContactFilter) (int, error) {
	where, args := contactWhere(filter)
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM contacts `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return total, nil
}

// contactWhere builds the WHERE clause for the filter. Search matches name,
// email or SIRET; the other fields narrow individually.
func contactWhere(f domain.ContactFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		add("(name ILIKE $%[1]d OR email ILIKE $%[1]d OR siret ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.ContactType != "" {
		add("contact_type = $%d", string(f.ContactType))
	}
	if f.Name != "" {
		add("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Email != "" {
		add("email ILIKE $%d", "%"+f.Email+"%")
	}
	if f.SIRET != "" {
		add("siret = $%d", f.SIRET)
	}
	if f.City != "" {
		add("city ILIKE $%d", "%"+f.City+"%")
	}
	if f.Active != nil {
		add("active = $%d", *f.Active)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresContactRepository) scanOne(row rowScanner) (*domain.Contact, error) {
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("failed to get contact", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	c := &domain.Contact{}
	var contactType string
	var ordinationDate sql.NullTime
	var skills []byte

	err := row.Scan(
		&c.ID,
		&contactType,
		&c.IsCompany,
		&c.Name,
		&c.DisplayName,
		&c.Email,
		&c.Phone,
		&c.Mobile,
		&c.Street,
		&c.Street2,
		&c.ZipCode,
		&c.City,
		&c.Country,
		&c.SIRET,
		&c.VATNumber,
		&c.IsDonor,
		&c.AnonymizeDonation,
		&c.MinistryRole,
		&ordinationDate,
		&skills,
		&c.BankName,
		&c.IBAN,
		&c.BIC,
		&c.Active,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ContactType = domain.ContactType(contactType)
	if ordinationDate.Valid {
		t := ordinationDate.Time
		c.OrdinationDate = &t
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &c.VolunteerSkills); err != nil {
			return nil, fmt.Errorf("failed to decode volunteer skills: %w", err)
		}
	}
	return c, nil
}

func marshalSkills(skills map[string]any) (any, error) {
	if skills == nil {
		return nil, nil
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode volunteer skills: %w", err)
	}
	return b, nil
}
