package validation

import (
	"fmt"
	"strings"

	"github.com/parogest/parogest/internal/domain"
)

const (
	maxUserNameLen  = 100
	maxUserEmailLen = 255

	// MinPasswordLength is the API-boundary floor for new passwords.
	// The hashing primitive itself accepts secrets of any length.
	MinPasswordLength = 8
)

// ValidateUser checks a candidate user record. The password is validated
// separately (ValidatePassword) since updates may omit it.
func ValidateUser(u *domain.User) ErrorSet {
	var errs ErrorSet

	if strings.TrimSpace(u.Email) == "" {
		errs.Add("email", CodeRequired, "email is required")
	} else if len(u.Email) > maxUserEmailLen {
		errs.Add("email", CodeTooLong, fmt.Sprintf("email must be at most %d characters", maxUserEmailLen))
	} else if !plausibleEmail(u.Email) {
		errs.AddValue("email", CodeInvalidValue, "invalid email address", u.Email)
	}

	if strings.TrimSpace(u.FirstName) == "" {
		errs.Add("first_name", CodeRequired, "first_name is required")
	} else if len(u.FirstName) > maxUserNameLen {
		errs.Add("first_name", CodeTooLong, fmt.Sprintf("first_name must be at most %d characters", maxUserNameLen))
	}
	if strings.TrimSpace(u.LastName) == "" {
		errs.Add("last_name", CodeRequired, "last_name is required")
	} else if len(u.LastName) > maxUserNameLen {
		errs.Add("last_name", CodeTooLong, fmt.Sprintf("last_name must be at most %d characters", maxUserNameLen))
	}
	checkLen(&errs, "phone", u.Phone, maxPhoneLen)

	if !u.Role.Valid() {
		errs.AddValue("role", CodeInvalidValue, "unknown user role", string(u.Role))
	}

	return errs
}

// ValidatePassword checks a new plaintext password against the boundary
// policy.
func ValidatePassword(password string) ErrorSet {
	var errs ErrorSet
	if len(password) < MinPasswordLength {
		errs.Add("password", CodeOutOfRange,
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return errs
}
