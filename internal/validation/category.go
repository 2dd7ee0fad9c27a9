package validation

import (
	"fmt"
	"strings"

	"github.com/parogest/parogest/internal/domain"
)

const (
	maxCategoryNameLen = 100
	maxCategoryCodeLen = 10
)

// ValidateCategory checks a candidate expense category. Uniqueness of name
// and code is the persistence layer's concern.
func ValidateCategory(c *domain.Category) ErrorSet {
	var errs ErrorSet

	if strings.TrimSpace(c.Name) == "" {
		errs.Add("name", CodeRequired, "name is required")
	} else if len(c.Name) > maxCategoryNameLen {
		errs.Add("name", CodeTooLong, fmt.Sprintf("name must be at most %d characters", maxCategoryNameLen))
	}
	if len(c.Code) > maxCategoryCodeLen {
		errs.Add("code", CodeTooLong, fmt.Sprintf("code must be at most %d characters", maxCategoryCodeLen))
	}

	return errs
}
