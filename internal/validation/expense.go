package validation

import (
	"fmt"
	"strings"

	"github.com/parogest/parogest/internal/domain"
)

const maxDescriptionLen = 500

// ValidateExpense checks a candidate expense, accumulating every violated
// field. Existence of the referenced user, category and supplier is the
// persistence layer's concern.
func ValidateExpense(e *domain.Expense) ErrorSet {
	var errs ErrorSet

	if e.Amount <= 0 {
		errs.AddValue("amount", CodeOutOfRange, "amount must be greater than 0", e.Amount.String())
	}
	if strings.TrimSpace(e.Description) == "" {
		errs.Add("description", CodeRequired, "description is required")
	} else if len(e.Description) > maxDescriptionLen {
		errs.Add("description", CodeTooLong,
			fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	if e.ExpenseDate.IsZero() {
		errs.Add("expense_date", CodeRequired, "expense_date is required")
	}
	if !e.Status.Valid() {
		errs.AddValue("status", CodeInvalidValue, "unknown expense status", string(e.Status))
	}
	if e.CategoryID <= 0 {
		errs.Add("category_id", CodeRequired, "category_id is required")
	}
	if e.SupplierID != nil && *e.SupplierID <= 0 {
		errs.Add("supplier_id", CodeInvalidValue, "supplier_id must be a positive id")
	}

	return errs
}

// ValidateExpenseUpdate guards mutation of an existing expense. PAID and
// CANCELLED are terminal: any update of a terminal expense is rejected,
// whatever fields it touches. A status change must also follow a legal
// state-machine edge.
func ValidateExpenseUpdate(current *domain.Expense, newStatus domain.ExpenseStatus) ErrorSet {
	var errs ErrorSet

	if current.Status.Terminal() {
		errs.AddValue("status", CodeImmutable,
			fmt.Sprintf("expense in status %s can no longer be modified", current.Status),
			string(current.Status))
		return errs
	}
	if newStatus != "" && !domain.CanTransition(current.Status, newStatus) {
		errs.AddValue("status", CodeInvalidValue,
			fmt.Sprintf("cannot transition expense from %s to %s", current.Status, newStatus),
			string(newStatus))
	}

	return errs
}
