package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ExpenseStatus is the expense state machine tag.
//
//	DRAFT -> PENDING -> PAID
//	DRAFT -> CANCELLED
//	PENDING -> CANCELLED
//
// PAID and CANCELLED are terminal: once reached, no further mutation is
// admissible through the validation layer.
type ExpenseStatus string

const (
	StatusDraft     ExpenseStatus = "DRAFT"
	StatusPending   ExpenseStatus = "PENDING"
	StatusPaid      ExpenseStatus = "PAID"
	StatusCancelled ExpenseStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s ExpenseStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transition.
func (s ExpenseStatus) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// CanTransition reports whether the from -> to edge is legal.
// Self-transitions are allowed on non-terminal states.
func CanTransition(from, to ExpenseStatus) bool {
	if from.Terminal() {
		return false
	}
	switch from {
	case StatusDraft:
		return to == StatusDraft || to == StatusPending || to == StatusCancelled
	case StatusPending:
		return to == StatusPending || to == StatusPaid || to == StatusCancelled
	}
	return false
}

// ParseExpenseStatus maps a wire value onto an ExpenseStatus.
func ParseExpenseStatus(s string) (ExpenseStatus, error) {
	st := ExpenseStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown expense status %q", s)
	}
	return st, nil
}

// Amount is a euro amount in cents. Fixed-point with two fractional digits:
// every amount round-trips ParseAmount/String without loss.
type Amount int64

// ParseAmount parses a decimal string such as "19.99" into cents.
// At most two fractional digits are accepted.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	// Leave room for the two fractional digits.
	if units > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	cents := units * 100
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("amount %q must have at most 2 decimal places", s)
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil || f < 0 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += f
	}
	if neg {
		cents = -cents
	}
	return Amount(cents), nil
}

// String renders the amount with exactly two decimals, e.g. "19.99".
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Expense represents a purchase or a reimbursement request.
type Expense struct {
	ID          int64
	Amount      Amount // Strictly positive
	Description string
	ExpenseDate time.Time
	Status      ExpenseStatus

	UserID     int64  // Submitting user
	CategoryID int64  // Accounting category
	SupplierID *int64 // Optional contact acting as supplier

	// Approval metadata, stamped on the PENDING -> PAID edge
	ApprovedByID *int64
	ApprovedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpenseFilter narrows expense listings. Zero values mean "no filter".
type ExpenseFilter struct {
	UserID     int64
	CategoryID int64
	SupplierID int64
	Status     ExpenseStatus
	MinAmount  *Amount
	MaxAmount  *Amount
	StartDate  *time.Time
	EndDate    *time.Time
}

// ExpenseRepository defines data access for expenses
type ExpenseRepository interface {
	Create(expense *Expense) error
	GetByID(id int64) (*Expense, error)
	Update(expense *Expense) error
	Delete(id int64) error
	List(filter ExpenseFilter, skip, limit int) ([]*Expense, error)
	Count(filter ExpenseFilter) (int, error)
}
