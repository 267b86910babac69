package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGroup is matched by every ValidationError.
var ErrInvalidGroup = errors.New("invalid group")

// ValidationError reports a group that breaks one of the model invariants.
// Expense fields are zero when the problem is not tied to an expense.
// ExpenseIndex is the 1-based position of the expense in the group, so an
// expense that has no ID yet can still be named.
type ValidationError struct {
	GroupID      int
	ExpenseID    int
	ExpenseIndex int
	Description  string
	Reason       string
}

func (e *ValidationError) Error() string {
	if expense := e.expense(); expense != "" {
		return fmt.Sprintf("group %d: %s: %s", e.GroupID, expense, e.Reason)
	}
	return fmt.Sprintf("group %d: %s", e.GroupID, e.Reason)
}

func (e *ValidationError) expense() string {
	var parts []string
	switch {
	case e.ExpenseID != 0:
		parts = append(parts, fmt.Sprintf("expense %d", e.ExpenseID))
	case e.ExpenseIndex != 0:
		parts = append(parts, fmt.Sprintf("expense #%d", e.ExpenseIndex))
	case e.Description != "":
		parts = append(parts, "expense")
	default:
		return ""
	}
	if e.Description != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Description))
	}
	return strings.Join(parts, " ")
}

// Unwrap lets callers use errors.Is(err, ErrInvalidGroup).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidGroup
}
