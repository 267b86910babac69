package calculator

import (
	"fmt"
	"math"

	"github.com/mmynk/splitwiser/internal/models"
)

// Validate checks the invariants the settlement calculation relies on:
// unique member IDs, positive finite amounts, a non-empty participant set,
// and payer/participant IDs that reference members of the group.
func Validate(group models.Group) error {
	seen := make(map[int]bool, len(group.Members))
	for _, m := range group.Members {
		if seen[m.ID] {
			return &ValidationError{
				GroupID: group.ID,
				Reason:  fmt.Sprintf("duplicate member id %d", m.ID),
			}
		}
		seen[m.ID] = true
	}

	for i, expense := range group.Expenses {
		if err := validateExpense(seen, expense); err != nil {
			err.GroupID = group.ID
			err.ExpenseIndex = i + 1
			return err
		}
	}
	return nil
}

// ValidateExpense checks a single expense against a member list.
// Used before an expense is added to a group.
func ValidateExpense(members []models.Member, expense models.Expense) error {
	ids := make(map[int]bool, len(members))
	for _, m := range members {
		ids[m.ID] = true
	}
	if err := validateExpense(ids, expense); err != nil {
		return err
	}
	return nil
}

func validateExpense(members map[int]bool, expense models.Expense) *ValidationError {
	invalid := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			ExpenseID:   expense.ID,
			Description: expense.Description,
			Reason:      fmt.Sprintf(format, args...),
		}
	}

	// NaN fails the comparison as well
	if !(expense.Amount > 0) || math.IsInf(expense.Amount, 0) {
		return invalid("amount must be a positive number, got %v", expense.Amount)
	}
	if len(expense.SplitAmong) == 0 {
		return invalid("must be split among at least one member")
	}
	if !members[expense.PaidBy] {
		return invalid("payer %d is not a member of the group", expense.PaidBy)
	}
	for _, id := range expense.SplitAmong {
		if !members[id] {
			return invalid("participant %d is not a member of the group", id)
		}
	}
	return nil
}
