package calculator

import (
	"github.com/mmynk/splitwiser/internal/models"
)

// Tolerance is the smallest balance magnitude treated as outstanding.
// Anything within ±Tolerance of zero counts as settled; it absorbs
// floating point noise from dividing amounts among participants.
const Tolerance = 0.01

// ComputeBalances returns one MemberBalance per group member, in member order.
// Members without any expenses are included with zero balances.
//
// Algorithm:
// - For each expense: payer contributed +amount, each participant owes amount/len(participants)
// - Aggregate: net = paid - owed
func ComputeBalances(group models.Group) ([]models.MemberBalance, error) {
	if err := Validate(group); err != nil {
		return nil, err
	}
	return computeBalances(group), nil
}

// computeBalances assumes the group has been validated.
func computeBalances(group models.Group) []models.MemberBalance {
	balances := make([]models.MemberBalance, len(group.Members))
	index := make(map[int]int, len(group.Members))
	for i, m := range group.Members {
		balances[i] = models.MemberBalance{Member: m}
		index[m.ID] = i
	}

	for _, expense := range group.Expenses {
		participants := distinct(expense.SplitAmong)
		share := expense.Amount / float64(len(participants))

		// Payer paid the full amount
		balances[index[expense.PaidBy]].Paid += expense.Amount

		// Each participant owes their share
		for _, id := range participants {
			balances[index[id]].Owed += share
		}
	}

	for i := range balances {
		balances[i].Net = balances[i].Paid - balances[i].Owed
	}
	return balances
}

// distinct drops repeated IDs, keeping first occurrences in order.
func distinct(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
