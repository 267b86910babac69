package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/splitwiser/internal/models"
)

// Result bundles the balance view and the settlement plan for a group.
type Result struct {
	Balances    []models.MemberBalance
	Settlements []models.Settlement
}

// ComputeSettlements returns the transfers that settle every outstanding
// balance in the group.
//
// Debtors (net < -Tolerance) are matched to creditors (net > Tolerance),
// always taking the remaining debtor and creditor with the lowest member ID.
// Each transfer moves min(debt, credit), which clears at least one side, so
// a group with D debtors and K creditors yields at most D+K-1 settlements.
func ComputeSettlements(group models.Group) ([]models.Settlement, error) {
	result, err := Plan(group)
	if err != nil {
		return nil, err
	}
	return result.Settlements, nil
}

// Plan validates the group once and returns both balances and settlements.
func Plan(group models.Group) (Result, error) {
	if err := Validate(group); err != nil {
		return Result{}, err
	}
	balances := computeBalances(group)
	return Result{
		Balances:    balances,
		Settlements: settle(balances),
	}, nil
}

// party is a member still taking part in matching.
// remaining is always positive: what the debtor owes or the creditor is owed.
type party struct {
	member    models.Member
	remaining float64
}

func settle(balances []models.MemberBalance) []models.Settlement {
	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Net < -Tolerance:
			debtors = append(debtors, party{member: b.Member, remaining: -b.Net})
		case b.Net > Tolerance:
			creditors = append(creditors, party{member: b.Member, remaining: b.Net})
		}
	}

	byID := func(parties []party) func(i, j int) bool {
		return func(i, j int) bool { return parties[i].member.ID < parties[j].member.ID }
	}
	sort.Slice(debtors, byID(debtors))
	sort.Slice(creditors, byID(creditors))

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := math.Min(debtor.remaining, creditor.remaining)
		settlements = append(settlements, models.Settlement{
			From:   debtor.member,
			To:     creditor.member,
			Amount: amount,
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		// Move to next debtor/creditor if fully settled
		if debtor.remaining < Tolerance {
			i++
		}
		if creditor.remaining < Tolerance {
			j++
		}
	}
	return settlements
}
