package models

// Settlement represents a payment between group members to clear debts.
// Settlements are derived from a group's expenses and never stored.
type Settlement struct {
	// From is the member who pays (debtor settling up).
	From Member

	// To is the member who receives payment (creditor being paid).
	To Member

	// Amount is the payment amount. Always positive.
	Amount float64
}

// MemberBalance is the balance view of one member across all expenses.
type MemberBalance struct {
	Member Member

	// Paid is the total this member paid out.
	Paid float64

	// Owed is the total of this member's shares.
	Owed float64

	// Net is Paid - Owed. Positive = owed money, negative = owes money.
	Net float64
}
