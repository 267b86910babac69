package models

// Expense represents an amount paid by one member and shared by others.
type Expense struct {
	// ID is unique within the owning group.
	ID int `yaml:"id"`

	// Description is what the money was spent on (e.g., "Lunch").
	Description string `yaml:"description"`

	// Amount is the full amount paid. Must be positive.
	Amount float64 `yaml:"amount"`

	// PaidBy is the ID of the member who paid.
	PaidBy int `yaml:"paid_by"`

	// SplitAmong lists the IDs of members sharing the expense equally.
	// It may include the payer.
	SplitAmong []int `yaml:"split_among"`
}

// Clone returns a copy of the expense that shares no memory with e.
func (e Expense) Clone() Expense {
	if e.SplitAmong != nil {
		ids := make([]int, len(e.SplitAmong))
		copy(ids, e.SplitAmong)
		e.SplitAmong = ids
	}
	return e
}
