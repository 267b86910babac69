package models

// Group represents a set of people sharing expenses.
//
// Members and Expenses keep insertion order so that listings are stable.
type Group struct {
	// ID is the unique identifier for the group.
	ID int `yaml:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Hampi Trip").
	Name string `yaml:"name"`

	// Members is the ordered list of people in this group.
	// Member IDs are unique within the group.
	Members []Member `yaml:"members"`

	// Expenses is the ordered list of shared expenses.
	Expenses []Expense `yaml:"expenses"`
}

// Member represents one person in a group.
type Member struct {
	// ID is unique within the owning group.
	ID int `yaml:"id"`

	// Name is the display name of the member.
	Name string `yaml:"name"`
}

// FindMember returns the member with the given ID.
func (g *Group) FindMember(id int) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	c := &Group{
		ID:   g.ID,
		Name: g.Name,
	}
	if g.Members != nil {
		c.Members = make([]Member, len(g.Members))
		copy(c.Members, g.Members)
	}
	if g.Expenses != nil {
		c.Expenses = make([]Expense, len(g.Expenses))
		for i, e := range g.Expenses {
			c.Expenses[i] = e.Clone()
		}
	}
	return c
}
