// Package report renders groups, balances and settlement plans as plain text.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitwiser/internal/calculator"
	"github.com/mmynk/splitwiser/internal/models"
)

// DefaultCurrency is the symbol printed in front of amounts.
const DefaultCurrency = "₹"

// FormatAmount rounds v to two decimal places (half away from zero).
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// FormatSigned is FormatAmount with an explicit sign for non-zero values.
// Values inside the settlement tolerance print as 0.00.
func FormatSigned(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.Abs().LessThan(decimal.NewFromFloat(calculator.Tolerance)) {
		return "0.00"
	}
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

// Groups writes one line per group with its member count.
func Groups(w io.Writer, groups []*models.Group) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMEMBERS\tEXPENSES")
	for _, g := range groups {
		fmt.Fprintf(tw, "%d\t%s\t%d members\t%d\n", g.ID, g.Name, len(g.Members), len(g.Expenses))
	}
	return tw.Flush()
}

// Group writes the members and expenses of a group.
func Group(w io.Writer, group *models.Group, currency string) error {
	fmt.Fprintf(w, "%s\n\nMembers\n", group.Name)
	for _, m := range group.Members {
		fmt.Fprintf(w, "  %s\n", m.Name)
	}

	fmt.Fprintln(w, "\nExpenses")
	if len(group.Expenses) == 0 {
		_, err := fmt.Fprintln(w, "  No expenses yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range group.Expenses {
		paidBy := "Unknown"
		if m, ok := group.FindMember(e.PaidBy); ok {
			paidBy = m.Name
		}
		fmt.Fprintf(tw, "  %s\tPaid by: %s\t%s%s\n", e.Description, paidBy, currency, FormatAmount(e.Amount))
	}
	return tw.Flush()
}

// Balances writes the balance view: paid, owed and net per member.
func Balances(w io.Writer, balances []models.MemberBalance, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MEMBER\tPAID\tOWED\tNET\t")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s%s\t%s%s\t%s\t\n",
			b.Member.Name,
			currency, FormatAmount(b.Paid),
			currency, FormatAmount(b.Owed),
			FormatSigned(b.Net),
		)
	}
	return tw.Flush()
}

// Settlements writes one line per transfer, or a note when nothing is owed.
func Settlements(w io.Writer, settlements []models.Settlement, currency string) error {
	if len(settlements) == 0 {
		_, err := fmt.Fprintln(w, "All settled up.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range settlements {
		fmt.Fprintf(tw, "%s -> %s\t%s%s\n", s.From.Name, s.To.Name, currency, FormatAmount(s.Amount))
	}
	return tw.Flush()
}

// Plan writes a titled balance view followed by the settlement list.
func Plan(w io.Writer, group *models.Group, balances []models.MemberBalance, settlements []models.Settlement, currency string) error {
	fmt.Fprintf(w, "%s\n\nBalances\n", group.Name)
	if err := Balances(w, balances, currency); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nSettlements")
	return Settlements(w, settlements, currency)
}
