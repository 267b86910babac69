package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitwiser/internal/models"
	"github.com/mmynk/splitwiser/internal/seed"
)

// errNoSeedFile is returned by commands that change groups when there is no
// seed file to write the result back to.
var errNoSeedFile = errors.New("set seed_file in the config to change groups")

func newGroupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new-group <name> [member...]",
		Short: "Create a group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSeedFile(); err != nil {
				return err
			}
			group, err := a.groups.CreateGroup(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %d: %s\n", group.ID, group.Name)
			return nil
		},
	}
}

func addMemberCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-member <group-id> <name>",
		Short: "Add a member to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSeedFile(); err != nil {
				return err
			}
			groupID, err := parseGroupID(args[0])
			if err != nil {
				return err
			}
			member, err := a.groups.AddMember(cmd.Context(), groupID, args[1])
			if err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added member %d: %s\n", member.ID, member.Name)
			return nil
		},
	}
}

func addExpenseCommand(a *app) *cobra.Command {
	var (
		description string
		amount      string
		paidBy      int
		split       []int
	)

	cmd := &cobra.Command{
		Use:   "add-expense <group-id>",
		Short: "Record an expense split equally among members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSeedFile(); err != nil {
				return err
			}
			groupID, err := parseGroupID(args[0])
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(amount, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}

			if len(split) == 0 {
				group, err := a.groups.GetGroup(cmd.Context(), groupID)
				if err != nil {
					return err
				}
				for _, m := range group.Members {
					split = append(split, m.ID)
				}
			}

			expense, err := a.groups.AddExpense(cmd.Context(), groupID, description, value, paidBy, split)
			if err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added expense %d: %s\n", expense.ID, expense.Description)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&description, "description", "d", "", "what the money was spent on")
	flags.StringVarP(&amount, "amount", "a", "", "amount paid")
	flags.IntVarP(&paidBy, "paid-by", "p", 0, "member id of the payer")
	flags.IntSliceVarP(&split, "split", "s", nil, "member ids sharing the expense (default every member)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("paid-by")
	return cmd
}

func deleteGroupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-group <group-id>",
		Short: "Delete a group and its expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSeedFile(); err != nil {
				return err
			}
			groupID, err := parseGroupID(args[0])
			if err != nil {
				return err
			}
			if err := a.groups.DeleteGroup(cmd.Context(), groupID); err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %d\n", groupID)
			return nil
		},
	}
}

func (a *app) requireSeedFile() error {
	if a.conf.SeedFile == "" {
		return errNoSeedFile
	}
	return nil
}

// save writes every group in the store back to the seed file.
func (a *app) save(ctx context.Context) error {
	stored, err := a.groups.ListGroups(ctx)
	if err != nil {
		return err
	}
	groups := make([]models.Group, 0, len(stored))
	for _, g := range stored {
		groups = append(groups, *g)
	}
	return seed.SaveFile(a.conf.SeedFile, groups)
}
