package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitwiser/internal/calculator"
	"github.com/mmynk/splitwiser/internal/metrics"
	"github.com/mmynk/splitwiser/internal/models"
	"github.com/mmynk/splitwiser/internal/storage"
	"github.com/mmynk/splitwiser/internal/storage/memory"
)

// setupGroupService creates a GroupService backed by a fresh in-memory store.
func setupGroupService(t *testing.T) (*GroupService, *memory.MemoryStore, *metrics.Metrics) {
	t.Helper()

	store := memory.New()
	t.Cleanup(func() { store.Close() })

	m := metrics.New(prometheus.NewRegistry())
	return NewGroupService(store, m), store, m
}

func TestCreateGroup(t *testing.T) {
	svc, _, _ := setupGroupService(t)

	group, err := svc.CreateGroup(context.Background(), "Roommates", []string{"Alice", "Bob", "Charlie"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if group.ID == 0 {
		t.Error("expected non-zero group ID")
	}
	if group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", group.Name)
	}
	if len(group.Members) != 3 {
		t.Fatalf("members: expected 3, got %d", len(group.Members))
	}
	for i, m := range group.Members {
		if m.ID != i+1 {
			t.Errorf("member %q: expected ID %d, got %d", m.Name, i+1, m.ID)
		}
	}
}

func TestCreateGroupRejectsBlankNames(t *testing.T) {
	svc, _, _ := setupGroupService(t)
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, "  ", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.CreateGroup(ctx, "Trip", []string{"Alice", ""})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetGroupNotFound(t *testing.T) {
	svc, _, _ := setupGroupService(t)

	_, err := svc.GetGroup(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListGroups(t *testing.T) {
	svc, _, _ := setupGroupService(t)
	ctx := context.Background()

	for _, name := range []string{"Roommates", "Work Lunch", "Hampi Trip"} {
		_, err := svc.CreateGroup(ctx, name, []string{"Alice"})
		require.NoError(t, err)
	}

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "Roommates", groups[0].Name)
	assert.Equal(t, "Hampi Trip", groups[2].Name)
}

func TestAddMember(t *testing.T) {
	svc, _, _ := setupGroupService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Trip", []string{"Alice", "Bob"})
	require.NoError(t, err)

	member, err := svc.AddMember(ctx, group.ID, "Charlie")
	require.NoError(t, err)
	assert.Equal(t, 3, member.ID)

	_, err = svc.AddMember(ctx, group.ID, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.AddMember(ctx, 999, "Diana")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddExpense(t *testing.T) {
	svc, _, _ := setupGroupService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Trip", []string{"Alice", "Bob"})
	require.NoError(t, err)

	expense, err := svc.AddExpense(ctx, group.ID, "Hotel", 200, 1, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, expense.ID)

	tests := []struct {
		name        string
		description string
		amount      float64
		paidBy      int
		splitAmong  []int
		wantErr     error
	}{
		{"blank description", "", 10, 1, []int{1}, ErrInvalidArgument},
		{"non-positive amount", "Snacks", 0, 1, []int{1}, calculator.ErrInvalidGroup},
		{"unknown payer", "Snacks", 10, 7, []int{1}, calculator.ErrInvalidGroup},
		{"unknown participant", "Snacks", 10, 1, []int{7}, calculator.ErrInvalidGroup},
		{"empty split", "Snacks", 10, 1, nil, calculator.ErrInvalidGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddExpense(ctx, group.ID, tt.description, tt.amount, tt.paidBy, tt.splitAmong)
			assert.ErrorIs(t, err, tt.wantErr)

			var verr *calculator.ValidationError
			if errors.As(err, &verr) {
				assert.Equal(t, group.ID, verr.GroupID)
			}
		})
	}

	stored, err := svc.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Expenses, 1, "rejected expenses must not be stored")
}

func TestSettleGroup(t *testing.T) {
	svc, _, m := setupGroupService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Absolute Brilliance", []string{"Hemanth", "Shreekar", "Vedantha"})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, group.ID, "Lunch", 1200, 1, []int{1, 2, 3})
	require.NoError(t, err)

	plan, err := svc.SettleGroup(ctx, group.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, group.ID, plan.Group.ID)
	require.Len(t, plan.Balances, 3)
	assert.InDelta(t, 800.0, plan.Balances[0].Net, 1e-9)
	assert.InDelta(t, -400.0, plan.Balances[1].Net, 1e-9)
	assert.InDelta(t, -400.0, plan.Balances[2].Net, 1e-9)

	require.Len(t, plan.Settlements, 2)
	assert.Equal(t, "Shreekar", plan.Settlements[0].From.Name)
	assert.Equal(t, "Hemanth", plan.Settlements[0].To.Name)
	assert.InDelta(t, 400.0, plan.Settlements[0].Amount, 1e-9)
	assert.Equal(t, "Vedantha", plan.Settlements[1].From.Name)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations().WithLabelValues(metrics.ResultOK)))
}

func TestSettleGroupInvalidSnapshot(t *testing.T) {
	svc, store, m := setupGroupService(t)
	ctx := context.Background()

	// Written straight to the store to bypass service validation.
	group := &models.Group{
		Name:    "Broken",
		Members: []models.Member{{ID: 1, Name: "Alice"}},
		Expenses: []models.Expense{
			{ID: 7, Description: "Ghost dinner", Amount: 30, PaidBy: 2, SplitAmong: []int{1}},
		},
	}
	require.NoError(t, store.CreateGroup(ctx, group))

	plan, err := svc.SettleGroup(ctx, group.ID)
	assert.Nil(t, plan)
	require.ErrorIs(t, err, calculator.ErrInvalidGroup)

	var verr *calculator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 7, verr.ExpenseID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations().WithLabelValues(metrics.ResultInvalid)))
}

func TestSettleGroupNotFound(t *testing.T) {
	svc, _, m := setupGroupService(t)

	_, err := svc.SettleGroup(context.Background(), 5)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Zero(t, testutil.CollectAndCount(m.Computations()), "a missing group is not a computation")
}

func TestGroupBalances(t *testing.T) {
	svc, _, m := setupGroupService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Trip", []string{"Alice", "Bob"})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, group.ID, "Hotel", 200, 1, []int{1, 2})
	require.NoError(t, err)

	balances, err := svc.GroupBalances(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.InDelta(t, 100.0, balances[0].Net, 1e-9)
	assert.InDelta(t, -100.0, balances[1].Net, 1e-9)

	_, err = svc.GroupBalances(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.Zero(t, testutil.CollectAndCount(m.Computations()), "balances are not settlement computations")
}

func TestDeleteGroup(t *testing.T) {
	svc, _, _ := setupGroupService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Temporary", []string{"Alice"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(ctx, group.ID))
	_, err = svc.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteGroup(ctx, group.ID), storage.ErrNotFound)
}
