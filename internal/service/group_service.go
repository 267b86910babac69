package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitwiser/internal/calculator"
	"github.com/mmynk/splitwiser/internal/metrics"
	"github.com/mmynk/splitwiser/internal/models"
	"github.com/mmynk/splitwiser/internal/storage"
)

// ErrInvalidArgument is returned for requests rejected before reaching storage.
var ErrInvalidArgument = errors.New("invalid argument")

// GroupService manages groups and computes how their members settle up.
type GroupService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, m *metrics.Metrics) *GroupService {
	return &GroupService{store: store, metrics: m}
}

// Plan is the outcome of settling a group.
type Plan struct {
	// ID correlates the plan with its log lines.
	ID          string
	Group       *models.Group
	Balances    []models.MemberBalance
	Settlements []models.Settlement
}

// CreateGroup creates a new group with the given member names.
// Members are numbered from 1 in the order given.
func (s *GroupService) CreateGroup(ctx context.Context, name string, memberNames []string) (*models.Group, error) {
	slog.Info("CreateGroup request received",
		"name", name,
		"members_count", len(memberNames),
	)

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("group name required: %w", ErrInvalidArgument)
	}

	group := &models.Group{Name: strings.TrimSpace(name)}
	for i, memberName := range memberNames {
		if strings.TrimSpace(memberName) == "" {
			return nil, fmt.Errorf("member name required: %w", ErrInvalidArgument)
		}
		group.Members = append(group.Members, models.Member{ID: i + 1, Name: strings.TrimSpace(memberName)})
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID int) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	slog.Debug("ListGroups successful", "count", len(groups))
	return groups, nil
}

// DeleteGroup removes a group and its expenses.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID int) error {
	slog.Info("DeleteGroup request received", "group_id", groupID)

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return fmt.Errorf("failed to delete group: %w", err)
	}

	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// AddMember adds a new member to a group.
func (s *GroupService) AddMember(ctx context.Context, groupID int, name string) (*models.Member, error) {
	slog.Info("AddMember request received", "group_id", groupID, "name", name)

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("member name required: %w", ErrInvalidArgument)
	}

	member := &models.Member{Name: strings.TrimSpace(name)}
	if err := s.store.AddMember(ctx, groupID, member); err != nil {
		slog.Error("AddMember failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	slog.Info("Member added", "group_id", groupID, "member_id", member.ID)
	return member, nil
}

// AddExpense records an expense paid by paidBy and split equally among splitAmong.
// The expense is checked against the group's current members before it is stored.
func (s *GroupService) AddExpense(ctx context.Context, groupID int, description string, amount float64, paidBy int, splitAmong []int) (*models.Expense, error) {
	slog.Info("AddExpense request received",
		"group_id", groupID,
		"description", description,
		"amount", amount,
		"paid_by", paidBy,
		"split_among", splitAmong,
	)

	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("expense description required: %w", ErrInvalidArgument)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("AddExpense failed - group not found", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	expense := &models.Expense{
		Description: strings.TrimSpace(description),
		Amount:      amount,
		PaidBy:      paidBy,
		SplitAmong:  append([]int(nil), splitAmong...),
	}
	if err := calculator.ValidateExpense(group.Members, *expense); err != nil {
		var verr *calculator.ValidationError
		if errors.As(err, &verr) {
			verr.GroupID = groupID
		}
		slog.Warn("AddExpense rejected", "group_id", groupID, "error", err)
		return nil, err
	}

	if err := s.store.AddExpense(ctx, groupID, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	slog.Info("Expense added", "group_id", groupID, "expense_id", expense.ID)
	return expense, nil
}

// GroupBalances returns what each member paid, owes and is owed.
// Only SettleGroup counts as a settlement computation in metrics.
func (s *GroupService) GroupBalances(ctx context.Context, groupID int) ([]models.MemberBalance, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("GroupBalances failed - group not found", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	balances, err := calculator.ComputeBalances(*group)
	if err != nil {
		slog.Warn("GroupBalances failed - invalid group", "group_id", groupID, "error", err)
		return nil, err
	}
	return balances, nil
}

// SettleGroup computes the balance view and the transfers that settle a group.
func (s *GroupService) SettleGroup(ctx context.Context, groupID int) (*Plan, error) {
	planID := uuid.NewString()
	slog.Info("SettleGroup request received", "group_id", groupID, "plan_id", planID)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("SettleGroup failed - group not found", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	start := time.Now()
	result, err := calculator.Plan(*group)
	if err != nil {
		if errors.Is(err, calculator.ErrInvalidGroup) {
			s.metrics.ObserveFailure(metrics.ResultInvalid)
		} else {
			s.metrics.ObserveFailure(metrics.ResultError)
		}
		slog.Warn("SettleGroup failed - calculation error", "group_id", groupID, "plan_id", planID, "error", err)
		return nil, err
	}
	s.metrics.ObserveSettlement(len(result.Settlements), time.Since(start))

	slog.Info("SettleGroup successful",
		"group_id", groupID,
		"plan_id", planID,
		"expenses_count", len(group.Expenses),
		"members_count", len(group.Members),
		"settlements_count", len(result.Settlements),
	)

	return &Plan{
		ID:          planID,
		Group:       group,
		Balances:    result.Balances,
		Settlements: result.Settlements,
	}, nil
}
