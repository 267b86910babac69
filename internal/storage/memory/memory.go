// Package memory provides an in-memory implementation of the storage.Store interface.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mmynk/splitwiser/internal/models"
	"github.com/mmynk/splitwiser/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with a map guarded by a RWMutex.
// Groups are copied on the way in and on the way out.
type MemoryStore struct {
	mu     sync.RWMutex
	groups map[int]*models.Group
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{groups: make(map[int]*models.Group)}
}

// Close drops all groups.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = make(map[int]*models.Group)
	return nil
}

// CreateGroup stores a copy of the group.
// New groups get ID = max(existing IDs) + 1, like the app's group list did.
// Expenses without an ID are numbered the same way, in slice order.
func (s *MemoryStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(group.Name) == "" {
		return fmt.Errorf("group name cannot be blank: %w", storage.ErrInvalidInput)
	}
	if err := checkUniqueIDs(group); err != nil {
		return err
	}
	assignExpenseIDs(group.Expenses)

	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == 0 {
		group.ID = s.nextGroupID()
	} else if _, exists := s.groups[group.ID]; exists {
		return fmt.Errorf("group %d already exists: %w", group.ID, storage.ErrInvalidInput)
	}

	s.groups[group.ID] = group.Clone()
	return nil
}

// GetGroup returns a copy of the group.
func (s *MemoryStore) GetGroup(ctx context.Context, groupID int) (*models.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	return group.Clone(), nil
}

// ListGroups returns copies of all groups ordered by ID.
func (s *MemoryStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*models.Group, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, group.Clone())
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

// AddMember appends a member to the group.
func (s *MemoryStore) AddMember(ctx context.Context, groupID int, member *models.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}

	if member.ID == 0 {
		for _, m := range group.Members {
			member.ID = max(member.ID, m.ID)
		}
		member.ID++
	} else if _, exists := group.FindMember(member.ID); exists {
		return fmt.Errorf("member %d already in group %d: %w", member.ID, groupID, storage.ErrInvalidInput)
	}

	group.Members = append(group.Members, *member)
	return nil
}

// AddExpense appends an expense to the group.
// Referential checks against the member list are the caller's job.
func (s *MemoryStore) AddExpense(ctx context.Context, groupID int, expense *models.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}

	if expense.ID == 0 {
		for _, e := range group.Expenses {
			expense.ID = max(expense.ID, e.ID)
		}
		expense.ID++
	} else {
		for _, e := range group.Expenses {
			if e.ID == expense.ID {
				return fmt.Errorf("expense %d already in group %d: %w", expense.ID, groupID, storage.ErrInvalidInput)
			}
		}
	}

	group.Expenses = append(group.Expenses, expense.Clone())
	return nil
}

// DeleteGroup removes the group.
func (s *MemoryStore) DeleteGroup(ctx context.Context, groupID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[groupID]; !ok {
		return fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	delete(s.groups, groupID)
	return nil
}

// nextGroupID must be called with s.mu held.
func (s *MemoryStore) nextGroupID() int {
	next := 0
	for id := range s.groups {
		next = max(next, id)
	}
	return next + 1
}

func checkUniqueIDs(group *models.Group) error {
	members := make(map[int]bool, len(group.Members))
	for _, m := range group.Members {
		if members[m.ID] {
			return fmt.Errorf("duplicate member id %d: %w", m.ID, storage.ErrInvalidInput)
		}
		members[m.ID] = true
	}
	expenses := make(map[int]bool, len(group.Expenses))
	for _, e := range group.Expenses {
		if e.ID == 0 {
			continue
		}
		if expenses[e.ID] {
			return fmt.Errorf("duplicate expense id %d: %w", e.ID, storage.ErrInvalidInput)
		}
		expenses[e.ID] = true
	}
	return nil
}

// assignExpenseIDs gives every expense with ID 0 the next ID after the
// highest one in the slice.
func assignExpenseIDs(expenses []models.Expense) {
	next := 0
	for _, e := range expenses {
		next = max(next, e.ID)
	}
	for i := range expenses {
		if expenses[i].ID == 0 {
			next++
			expenses[i].ID = next
		}
	}
}
