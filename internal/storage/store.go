// Package storage provides abstractions for group storage.
package storage

import (
	"context"

	"github.com/mmynk/splitwiser/internal/models"
)

// Store defines the interface for group storage operations.
// This abstraction keeps the service layer independent of where
// groups live; implementations hand out copies, never shared state.
type Store interface {
	// CreateGroup persists a new group.
	// When group.ID is zero the store assigns the next free ID.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a snapshot of a group by its ID.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID int) (*models.Group, error)

	// ListGroups returns snapshots of all groups ordered by ID.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddMember appends a member to a group.
	// When member.ID is zero the store assigns the next free member ID.
	AddMember(ctx context.Context, groupID int, member *models.Member) error

	// AddExpense appends an expense to a group.
	// When expense.ID is zero the store assigns the next free expense ID.
	AddExpense(ctx context.Context, groupID int, expense *models.Expense) error

	// DeleteGroup removes a group by its ID.
	DeleteGroup(ctx context.Context, groupID int) error

	// Close releases any resources held by the store.
	Close() error
}
