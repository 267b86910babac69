// Package models defines the core domain models for Splitwiser.
//
// # Models
//
//   - Member: a person inside a group, identified by an integer ID
//   - Expense: an amount paid by one member and split among several
//   - Group: an ordered list of members and the expenses they share
//   - Settlement: a derived transfer that clears part of a debt
//   - MemberBalance: a derived per-member view of paid, owed and net amounts
//
// # Design Principles
//
// 1. **Snapshots**: groups are plain values; the calculator never mutates them
// 2. **Avoid circular references**: expenses point at members by ID, not pointer
// 3. **Derived data is not stored**: settlements and balances are recomputed on demand
package models
