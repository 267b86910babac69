// Package seed loads group snapshots into a store.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/splitwiser/internal/models"
	"github.com/mmynk/splitwiser/internal/storage"
)

// document is the top-level shape of a seed file.
type document struct {
	Groups []models.Group `yaml:"groups"`
}

// SampleGroups returns the groups shown on first launch.
func SampleGroups() []models.Group {
	members := []models.Member{
		{ID: 1, Name: "Hemanth"},
		{ID: 2, Name: "Shreekar"},
		{ID: 3, Name: "Vedantha"},
	}
	return []models.Group{
		{
			ID:      1,
			Name:    "Absolute Brilliance",
			Members: members,
			Expenses: []models.Expense{
				{
					ID:          101,
					Description: "Lunch",
					Amount:      1200.0,
					PaidBy:      1,
					SplitAmong:  []int{1, 2, 3},
				},
			},
		},
		{
			ID:      2,
			Name:    "Hampi Trip",
			Members: append([]models.Member(nil), members[:2]...),
		},
	}
}

// Decode reads groups from a YAML document of the form:
//
//	groups:
//	  - id: 1
//	    name: Roommates
//	    members:
//	      - {id: 1, name: Alice}
//	    expenses:
//	      - {id: 1, description: Rent, amount: 900, paid_by: 1, split_among: [1]}
func Decode(r io.Reader) ([]models.Group, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode seed document: %w", err)
	}
	return doc.Groups, nil
}

// LoadFile decodes the seed document at path.
func LoadFile(path string) ([]models.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file '%s': %w", path, err)
	}
	defer f.Close()

	groups, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("seed file '%s': %w", path, err)
	}
	return groups, nil
}

// Encode writes groups as a document Decode accepts.
func Encode(w io.Writer, groups []models.Group) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Groups: groups}); err != nil {
		return fmt.Errorf("failed to encode seed document: %w", err)
	}
	return enc.Close()
}

// SaveFile replaces the seed document at path with groups. The document is
// written to a temporary file first so a failed write leaves the old one.
func SaveFile(path string, groups []models.Group) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create seed file '%s': %w", path, err)
	}
	defer os.Remove(f.Name())

	if err := Encode(f, groups); err != nil {
		f.Close()
		return fmt.Errorf("seed file '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write seed file '%s': %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to replace seed file '%s': %w", path, err)
	}
	return nil
}

// Apply creates every group in the store, stopping at the first failure.
func Apply(ctx context.Context, store storage.Store, groups []models.Group) error {
	for i := range groups {
		group := groups[i].Clone()
		if err := store.CreateGroup(ctx, group); err != nil {
			return fmt.Errorf("failed to seed group %q: %w", groups[i].Name, err)
		}
		slog.Debug("Seeded group", "group_id", group.ID, "name", group.Name)
	}
	return nil
}
