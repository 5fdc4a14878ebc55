// Package seed provides the users and employee records loaded at startup.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"employeeapi/internal/domain"
	"employeeapi/internal/platform/validation"
)

// Seed is the initial content of the credential and employee stores.
type Seed struct {
	Users     []domain.Credential `yaml:"users" validate:"required,min=1,dive"`
	Employees []domain.Employee   `yaml:"employees" validate:"dive"`
}

// Default returns the built-in seed. Note that user2 appears twice; lookups
// take the first matching entry.
func Default() Seed {
	return Seed{
		Users: []domain.Credential{
			{Username: "admin", Password: "Admin@123", Roles: []domain.Role{domain.RoleAdmin}},

			{Username: "hr1", Password: "Hr1@123", Roles: []domain.Role{domain.RoleHr}},
			{Username: "hr2", Password: "Hr2@123", Roles: []domain.Role{domain.RoleHr}},

			{Username: "user1", Password: "User1@123", Roles: []domain.Role{domain.RoleUser}},
			{Username: "user2", Password: "User2@123", Roles: []domain.Role{domain.RoleUser}},
			{Username: "user2", Password: "User2@123", Roles: []domain.Role{domain.RoleUser}},
		},
		Employees: []domain.Employee{
			{ID: 1, Name: "Shahid Kapoor", Department: "IT", Salary: 1200000},
			{ID: 2, Name: "Alia Bhat", Department: "Finance", Salary: 800000},
			{ID: 3, Name: "Ranveer Singh", Department: "Marketing", Salary: 700000},
			{ID: 4, Name: "Sara Ali Khan", Department: "HR", Salary: 900000},
			{ID: 5, Name: "Ranbir Kapoor", Department: "R&D", Salary: 1000000},
		},
	}
}

// Load reads a YAML seed file. An empty path returns Default().
func Load(path string) (Seed, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("reading seed file: %w", err)
	}
	s, err := Parse(bytes.NewReader(b))
	if err != nil {
		return Seed{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML seed document.
func Parse(r io.Reader) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Seed{}, errors.New("empty seed document")
		}
		return Seed{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := validation.New().Struct(s); err != nil {
		return Seed{}, err
	}
	seen := make(map[int]struct{}, len(s.Employees))
	for _, e := range s.Employees {
		if _, dup := seen[e.ID]; dup {
			return Seed{}, fmt.Errorf("duplicate employee id %d: %w", e.ID, domain.ErrConflict)
		}
		seen[e.ID] = struct{}{}
	}
	return s, nil
}
