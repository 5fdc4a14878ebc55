package inmem

import (
	"fmt"
	"slices"
	"sync"

	"employeeapi/internal/domain"
)

// EmployeeStore keeps employee records in insertion order.
type EmployeeStore struct {
	mu        sync.RWMutex
	employees []domain.Employee
}

// NewEmployeeStore returns a store holding a copy of seed.
func NewEmployeeStore(seed []domain.Employee) *EmployeeStore {
	return &EmployeeStore{employees: slices.Clone(seed)}
}

// List returns a snapshot of all records.
func (s *EmployeeStore) List() []domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.employees)
	if out == nil {
		out = []domain.Employee{}
	}
	return out
}

func (s *EmployeeStore) Get(id int) (domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Employee{}, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	return s.employees[i], nil
}

// Create appends e. A zero ID is replaced with one past the highest ID in use.
func (s *EmployeeStore) Create(e domain.Employee) (domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.nextID()
	} else if s.indexOf(e.ID) >= 0 {
		return domain.Employee{}, fmt.Errorf("employee %d: %w", e.ID, domain.ErrConflict)
	}
	s.employees = append(s.employees, e)
	return e, nil
}

// Update replaces the record with the given id. The id in e is ignored.
func (s *EmployeeStore) Update(id int, e domain.Employee) (domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Employee{}, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	e.ID = id
	s.employees[i] = e
	return e, nil
}

// Delete removes exactly one record.
func (s *EmployeeStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	s.employees = slices.Delete(s.employees, i, i+1)
	return nil
}

func (s *EmployeeStore) indexOf(id int) int {
	return slices.IndexFunc(s.employees, func(e domain.Employee) bool { return e.ID == id })
}

func (s *EmployeeStore) nextID() int {
	highest := 0
	for _, e := range s.employees {
		highest = max(highest, e.ID)
	}
	return highest + 1
}
