package app

import (
	"errors"
	"fmt"
	"strings"

	"fruitcat/model"
)

var ErrInvalidIndex = errors.New("fruit index out of range")

// Service holds the catalogue and all selection/filter bookkeeping.
// The selection index always points into the displayed list, which is
// the filtered view while a filter query is active.
type Service struct {
	fruits          []model.Fruit
	selected        int
	filterQuery     string
	filteredIndices []int
	dirty           bool

	status    string
	statusErr bool
}

// NewService creates a service owning a copy of the provided fruits.
func NewService(fruits []model.Fruit) *Service {
	owned := make([]model.Fruit, len(fruits))
	copy(owned, fruits)

	s := &Service{fruits: owned}
	s.filteredIndices = identityIndices(len(owned))
	return s
}

// Fruits returns the full backing list as a copy, in insertion order.
func (s *Service) Fruits() []model.Fruit {
	out := make([]model.Fruit, len(s.fruits))
	copy(out, s.fruits)
	return out
}

func (s *Service) Len() int {
	return len(s.fruits)
}

// IsFiltering reports whether a filter query is active.
func (s *Service) IsFiltering() bool {
	return s.filterQuery != ""
}

func (s *Service) FilterQuery() string {
	return s.filterQuery
}

func (s *Service) Dirty() bool {
	return s.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (s *Service) MarkSaved() {
	s.dirty = false
}

// DisplayFruits returns the list currently shown: all fruits, or the
// filtered subset in original order.
func (s *Service) DisplayFruits() []model.Fruit {
	if !s.IsFiltering() {
		return s.Fruits()
	}
	out := make([]model.Fruit, 0, len(s.filteredIndices))
	for _, i := range s.filteredIndices {
		out = append(out, s.fruits[i])
	}
	return out
}

// DisplayLen returns the length of the displayed list.
func (s *Service) DisplayLen() int {
	if s.IsFiltering() {
		return len(s.filteredIndices)
	}
	return len(s.fruits)
}

// SelectedIndex returns the view index into the displayed list.
func (s *Service) SelectedIndex() int {
	return s.selected
}

// SelectPrevious moves the selection up one entry, clamped at the top.
func (s *Service) SelectPrevious() {
	if s.DisplayLen() > 0 && s.selected > 0 {
		s.selected--
	}
}

// SelectNext moves the selection down one entry, clamped at the bottom.
func (s *Service) SelectNext() {
	if n := s.DisplayLen(); n > 0 && s.selected < n-1 {
		s.selected++
	}
}

// SelectedFruit resolves the current visual selection to a fruit.
func (s *Service) SelectedFruit() (model.Fruit, bool) {
	idx, ok := s.SelectedFruitIndex()
	if !ok {
		return model.Fruit{}, false
	}
	return s.fruits[idx], true
}

// SelectedFruitIndex resolves the view selection to an absolute index
// into the backing list. This is the single place where the view index
// space is translated to the record index space.
func (s *Service) SelectedFruitIndex() (int, bool) {
	if s.DisplayLen() == 0 {
		return 0, false
	}
	if !s.IsFiltering() {
		return s.selected, true
	}
	if s.selected < 0 || s.selected >= len(s.filteredIndices) {
		return 0, false
	}
	return s.filteredIndices[s.selected], true
}

// UpdateFilter lowercases and stores the query, recomputes the matching
// indices with a linear scan, and resets the selection to the top.
func (s *Service) UpdateFilter(query string) {
	s.filterQuery = strings.ToLower(query)
	s.refreshFilter()
	s.selected = 0
}

// ClearFilter removes the query and restores the full display list.
func (s *Service) ClearFilter() {
	s.filterQuery = ""
	s.filteredIndices = identityIndices(len(s.fruits))
	s.clampSelection()
}

// AddFruit appends a fruit to the catalogue. Never fails.
func (s *Service) AddFruit(fruit model.Fruit) {
	s.fruits = append(s.fruits, fruit)
	s.dirty = true
	s.refreshFilter()
}

// UpdateFruit replaces the fruit at an absolute index.
func (s *Service) UpdateFruit(index int, fruit model.Fruit) error {
	if index < 0 || index >= len(s.fruits) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	s.fruits[index] = fruit
	s.dirty = true
	s.refreshFilter()
	return nil
}

// DeleteFruit removes the fruit at an absolute index and keeps the
// selection on a valid entry of the remaining displayed list.
func (s *Service) DeleteFruit(index int) error {
	if index < 0 || index >= len(s.fruits) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	s.fruits = append(s.fruits[:index], s.fruits[index+1:]...)
	s.dirty = true
	s.refreshFilter()
	s.clampSelection()
	return nil
}

// SetError stores an error message in the single status slot.
func (s *Service) SetError(msg string) {
	s.status = msg
	s.statusErr = true
}

// SetStatus stores a transient informational message.
func (s *Service) SetStatus(msg string) {
	s.status = msg
	s.statusErr = false
}

// ClearStatus empties the status slot.
func (s *Service) ClearStatus() {
	s.status = ""
	s.statusErr = false
}

// Status returns the current message and whether it is an error.
func (s *Service) Status() (string, bool) {
	return s.status, s.statusErr
}

func (s *Service) HasStatus() bool {
	return s.status != ""
}

// refreshFilter recomputes filteredIndices from the current query so the
// filtered view never holds stale indices after a records mutation.
func (s *Service) refreshFilter() {
	if !s.IsFiltering() {
		s.filteredIndices = identityIndices(len(s.fruits))
		return
	}
	indices := make([]int, 0, len(s.fruits))
	for i, f := range s.fruits {
		if strings.Contains(strings.ToLower(f.Name), s.filterQuery) {
			indices = append(indices, i)
		}
	}
	s.filteredIndices = indices
}

func (s *Service) clampSelection() {
	n := s.DisplayLen()
	if n == 0 {
		s.selected = 0
		return
	}
	if s.selected >= n {
		s.selected = n - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func identityIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
