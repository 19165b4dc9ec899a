package app

import (
	"errors"
	"reflect"
	"testing"

	"fruitcat/model"
)

func sampleFruits() []model.Fruit {
	return []model.Fruit{
		{Name: "Apple", Length: 8, Width: 7.5, Height: 7.8},
		{Name: "Banana", Length: 19, Width: 3.5, Height: 3.2},
		{Name: "Cherry", Length: 2.1, Width: 2, Height: 2},
		{Name: "Pineapple", Length: 28, Width: 12, Height: 12},
	}
}

func namesOf(fruits []model.Fruit) []string {
	out := make([]string, 0, len(fruits))
	for _, f := range fruits {
		out = append(out, f.Name)
	}
	return out
}

func TestSelectionMovesAndClampsAtBoundaries(t *testing.T) {
	svc := NewService(sampleFruits())

	if got := svc.SelectedIndex(); got != 0 {
		t.Fatalf("expected initial selection 0, got %d", got)
	}

	// At the top, select previous is idempotent.
	svc.SelectPrevious()
	if got := svc.SelectedIndex(); got != 0 {
		t.Fatalf("expected clamped selection 0, got %d", got)
	}

	svc.SelectNext()
	svc.SelectPrevious()
	if got := svc.SelectedIndex(); got != 0 {
		t.Fatalf("expected next+previous to restore selection, got %d", got)
	}

	for i := 0; i < 10; i++ {
		svc.SelectNext()
	}
	if got := svc.SelectedIndex(); got != svc.Len()-1 {
		t.Fatalf("expected selection clamped at %d, got %d", svc.Len()-1, got)
	}
}

func TestSelectionNoopOnEmptyCatalogue(t *testing.T) {
	svc := NewService(nil)

	svc.SelectNext()
	svc.SelectPrevious()
	if got := svc.SelectedIndex(); got != 0 {
		t.Fatalf("expected selection to stay at 0 on empty catalogue, got %d", got)
	}
	if _, ok := svc.SelectedFruit(); ok {
		t.Fatalf("expected no selected fruit on empty catalogue")
	}
	if _, ok := svc.SelectedFruitIndex(); ok {
		t.Fatalf("expected no selected index on empty catalogue")
	}
}

func TestUpdateFilterMatchesCaseInsensitiveSubstring(t *testing.T) {
	svc := NewService(sampleFruits())

	svc.UpdateFilter("APPLE")
	got := namesOf(svc.DisplayFruits())
	want := []string{"Apple", "Pineapple"}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("unexpected filtered view\nwant=%v\ngot=%v", want, got)
	}
	if got := svc.SelectedIndex(); got != 0 {
		t.Fatalf("expected filter to reset selection to 0, got %d", got)
	}
	if !svc.IsFiltering() {
		t.Fatalf("expected filtering to be active")
	}
	if q := svc.FilterQuery(); q != "apple" {
		t.Fatalf("expected stored query lowercased, got %q", q)
	}

	svc.ClearFilter()
	if !reflect.DeepEqual(namesOf(sampleFruits()), namesOf(svc.DisplayFruits())) {
		t.Fatalf("expected clear filter to restore full list, got %v", namesOf(svc.DisplayFruits()))
	}
}

func TestFilteredSelectionResolvesToAbsoluteIndex(t *testing.T) {
	svc := NewService(sampleFruits())

	svc.UpdateFilter("apple")
	svc.SelectNext() // view index 1 -> Pineapple, absolute index 3

	fruit, ok := svc.SelectedFruit()
	if !ok || fruit.Name != "Pineapple" {
		t.Fatalf("expected Pineapple selected, got %+v ok=%v", fruit, ok)
	}
	idx, ok := svc.SelectedFruitIndex()
	if !ok || idx != 3 {
		t.Fatalf("expected absolute index 3, got %d ok=%v", idx, ok)
	}
}

func TestFilterWithNoMatchesHasNoSelection(t *testing.T) {
	svc := NewService(sampleFruits())

	svc.UpdateFilter("durian")
	if got := svc.DisplayLen(); got != 0 {
		t.Fatalf("expected empty display list, got %d", got)
	}
	if _, ok := svc.SelectedFruit(); ok {
		t.Fatalf("expected no selection when nothing matches")
	}
}

func TestAddThenDeleteRestoresContentAndSetsDirty(t *testing.T) {
	original := sampleFruits()
	svc := NewService(original)

	if svc.Dirty() {
		t.Fatalf("expected clean service before mutations")
	}

	svc.AddFruit(model.Fruit{Name: "Kiwi", Length: 6, Width: 5, Height: 5})
	if !svc.Dirty() {
		t.Fatalf("expected dirty after add")
	}
	if got := svc.Len(); got != len(original)+1 {
		t.Fatalf("expected %d fruits after add, got %d", len(original)+1, got)
	}

	if err := svc.DeleteFruit(len(original)); err != nil {
		t.Fatalf("delete new fruit failed: %v", err)
	}
	if !reflect.DeepEqual(original, svc.Fruits()) {
		t.Fatalf("expected original content restored\nwant=%+v\ngot=%+v", original, svc.Fruits())
	}
	if !svc.Dirty() {
		t.Fatalf("expected dirty to stay set throughout")
	}
}

func TestUpdateFruitReplacesAtAbsoluteIndex(t *testing.T) {
	svc := NewService(sampleFruits())

	updated := model.Fruit{Name: "Green Apple", Length: 7, Width: 7, Height: 7}
	if err := svc.UpdateFruit(0, updated); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := svc.Fruits()[0]; !reflect.DeepEqual(updated, got) {
		t.Fatalf("expected updated fruit at index 0, got %+v", got)
	}
	if !svc.Dirty() {
		t.Fatalf("expected dirty after update")
	}
}

func TestOutOfRangeIndexFailsWithoutMutation(t *testing.T) {
	original := sampleFruits()
	svc := NewService(original)

	if err := svc.UpdateFruit(len(original), model.Fruit{Name: "X", Length: 1, Width: 1, Height: 1}); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex from update, got %v", err)
	}
	if err := svc.DeleteFruit(-1); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex from delete, got %v", err)
	}
	if err := svc.DeleteFruit(len(original)); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex from delete past end, got %v", err)
	}

	if svc.Dirty() {
		t.Fatalf("expected dirty untouched by failed operations")
	}
	if !reflect.DeepEqual(original, svc.Fruits()) {
		t.Fatalf("expected records untouched by failed operations")
	}
}

func TestDeleteClampsSelectionToNewEnd(t *testing.T) {
	svc := NewService(sampleFruits())

	for i := 0; i < svc.Len(); i++ {
		svc.SelectNext()
	}
	last := svc.Len() - 1
	if got := svc.SelectedIndex(); got != last {
		t.Fatalf("expected selection at last entry %d, got %d", last, got)
	}

	if err := svc.DeleteFruit(last); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := svc.SelectedIndex(); got != svc.Len()-1 {
		t.Fatalf("expected selection clamped to %d, got %d", svc.Len()-1, got)
	}
}

func TestDeleteUnderActiveFilterRefreshesIndices(t *testing.T) {
	svc := NewService(sampleFruits())

	svc.UpdateFilter("apple") // Apple (0), Pineapple (3)
	idx, ok := svc.SelectedFruitIndex()
	if !ok {
		t.Fatalf("expected a selection under filter")
	}
	if err := svc.DeleteFruit(idx); err != nil {
		t.Fatalf("delete under filter failed: %v", err)
	}

	got := namesOf(svc.DisplayFruits())
	if !reflect.DeepEqual([]string{"Pineapple"}, got) {
		t.Fatalf("expected filtered view recomputed after delete, got %v", got)
	}
	fruit, ok := svc.SelectedFruit()
	if !ok || fruit.Name != "Pineapple" {
		t.Fatalf("expected selection to land on remaining match, got %+v ok=%v", fruit, ok)
	}
}

func TestStatusSlot(t *testing.T) {
	svc := NewService(nil)

	svc.SetError("boom")
	msg, isErr := svc.Status()
	if msg != "boom" || !isErr {
		t.Fatalf("expected error status, got %q err=%v", msg, isErr)
	}

	svc.SetStatus("saved")
	msg, isErr = svc.Status()
	if msg != "saved" || isErr {
		t.Fatalf("expected info status, got %q err=%v", msg, isErr)
	}

	svc.ClearStatus()
	if svc.HasStatus() {
		t.Fatalf("expected empty status after clear")
	}
}
