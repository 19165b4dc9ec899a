package tui

import (
	"testing"

	"fruitcat/model"
)

func TestValidateEmptyName(t *testing.T) {
	form := newFruitForm()
	form.name = "   "
	form.length = "1"
	form.width = "2"
	form.height = "3"

	if _, err := form.validate(); err == nil {
		t.Fatalf("expected validation error for blank name")
	}
	if form.err != "name cannot be empty" {
		t.Fatalf("unexpected form error: %q", form.err)
	}
	if form.name != "   " || form.length != "1" {
		t.Fatalf("buffers must stay intact after a failed validate")
	}
}

func TestValidateReportsFirstBadFieldInOrder(t *testing.T) {
	form := newFruitForm()
	form.name = "Apple"
	form.length = "x"
	form.width = "y"
	form.height = "z"

	if _, err := form.validate(); err == nil || form.err != "length must be a valid number" {
		t.Fatalf("expected length error first, got %q", form.err)
	}

	form.length = "1"
	if _, err := form.validate(); err == nil || form.err != "width must be a valid number" {
		t.Fatalf("expected width error next, got %q", form.err)
	}

	form.width = "2"
	if _, err := form.validate(); err == nil || form.err != "height must be a valid number" {
		t.Fatalf("expected height error last, got %q", form.err)
	}
}

func TestValidateRejectsNonPositiveDimensions(t *testing.T) {
	form := newFruitForm()
	form.name = "Apple"
	form.length = "0"
	form.width = "2"
	form.height = "3"

	if _, err := form.validate(); err == nil || form.err != "dimensions must be positive" {
		t.Fatalf("expected positivity error, got %q", form.err)
	}
}

func TestValidateSuccessTrimsName(t *testing.T) {
	form := newFruitForm()
	form.name = "  Apple  "
	form.length = "1"
	form.width = "2.5"
	form.height = "3"

	fruit, err := form.validate()
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	want := model.Fruit{Name: "Apple", Length: 1, Width: 2.5, Height: 3}
	if fruit != want {
		t.Fatalf("built fruit mismatch\nwant=%+v\ngot=%+v", want, fruit)
	}
}

func TestInsertFiltersNumericFields(t *testing.T) {
	form := newFruitForm()
	form.focused = fieldLength
	form.insert("a1b.c2")

	if form.length != "1.2" {
		t.Fatalf("expected dropped letters, got %q", form.length)
	}

	form.focused = fieldName
	form.insert("Dragon fruit!")
	if form.name != "Dragon fruit!" {
		t.Fatalf("name field must accept any character, got %q", form.name)
	}
}

func TestInsertClearsStaleError(t *testing.T) {
	form := newFruitForm()
	form.focused = fieldLength
	form.err = "length must be a valid number"

	form.insert("x")
	if form.err == "" {
		t.Fatalf("a fully dropped insert must not clear the error")
	}

	form.insert("4")
	if form.err != "" {
		t.Fatalf("an accepted character must clear the error, got %q", form.err)
	}
}

func TestFieldCycling(t *testing.T) {
	form := newFruitForm()
	order := []inputField{fieldLength, fieldWidth, fieldHeight, fieldName}
	for _, want := range order {
		form.nextField()
		if form.focused != want {
			t.Fatalf("next cycle broke at %v, got %v", want, form.focused)
		}
	}

	form.prevField()
	if form.focused != fieldHeight {
		t.Fatalf("prev from name should wrap to height, got %v", form.focused)
	}
}

func TestBackspaceEditsFocusedBuffer(t *testing.T) {
	form := newFruitForm()
	form.insert("Pear")
	form.backspace()
	if form.name != "Pea" {
		t.Fatalf("expected backspace on name, got %q", form.name)
	}

	form.focused = fieldWidth
	form.backspace() // empty buffer, must not panic
	if form.width != "" {
		t.Fatalf("expected empty width, got %q", form.width)
	}
}

func TestFormFromFruitPrefillsBuffers(t *testing.T) {
	form := formFromFruit(model.Fruit{Name: "Banana", Length: 19, Width: 3.5, Height: 3.2})

	if form.name != "Banana" || form.length != "19" || form.width != "3.5" || form.height != "3.2" {
		t.Fatalf("prefill mismatch: %+v", form)
	}
	if form.focused != fieldName {
		t.Fatalf("prefilled form must start focused on name")
	}
}
