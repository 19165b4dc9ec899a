package tui

import (
	"errors"
	"strconv"
	"strings"

	"fruitcat/model"
)

type inputField int

const (
	fieldName inputField = iota
	fieldLength
	fieldWidth
	fieldHeight
)

func (f inputField) next() inputField {
	switch f {
	case fieldName:
		return fieldLength
	case fieldLength:
		return fieldWidth
	case fieldWidth:
		return fieldHeight
	default:
		return fieldName
	}
}

func (f inputField) prev() inputField {
	switch f {
	case fieldName:
		return fieldHeight
	case fieldLength:
		return fieldName
	case fieldWidth:
		return fieldLength
	default:
		return fieldWidth
	}
}

func (f inputField) label() string {
	switch f {
	case fieldLength:
		return "Length"
	case fieldWidth:
		return "Width"
	case fieldHeight:
		return "Height"
	default:
		return "Name"
	}
}

// fruitForm is the add/edit modal. The four buffers hold raw keystrokes;
// nothing is parsed until validate is called.
type fruitForm struct {
	name   string
	length string
	width  string
	height string

	focused inputField
	err     string
}

func newFruitForm() *fruitForm {
	return &fruitForm{focused: fieldName}
}

func formFromFruit(f model.Fruit) *fruitForm {
	return &fruitForm{
		name:    f.Name,
		length:  formatDimension(f.Length),
		width:   formatDimension(f.Width),
		height:  formatDimension(f.Height),
		focused: fieldName,
	}
}

func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f *fruitForm) nextField() {
	f.focused = f.focused.next()
}

func (f *fruitForm) prevField() {
	f.focused = f.focused.prev()
}

// insert appends text to the focused buffer. The numeric fields accept
// only ASCII digits and '.'; other characters are dropped without any
// feedback. Each accepted character clears a stale validation message.
func (f *fruitForm) insert(text string) {
	buf := f.buffer(f.focused)
	for _, r := range text {
		if f.focused != fieldName && !isNumericRune(r) {
			continue
		}
		*buf += string(r)
		f.err = ""
	}
}

func (f *fruitForm) backspace() {
	buf := f.buffer(f.focused)
	*buf = trimLastRune(*buf)
}

func (f *fruitForm) buffer(field inputField) *string {
	switch field {
	case fieldLength:
		return &f.length
	case fieldWidth:
		return &f.width
	case fieldHeight:
		return &f.height
	default:
		return &f.name
	}
}

func isNumericRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// validate parses the buffers into a fruit. Field checks run in a fixed
// order (name, length, width, height) and stop at the first failure; the
// positivity check runs only after all three dimensions parse. On failure
// the form's err holds the same message the caller receives and every
// buffer is left intact.
func (f *fruitForm) validate() (model.Fruit, error) {
	name := strings.TrimSpace(f.name)
	if name == "" {
		return model.Fruit{}, f.fail("name cannot be empty")
	}

	length, err := strconv.ParseFloat(f.length, 64)
	if err != nil {
		return model.Fruit{}, f.fail("length must be a valid number")
	}
	width, err := strconv.ParseFloat(f.width, 64)
	if err != nil {
		return model.Fruit{}, f.fail("width must be a valid number")
	}
	height, err := strconv.ParseFloat(f.height, 64)
	if err != nil {
		return model.Fruit{}, f.fail("height must be a valid number")
	}

	if length <= 0 || width <= 0 || height <= 0 {
		return model.Fruit{}, f.fail("dimensions must be positive")
	}

	return model.Fruit{Name: name, Length: length, Width: width, Height: height}, nil
}

func (f *fruitForm) fail(msg string) error {
	f.err = msg
	return errors.New(msg)
}
