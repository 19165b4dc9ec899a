package model

import "math"

// Fruit is a single catalogue entry: a name plus three measured
// dimensions in centimeters.
type Fruit struct {
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Volume approximates the fruit as an ellipsoid spanned by its three
// dimensions. Derived value, never persisted.
func (f Fruit) Volume() float64 {
	return (4.0 / 3.0) * math.Pi * (f.Length / 2) * (f.Width / 2) * (f.Height / 2)
}

// DefaultCatalogue returns the starter list used when no catalogue file
// exists yet (or the existing one cannot be read).
func DefaultCatalogue() []Fruit {
	return []Fruit{
		{Name: "Apple", Length: 8.0, Width: 7.5, Height: 7.8},
		{Name: "Banana", Length: 19.0, Width: 3.5, Height: 3.2},
		{Name: "Cherry", Length: 2.1, Width: 2.0, Height: 2.0},
		{Name: "Mango", Length: 11.5, Width: 8.0, Height: 7.0},
		{Name: "Watermelon", Length: 30.0, Width: 22.0, Height: 22.0},
	}
}
