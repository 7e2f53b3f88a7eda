// Package units converts logged food quantities to kilograms.
package units

import (
	"errors"
	"math"
	"sort"
	"strings"
)

var (
	ErrInvalidUnit     = errors.New("unsupported unit")
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
)

// kilogramsPer holds how many kilograms one unit weighs. Volumes assume
// water density; servings and items are rough household averages.
var kilogramsPer = map[string]float64{
	"kg":       1,
	"g":        0.001,
	"mg":       0.000001,
	"lb":       0.453592,
	"lbs":      0.453592,
	"oz":       0.0283495,
	"l":        1,
	"ltr":      1,
	"ml":       0.001,
	"servings": 0.25,
	"items":    0.15,
}

// Normalize lower-cases and trims a unit name.
func Normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Names lists the accepted unit names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(kilogramsPer))
	for n := range kilogramsPer {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ToKilograms converts quantity of unit to kilograms.
func ToKilograms(quantity float64, unit string) (float64, error) {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0, ErrInvalidQuantity
	}
	f, ok := kilogramsPer[Normalize(unit)]
	if !ok {
		return 0, ErrInvalidUnit
	}
	return quantity * f, nil
}
