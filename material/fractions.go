package material

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/quantity"
)

// NormaliseFractions makes the volume fractions consistent with the ordered fluid list.
// Every fluid but the last takes its given fraction (zero if absent). The last one is
// 1 minus the others when multiphase is set and is left out otherwise, since a two-phase
// VOF solver only tracks the first phase. The owner names the record being processed
// and appears in any error.
func NormaliseFractions(owner string, fluids []Properties, given map[string]quantity.Quantity,
	multiphase bool) (alphas map[string]float64, err error) {
	var (
		n      = len(fluids)
		values = make([]float64, 0, n)
	)
	alphas = make(map[string]float64, n)
	for i, f := range fluids {
		if i == n-1 {
			if multiphase {
				alphas[f.Name] = 1 - floats.Sum(values)
			}
			break
		}
		var alpha float64
		if alpha, err = given[f.Name].AsOr("", 0); err != nil {
			return nil, caseerr.Validationf(owner, "volume fraction of %s: %v", f.Name, err)
		}
		alphas[f.Name] = alpha
		values = append(values, alpha)
	}
	return
}

// FractionsAsQuantities turns normalised fractions back into input form.
func FractionsAsQuantities(alphas map[string]float64) (q map[string]quantity.Quantity) {
	q = make(map[string]quantity.Quantity, len(alphas))
	for name, a := range alphas {
		q[name] = quantity.Dimensionless(a)
	}
	return
}

// CheckFractionNames reports fractions keyed by a name that is not one of the fluids.
func CheckFractionNames(owner string, fluids []Properties, given map[string]quantity.Quantity) error {
	known := make(map[string]bool, len(fluids))
	for _, f := range fluids {
		known[f.Name] = true
	}
	for name := range given {
		if !known[name] {
			return caseerr.Validationf(owner, "volume fraction given for unknown fluid %q", name)
		}
	}
	return nil
}
