package correlation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ihumphrey-usgs/csm"
)

// Matrix returns the full parameter-by-parameter correlation matrix of the
// model at the given time separation. The diagonal is 1. Two distinct
// parameters correlate by their group's coefficient when they share a
// group and by 0 when they do not; an unassigned parameter correlates only
// with itself.
func Matrix(m Model, deltaTime float64) (*mat.SymDense, error) {
	const op = "correlation.Matrix"

	n := m.ParameterCount()
	if n == 0 {
		return nil, csm.NewError(csm.ErrorBounds,
			"model has no sensor model parameters", op)
	}

	groups := make([]int, n)
	for i := 0; i < n; i++ {
		g, err := m.Group(i)
		if err != nil {
			return nil, err
		}
		groups[i] = g
	}

	// One coefficient per group at this separation; evaluated lazily so a
	// group with at most one member never needs a curve.
	coeffs := make([]float64, m.GroupCount())
	have := make([]bool, m.GroupCount())

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetSym(i, i, 1.0)
		for j := i + 1; j < n; j++ {
			if groups[i] == Unassigned || groups[i] != groups[j] {
				continue
			}
			g := groups[i]
			if !have[g] {
				c, err := m.Coefficient(g, deltaTime)
				if err != nil {
					return nil, err
				}
				coeffs[g] = c
				have[g] = true
			}
			out.SetSym(i, j, coeffs[g])
		}
	}
	return out, nil
}
