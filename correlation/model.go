// Package correlation implements correlation models for adjustable sensor
// model parameters.
//
// A correlation model partitions sensor model parameters into disjoint
// groups. The correlation coefficient between two parameters in the same
// group is a function of the elapsed time between the estimates being
// related; parameters in different groups are uncorrelated.
package correlation

// Unassigned marks a sensor model parameter that has not been assigned to
// any correlation parameter group.
const Unassigned = -1

// Model is the contract a correlation strategy exposes to a surrounding
// model-evaluation framework, which selects among strategies by their
// Format tag.
//
// Implementations are plain computations over configuration installed
// through SetGroup and strategy-specific setters. They provide no internal
// locking; callers must ensure no reader overlaps a writer.
type Model interface {
	// Format returns the fixed tag identifying the strategy.
	Format() string

	// ParameterCount returns the number of sensor model parameters.
	ParameterCount() int

	// GroupCount returns the number of correlation parameter groups.
	GroupCount() int

	// Group returns the group index assigned to the parameter, or
	// Unassigned. Fails with an IndexOutOfRange kind when the parameter
	// index is outside [0, ParameterCount()).
	Group(smParamIndex int) (int, error)

	// SetGroup assigns the parameter to the group, overwriting any prior
	// assignment. Fails with an IndexOutOfRange kind when either index is
	// outside its valid range.
	SetGroup(smParamIndex, groupIndex int) error

	// Coefficient returns the correlation coefficient, in [0, 1], between
	// parameters of the group for estimates separated by deltaTime. Only
	// the magnitude of deltaTime matters.
	Coefficient(groupIndex int, deltaTime float64) (float64, error)
}
