package correlation

import (
	"math"

	"github.com/ihumphrey-usgs/csm"
)

// FormatLinearDecay identifies the linear-decay correlation strategy.
const FormatLinearDecay = "linear-decay"

// Curve is the piecewise-linear decay curve of one correlation parameter
// group: correlation values at non-decreasing elapsed-time breakpoints.
// Between breakpoints the correlation is interpolated linearly in time;
// before the first breakpoint it holds the first value and beyond the last
// breakpoint it holds the last value.
type Curve struct {
	Correlations []float64
	Times        []float64
}

// Defined reports whether the curve has at least one breakpoint.
func (c Curve) Defined() bool {
	return len(c.Correlations) > 0
}

func (c Curve) clone() Curve {
	return Curve{
		Correlations: append([]float64(nil), c.Correlations...),
		Times:        append([]float64(nil), c.Times...),
	}
}

// LinearDecayModel computes time-decaying correlation between adjustable
// sensor model parameters. Each group carries its own decay curve; the
// coefficient between parameters of different groups is 0.
//
// Both sizes are fixed at construction. Group assignments and per-group
// curves may be set independently and repeatedly over the model's lifetime;
// assigning a parameter to a group whose curve is not yet installed is
// allowed.
type LinearDecayModel struct {
	groupMapping []int
	curves       []Curve
}

var _ Model = (*LinearDecayModel)(nil)

// NewLinearDecayModel creates a model for numSMParams sensor model
// parameters and numCPGroups correlation parameter groups. Every parameter
// starts unassigned and every group's curve starts empty. Negative counts
// are treated as zero.
func NewLinearDecayModel(numSMParams, numCPGroups int) *LinearDecayModel {
	if numSMParams < 0 {
		numSMParams = 0
	}
	if numCPGroups < 0 {
		numCPGroups = 0
	}
	m := &LinearDecayModel{
		groupMapping: make([]int, numSMParams),
		curves:       make([]Curve, numCPGroups),
	}
	for i := range m.groupMapping {
		m.groupMapping[i] = Unassigned
	}
	return m
}

// Format returns the linear-decay strategy tag.
func (m *LinearDecayModel) Format() string {
	return FormatLinearDecay
}

// ParameterCount returns the number of sensor model parameters.
func (m *LinearDecayModel) ParameterCount() int {
	return len(m.groupMapping)
}

// GroupCount returns the number of correlation parameter groups.
func (m *LinearDecayModel) GroupCount() int {
	return len(m.curves)
}

// Group returns the group index assigned to the parameter, or Unassigned.
func (m *LinearDecayModel) Group(smParamIndex int) (int, error) {
	if err := m.checkParameterIndex(smParamIndex, "LinearDecayModel.Group"); err != nil {
		return 0, err
	}
	return m.groupMapping[smParamIndex], nil
}

// SetGroup assigns the parameter to the group, overwriting any prior
// assignment.
func (m *LinearDecayModel) SetGroup(smParamIndex, groupIndex int) error {
	const op = "LinearDecayModel.SetGroup"
	if err := m.checkParameterIndex(smParamIndex, op); err != nil {
		return err
	}
	if err := m.checkGroupIndex(groupIndex, op); err != nil {
		return err
	}
	m.groupMapping[smParamIndex] = groupIndex
	return nil
}

// SetCurveData validates and installs a decay curve for the group from raw
// correlation and time sequences.
func (m *LinearDecayModel) SetCurveData(groupIndex int, correlations, times []float64) error {
	return m.SetCurve(groupIndex, Curve{Correlations: correlations, Times: times})
}

// SetCurve validates and installs the decay curve for the group. The whole
// candidate is checked before anything is written; on any failure the
// previously stored curve is untouched. On success the old curve is
// replaced in full.
func (m *LinearDecayModel) SetCurve(groupIndex int, curve Curve) error {
	const op = "LinearDecayModel.SetCurve"
	if err := m.checkGroupIndex(groupIndex, op); err != nil {
		return err
	}
	if len(curve.Correlations) != len(curve.Times) {
		return csm.NewError(csm.ErrorBounds,
			"must have equal number of correlations and times", op)
	}
	for i, corr := range curve.Correlations {
		if corr < 0.0 || corr > 1.0 {
			return csm.NewError(csm.ErrorBounds,
				"correlation must be in range [0..1]", op)
		}
		if i > 0 {
			if corr > curve.Correlations[i-1] {
				return csm.NewError(csm.ErrorBounds,
					"correlation must be monotonically decreasing", op)
			}
			if curve.Times[i] < curve.Times[i-1] {
				return csm.NewError(csm.ErrorBounds,
					"time must be monotonically increasing", op)
			}
		}
	}
	m.curves[groupIndex] = curve.clone()
	return nil
}

// GroupCurve returns a copy of the stored curve for the group. The copy is
// independent of the model; mutating it has no effect on stored state.
func (m *LinearDecayModel) GroupCurve(groupIndex int) (Curve, error) {
	if err := m.checkGroupIndex(groupIndex, "LinearDecayModel.GroupCurve"); err != nil {
		return Curve{}, err
	}
	return m.curves[groupIndex].clone(), nil
}

// Coefficient returns the correlation coefficient for the group at the
// given time separation. Decay depends only on the magnitude of deltaTime.
// A group whose curve was never installed fails with an Unset kind.
func (m *LinearDecayModel) Coefficient(groupIndex int, deltaTime float64) (float64, error) {
	const op = "LinearDecayModel.Coefficient"
	if err := m.checkGroupIndex(groupIndex, op); err != nil {
		return 0, err
	}
	curve := m.curves[groupIndex]
	if !curve.Defined() {
		return 0, csm.NewError(csm.ErrorUnset,
			"correlation parameters are not set for group", op)
	}

	adt := math.Abs(deltaTime)
	prevCorr := curve.Correlations[0]
	prevTime := curve.Times[0]

	coeff := prevCorr
	for s := 1; s < len(curve.Correlations); s++ {
		corr := curve.Correlations[s]
		time := curve.Times[s]
		if adt <= time {
			// Zero-width segment: hold the left value.
			if time != prevTime {
				coeff = prevCorr + (adt-prevTime)/(time-prevTime)*(corr-prevCorr)
			}
			break
		}
		prevCorr = corr
		prevTime = time
		coeff = prevCorr
	}

	// Guard interpolation arithmetic at the segment edges.
	if coeff < 0.0 {
		coeff = 0.0
	} else if coeff > 1.0 {
		coeff = 1.0
	}
	return coeff, nil
}

func (m *LinearDecayModel) checkParameterIndex(smParamIndex int, op string) error {
	if smParamIndex < 0 || smParamIndex >= len(m.groupMapping) {
		return csm.NewError(csm.ErrorIndexOutOfRange,
			"sensor model parameter index is out of range", op)
	}
	return nil
}

func (m *LinearDecayModel) checkGroupIndex(groupIndex int, op string) error {
	if groupIndex < 0 || groupIndex >= len(m.curves) {
		return csm.NewError(csm.ErrorIndexOutOfRange,
			"correlation parameter group index is out of range", op)
	}
	return nil
}
