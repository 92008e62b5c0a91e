package correlation

import (
	"math"
	"testing"

	"github.com/ihumphrey-usgs/csm"
)

func newTestModel(t *testing.T) *LinearDecayModel {
	t.Helper()
	m := NewLinearDecayModel(4, 2)
	if err := m.SetCurveData(0, []float64{1.0, 0.5, 0.0}, []float64{0, 10, 20}); err != nil {
		t.Fatalf("install curve: %v", err)
	}
	return m
}

func TestCoefficientInterpolation(t *testing.T) {
	m := newTestModel(t)

	cases := []struct {
		deltaTime float64
		want      float64
	}{
		{0, 1.0},
		{5, 0.75},
		{10, 0.5},
		{15, 0.25},
		{20, 0.0},
		{25, 0.0},  // flat extrapolation past the last breakpoint
		{-5, 0.75}, // only the magnitude of the separation matters
		{-25, 0.0},
	}
	for _, tc := range cases {
		got, err := m.Coefficient(0, tc.deltaTime)
		if err != nil {
			t.Fatalf("Coefficient(0, %v): %v", tc.deltaTime, err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("Coefficient(0, %v) = %v, want %v", tc.deltaTime, got, tc.want)
		}
	}
}

func TestCoefficientAlwaysInRange(t *testing.T) {
	m := newTestModel(t)
	for dt := -30.0; dt <= 30.0; dt += 0.25 {
		got, err := m.Coefficient(0, dt)
		if err != nil {
			t.Fatalf("Coefficient(0, %v): %v", dt, err)
		}
		if got < 0.0 || got > 1.0 {
			t.Fatalf("Coefficient(0, %v) = %v outside [0, 1]", dt, got)
		}
	}
}

func TestCoefficientBeforeFirstBreakpoint(t *testing.T) {
	m := NewLinearDecayModel(1, 1)
	if err := m.SetCurveData(0, []float64{0.9, 0.1}, []float64{5, 15}); err != nil {
		t.Fatalf("install curve: %v", err)
	}
	got, err := m.Coefficient(0, 2)
	if err != nil {
		t.Fatalf("Coefficient: %v", err)
	}
	if got != 0.9 {
		t.Fatalf("expected first correlation value before the first breakpoint, got %v", got)
	}
}

func TestCoefficientZeroWidthSegment(t *testing.T) {
	m := NewLinearDecayModel(1, 1)
	if err := m.SetCurveData(0, []float64{0.8, 0.8}, []float64{5, 5}); err != nil {
		t.Fatalf("install curve: %v", err)
	}
	got, err := m.Coefficient(0, 5)
	if err != nil {
		t.Fatalf("Coefficient: %v", err)
	}
	if got != 0.8 {
		t.Fatalf("expected 0.8 on zero-width segment, got %v", got)
	}
}

func TestCoefficientSingleBreakpoint(t *testing.T) {
	m := NewLinearDecayModel(1, 1)
	if err := m.SetCurveData(0, []float64{0.7}, []float64{3}); err != nil {
		t.Fatalf("install curve: %v", err)
	}
	for _, dt := range []float64{0, 3, 100} {
		got, err := m.Coefficient(0, dt)
		if err != nil {
			t.Fatalf("Coefficient(0, %v): %v", dt, err)
		}
		if got != 0.7 {
			t.Fatalf("Coefficient(0, %v) = %v, want 0.7", dt, got)
		}
	}
}

func TestCoefficientCurveNotSet(t *testing.T) {
	m := NewLinearDecayModel(2, 2)
	_, err := m.Coefficient(1, 5)
	if err == nil {
		t.Fatalf("expected error for group without a curve")
	}
	if kind := csm.KindOf(err); kind != csm.ErrorUnset {
		t.Fatalf("expected unset kind, got %s", kind)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	m := newTestModel(t)

	checks := []struct {
		name string
		err  error
	}{
		{"Group high", errOf(m.Group(4))},
		{"Group negative", errOf(m.Group(-1))},
		{"SetGroup param", m.SetGroup(4, 0)},
		{"SetGroup group", m.SetGroup(0, 2)},
		{"SetCurve", m.SetCurveData(2, []float64{1}, []float64{0})},
		{"GroupCurve", curveErrOf(m.GroupCurve(2))},
		{"Coefficient", coeffErrOf(m.Coefficient(2, 0))},
	}
	for _, c := range checks {
		if c.err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		if kind := csm.KindOf(c.err); kind != csm.ErrorIndexOutOfRange {
			t.Fatalf("%s: expected index-out-of-range kind, got %s", c.name, kind)
		}
	}

	// Every index strictly inside range must succeed.
	for p := 0; p < m.ParameterCount(); p++ {
		if _, err := m.Group(p); err != nil {
			t.Fatalf("Group(%d): %v", p, err)
		}
	}
	for g := 0; g < m.GroupCount(); g++ {
		if _, err := m.GroupCurve(g); err != nil {
			t.Fatalf("GroupCurve(%d): %v", g, err)
		}
	}
}

func errOf(_ int, err error) error          { return err }
func curveErrOf(_ Curve, err error) error   { return err }
func coeffErrOf(_ float64, err error) error { return err }

func TestSetCurveValidation(t *testing.T) {
	cases := []struct {
		name         string
		correlations []float64
		times        []float64
	}{
		{"length mismatch", []float64{1.0, 0.5}, []float64{0}},
		{"correlation above one", []float64{1.5, 0.5}, []float64{0, 10}},
		{"correlation below zero", []float64{0.5, -0.1}, []float64{0, 10}},
		{"correlation increasing", []float64{0.5, 0.6}, []float64{0, 10}},
		{"time decreasing", []float64{1.0, 0.5}, []float64{10, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			before, err := m.GroupCurve(0)
			if err != nil {
				t.Fatalf("GroupCurve: %v", err)
			}

			err = m.SetCurveData(0, tc.correlations, tc.times)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if kind := csm.KindOf(err); kind != csm.ErrorBounds {
				t.Fatalf("expected bounds kind, got %s", kind)
			}

			// Rejected curves must leave the stored curve unchanged.
			after, err := m.GroupCurve(0)
			if err != nil {
				t.Fatalf("GroupCurve: %v", err)
			}
			if !curvesEqual(before, after) {
				t.Fatalf("stored curve changed after rejected install: %+v -> %+v", before, after)
			}
		})
	}
}

func TestSetCurveIdempotent(t *testing.T) {
	m := newTestModel(t)
	once, err := m.Coefficient(0, 7)
	if err != nil {
		t.Fatalf("Coefficient: %v", err)
	}

	if err := m.SetCurveData(0, []float64{1.0, 0.5, 0.0}, []float64{0, 10, 20}); err != nil {
		t.Fatalf("reinstall curve: %v", err)
	}
	twice, err := m.Coefficient(0, 7)
	if err != nil {
		t.Fatalf("Coefficient: %v", err)
	}
	if once != twice {
		t.Fatalf("coefficient changed after identical reinstall: %v vs %v", once, twice)
	}
}

func TestSetCurveReplacesWholeCurve(t *testing.T) {
	m := newTestModel(t)
	if err := m.SetCurveData(0, []float64{0.4}, []float64{0}); err != nil {
		t.Fatalf("replace curve: %v", err)
	}
	curve, err := m.GroupCurve(0)
	if err != nil {
		t.Fatalf("GroupCurve: %v", err)
	}
	if len(curve.Correlations) != 1 || curve.Correlations[0] != 0.4 {
		t.Fatalf("expected full replacement, got %+v", curve)
	}
}

func TestGroupMapping(t *testing.T) {
	m := NewLinearDecayModel(3, 2)
	if m.ParameterCount() != 3 || m.GroupCount() != 2 {
		t.Fatalf("unexpected counts: %d params, %d groups", m.ParameterCount(), m.GroupCount())
	}

	for p := 0; p < m.ParameterCount(); p++ {
		g, err := m.Group(p)
		if err != nil {
			t.Fatalf("Group(%d): %v", p, err)
		}
		if g != Unassigned {
			t.Fatalf("expected parameter %d unassigned, got group %d", p, g)
		}
	}

	// Assigning to a group without a curve is allowed; assignments can be
	// overwritten.
	if err := m.SetGroup(1, 0); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}
	if err := m.SetGroup(1, 1); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}
	g, err := m.Group(1)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if g != 1 {
		t.Fatalf("expected group 1 after overwrite, got %d", g)
	}
}

func TestGroupCurveReturnsCopy(t *testing.T) {
	m := newTestModel(t)
	curve, err := m.GroupCurve(0)
	if err != nil {
		t.Fatalf("GroupCurve: %v", err)
	}
	curve.Correlations[0] = 0.0

	got, err := m.Coefficient(0, 0)
	if err != nil {
		t.Fatalf("Coefficient: %v", err)
	}
	if got != 1.0 {
		t.Fatalf("stored curve aliased by accessor copy, got %v", got)
	}
}

func TestFormatTag(t *testing.T) {
	var m Model = NewLinearDecayModel(1, 1)
	if m.Format() != FormatLinearDecay {
		t.Fatalf("unexpected strategy tag %q", m.Format())
	}
}

func curvesEqual(a, b Curve) bool {
	if len(a.Correlations) != len(b.Correlations) || len(a.Times) != len(b.Times) {
		return false
	}
	for i := range a.Correlations {
		if a.Correlations[i] != b.Correlations[i] {
			return false
		}
	}
	for i := range a.Times {
		if a.Times[i] != b.Times[i] {
			return false
		}
	}
	return true
}
