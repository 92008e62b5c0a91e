package correlation

import (
	"math"
	"testing"

	"github.com/ihumphrey-usgs/csm"
)

func newMatrixModel(t *testing.T) *LinearDecayModel {
	t.Helper()
	m := NewLinearDecayModel(4, 2)
	if err := m.SetCurveData(0, []float64{1.0, 0.5, 0.0}, []float64{0, 10, 20}); err != nil {
		t.Fatalf("install curve: %v", err)
	}
	if err := m.SetCurveData(1, []float64{0.9, 0.3}, []float64{0, 30}); err != nil {
		t.Fatalf("install curve: %v", err)
	}
	// Parameters 0 and 1 share group 0, parameter 2 is in group 1,
	// parameter 3 stays unassigned.
	if err := m.SetGroup(0, 0); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}
	if err := m.SetGroup(1, 0); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}
	if err := m.SetGroup(2, 1); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}
	return m
}

func TestMatrixValues(t *testing.T) {
	m := newMatrixModel(t)

	got, err := Matrix(m, 5)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if r, c := got.Dims(); r != 4 || c != 4 {
		t.Fatalf("unexpected dimensions %dx%d", r, c)
	}

	for i := 0; i < 4; i++ {
		if got.At(i, i) != 1.0 {
			t.Fatalf("diagonal (%d,%d) = %v, want 1", i, i, got.At(i, i))
		}
	}

	// Same group: the group-0 coefficient at dt=5 is 0.75.
	if v := got.At(0, 1); math.Abs(v-0.75) > 1e-12 {
		t.Fatalf("same-group entry = %v, want 0.75", v)
	}
	if got.At(0, 1) != got.At(1, 0) {
		t.Fatalf("matrix not symmetric")
	}

	// Different groups and unassigned parameters are uncorrelated.
	for _, pair := range [][2]int{{0, 2}, {1, 2}, {0, 3}, {1, 3}, {2, 3}} {
		if v := got.At(pair[0], pair[1]); v != 0.0 {
			t.Fatalf("entry (%d,%d) = %v, want 0", pair[0], pair[1], v)
		}
	}
}

func TestMatrixUnsetCurve(t *testing.T) {
	m := NewLinearDecayModel(2, 1)
	if err := m.SetGroup(0, 0); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}
	if err := m.SetGroup(1, 0); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}

	_, err := Matrix(m, 1)
	if err == nil {
		t.Fatalf("expected error for shared group without a curve")
	}
	if kind := csm.KindOf(err); kind != csm.ErrorUnset {
		t.Fatalf("expected unset kind, got %s", kind)
	}
}

func TestMatrixSingleMemberGroupNeedsNoCurve(t *testing.T) {
	m := NewLinearDecayModel(2, 2)
	if err := m.SetGroup(0, 0); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}
	if err := m.SetGroup(1, 1); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}

	got, err := Matrix(m, 1)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if got.At(0, 1) != 0.0 {
		t.Fatalf("expected cross-group zero, got %v", got.At(0, 1))
	}
}

func TestMatrixEmptyModel(t *testing.T) {
	_, err := Matrix(NewLinearDecayModel(0, 0), 1)
	if err == nil {
		t.Fatalf("expected error for model without parameters")
	}
	if kind := csm.KindOf(err); kind != csm.ErrorBounds {
		t.Fatalf("expected bounds kind, got %s", kind)
	}
}
