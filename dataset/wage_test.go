package dataset

import (
	"math"
	"testing"
)

func TestWageShape(t *testing.T) {
	df := Wage()

	if df.Err != nil {
		t.Fatalf("unexpected DataFrame error: %v", df.Err)
	}

	if df.Nrow() != NumRows() {
		t.Errorf("expected %d rows, got %d", NumRows(), df.Nrow())
	}

	wantCols := []string{ColWage, ColLogWage, ColEduc, ColExper, ColTenure, ColGender, ColMarital}
	if df.Ncol() != len(wantCols) {
		t.Fatalf("expected %d columns, got %d", len(wantCols), df.Ncol())
	}

	names := df.Names()
	for i, want := range wantCols {
		if names[i] != want {
			t.Errorf("column %d: expected %q, got %q", i, want, names[i])
		}
	}
}

func TestWageLogColumn(t *testing.T) {
	df := Wage()

	wages := df.Col(ColWage).Float()
	lwages := df.Col(ColLogWage).Float()

	for i := range wages {
		if math.Abs(lwages[i]-math.Log(wages[i])) > 1e-12 {
			t.Fatalf("row %d: lwage %.6f does not match log(wage) %.6f", i, lwages[i], math.Log(wages[i]))
		}
	}
}

func TestWageLevels(t *testing.T) {
	df := Wage()

	for i, g := range df.Col(ColGender).Records() {
		if g != Male && g != Female {
			t.Errorf("row %d: unexpected gender level %q", i, g)
		}
	}

	for i, m := range df.Col(ColMarital).Records() {
		if m != Married && m != Single {
			t.Errorf("row %d: unexpected marital level %q", i, m)
		}
	}
}

func TestWageCopies(t *testing.T) {
	a := Wage()
	b := Wage()

	// Mutating one copy must not leak into the other.
	a = a.Drop(ColWage)
	if a.Err != nil {
		t.Fatalf("drop failed: %v", a.Err)
	}

	if b.Ncol() != 7 {
		t.Errorf("second copy affected by mutation of the first: %d columns", b.Ncol())
	}
}
