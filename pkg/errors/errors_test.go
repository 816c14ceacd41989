package errors

import (
	"math"
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("OLS", "Predict")

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %T", err)
	}

	if nfe.ModelName != "OLS" || nfe.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", nfe)
	}

	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name     string
		axis     int
		wantWord string
	}{
		{name: "row axis", axis: 0, wantWord: "rows"},
		{name: "feature axis", axis: 1, wantWord: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("OLS.Fit", 5, 3, tt.axis)

			var de *DimensionError
			if !As(err, &de) {
				t.Fatalf("expected DimensionError, got %T", err)
			}

			if !strings.Contains(err.Error(), tt.wantWord) {
				t.Errorf("message %q missing %q", err.Error(), tt.wantWord)
			}
		})
	}
}

func TestModelErrorUnwrap(t *testing.T) {
	err := NewModelError("OLS.Fit", "singular matrix", ErrSingularMatrix)

	if !Is(err, ErrSingularMatrix) {
		t.Errorf("expected errors.Is to match ErrSingularMatrix")
	}
}

func TestUnknownCategorySentinel(t *testing.T) {
	err := Wrapf(ErrUnknownCategory, "column %q: level %q", "gender", "other")

	if !Is(err, ErrUnknownCategory) {
		t.Errorf("wrapped sentinel not matched by errors.Is")
	}

	if !strings.Contains(err.Error(), "gender") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	w := NewRankDeficiencyWarning("OLS.Fit", 2, 4)
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler not invoked")
	}

	var rdw *RankDeficiencyWarning
	if !As(captured, &rdw) {
		t.Fatalf("expected RankDeficiencyWarning, got %T", captured)
	}

	if rdw.Rank != 2 || rdw.Columns != 4 {
		t.Errorf("unexpected fields: %+v", rdw)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "test operation")
		panic("boom")
	}

	err := fn()
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}

	var pe *PanicError
	if !As(err, &pe) {
		t.Fatalf("expected PanicError, got %T", err)
	}

	if pe.Operation != "test operation" {
		t.Errorf("unexpected operation: %q", pe.Operation)
	}
}

func TestCheckMatrix(t *testing.T) {
	good := matStub{vals: [][]float64{{1, 2}, {3, 4}}}
	if err := CheckMatrix("test", good, 2, 2); err != nil {
		t.Errorf("unexpected error for finite matrix: %v", err)
	}

	bad := matStub{vals: [][]float64{{1, math.NaN()}, {3, 4}}}
	if err := CheckMatrix("test", bad, 2, 2); err == nil {
		t.Error("expected error for NaN entry")
	}
}

type matStub struct {
	vals [][]float64
}

func (m matStub) At(i, j int) float64 { return m.vals[i][j] }
