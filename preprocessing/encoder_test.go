package preprocessing

import (
	"reflect"
	"testing"

	"github.com/goecon/dummyreg/pkg/errors"
)

func TestOneHotEncoder_Fit(t *testing.T) {
	tests := []struct {
		name           string
		values         []string
		reference      string
		wantCategories []string
		wantErr        bool
	}{
		{
			name:           "levels sorted",
			values:         []string{"single", "married", "single", "married"},
			wantCategories: []string{"married", "single"},
		},
		{
			name:           "reference moved to front",
			values:         []string{"north", "south", "east", "west"},
			reference:      "south",
			wantCategories: []string{"south", "east", "north", "west"},
		},
		{
			name:      "reference not in data",
			values:    []string{"a", "b"},
			reference: "c",
			wantErr:   true,
		},
		{
			name:    "empty data",
			values:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewOneHotEncoder()
			enc.Reference = tt.reference

			err := enc.Fit(tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if !reflect.DeepEqual(enc.Categories, tt.wantCategories) {
				t.Errorf("Categories = %v, want %v", enc.Categories, tt.wantCategories)
			}
		})
	}
}

func TestOneHotEncoder_Transform(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.Fit([]string{"female", "male", "female"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Reference is "female"; "male" gets the single dummy column.
	if got := enc.ReferenceLevel(); got != "female" {
		t.Fatalf("ReferenceLevel = %q, want %q", got, "female")
	}

	out, err := enc.Transform([]string{"male", "female", "male"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	r, c := out.Dims()
	if r != 3 || c != 1 {
		t.Fatalf("Transform dims = (%d, %d), want (3, 1)", r, c)
	}

	want := []float64{1, 0, 1}
	for i, w := range want {
		if out.At(i, 0) != w {
			t.Errorf("row %d: got %v, want %v", i, out.At(i, 0), w)
		}
	}
}

func TestOneHotEncoder_TransformNoDrop(t *testing.T) {
	enc := NewOneHotEncoder()
	enc.DropFirst = false
	if err := enc.Fit([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	out, err := enc.Transform([]string{"b"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	_, c := out.Dims()
	if c != 3 {
		t.Fatalf("expected 3 columns without drop, got %d", c)
	}

	wantRow := []float64{0, 1, 0}
	for j, w := range wantRow {
		if out.At(0, j) != w {
			t.Errorf("col %d: got %v, want %v", j, out.At(0, j), w)
		}
	}
}

func TestOneHotEncoder_UnknownCategory(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.Fit([]string{"x", "y"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	_, err := enc.Transform([]string{"z"})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
	if !errors.Is(err, errors.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}

	if _, err := enc.Indicator("z"); !errors.Is(err, errors.ErrUnknownCategory) {
		t.Errorf("Indicator: expected ErrUnknownCategory, got %v", err)
	}
}

func TestOneHotEncoder_NotFitted(t *testing.T) {
	enc := NewOneHotEncoder()

	_, err := enc.Transform([]string{"a"})
	if err == nil {
		t.Fatal("expected NotFittedError")
	}

	var nfe *errors.NotFittedError
	if !errors.As(err, &nfe) {
		t.Errorf("expected NotFittedError, got %T", err)
	}
}

func TestOneHotEncoder_FeatureNames(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.Fit([]string{"married", "single"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	got := enc.FeatureNames("marital")
	want := []string{"marital[single]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FeatureNames = %v, want %v", got, want)
	}
}

func TestOneHotEncoder_SingleLevel(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.Fit([]string{"only", "only"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if enc.NumColumns() != 0 {
		t.Errorf("expected 0 columns for single level, got %d", enc.NumColumns())
	}

	if _, err := enc.Transform([]string{"only"}); err == nil {
		t.Error("expected error transforming a single-level column")
	}
}
