package preprocessing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/goecon/dummyreg/core/model"
	"github.com/goecon/dummyreg/pkg/errors"
)

// OneHotEncoder maps the levels of one categorical column onto dummy columns.
// Levels are learned at Fit and kept in sorted order; with DropFirst the
// reference level (the first level, or the configured one) contributes no
// column, which keeps a design matrix with an intercept at full rank.
type OneHotEncoder struct {
	model.BaseEstimator

	// DropFirst drops the reference level's column (treatment coding).
	DropFirst bool

	// Reference forces the given level to be the dropped one. Empty means the
	// lexicographically first level.
	Reference string

	// Categories holds the sorted levels seen during Fit.
	Categories []string

	index map[string]int // level -> position in Categories
}

// NewOneHotEncoder creates an encoder with treatment coding enabled.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{DropFirst: true}
}

// Fit learns the distinct levels of values.
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	seen := make(map[string]bool)
	for _, v := range values {
		seen[v] = true
	}

	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	if e.Reference != "" {
		if !seen[e.Reference] {
			return errors.NewValidationError("reference",
				"reference level not present in data", e.Reference)
		}
		// Move the reference to the front so it is the dropped level.
		for i, v := range levels {
			if v == e.Reference {
				copy(levels[1:i+1], levels[:i])
				levels[0] = e.Reference
				break
			}
		}
	}

	e.Categories = levels
	e.index = make(map[string]int, len(levels))
	for i, v := range levels {
		e.index[v] = i
	}

	e.SetFitted()
	return nil
}

// NumColumns is the number of dummy columns the encoder produces.
func (e *OneHotEncoder) NumColumns() int {
	if !e.IsFitted() {
		return 0
	}
	if e.DropFirst {
		return len(e.Categories) - 1
	}
	return len(e.Categories)
}

// ReferenceLevel returns the dropped level, or "" when nothing is dropped.
func (e *OneHotEncoder) ReferenceLevel() string {
	if !e.IsFitted() || !e.DropFirst {
		return ""
	}
	return e.Categories[0]
}

// EncodedLevels returns the levels that receive a dummy column, in column
// order.
func (e *OneHotEncoder) EncodedLevels() []string {
	if !e.IsFitted() {
		return nil
	}
	if e.DropFirst {
		return e.Categories[1:]
	}
	return e.Categories
}

// FeatureNames returns the output column names for a source column, in the
// form col[level].
func (e *OneHotEncoder) FeatureNames(col string) []string {
	levels := e.EncodedLevels()
	names := make([]string, len(levels))
	for i, level := range levels {
		names[i] = fmt.Sprintf("%s[%s]", col, level)
	}
	return names
}

// Transform encodes values into a dense dummy matrix with one row per value.
// A level unseen at Fit is an error wrapping ErrUnknownCategory.
func (e *OneHotEncoder) Transform(values []string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	cols := e.NumColumns()
	if cols == 0 {
		return nil, errors.NewValueError("OneHotEncoder.Transform",
			"column has a single level; treatment coding leaves no dummy columns")
	}
	if len(values) == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty data", errors.ErrEmptyData)
	}

	out := mat.NewDense(len(values), cols, nil)
	for i, v := range values {
		idx, ok := e.index[v]
		if !ok {
			return nil, errors.Wrapf(errors.ErrUnknownCategory, "level %q", v)
		}
		if e.DropFirst {
			if idx > 0 {
				out.Set(i, idx-1, 1)
			}
		} else {
			out.Set(i, idx, 1)
		}
	}

	return out, nil
}

// FitTransform fits the encoder and transforms the same values.
func (e *OneHotEncoder) FitTransform(values []string) (*mat.Dense, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// Contains reports whether the level was seen during Fit.
func (e *OneHotEncoder) Contains(level string) bool {
	if !e.IsFitted() {
		return false
	}
	_, ok := e.index[level]
	return ok
}

// Indicator returns, for a single value, the per-encoded-level 0/1 indicators.
// Used by the design builder when forming interaction products.
func (e *OneHotEncoder) Indicator(value string) ([]float64, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Indicator")
	}

	idx, ok := e.index[value]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownCategory, "level %q", value)
	}

	out := make([]float64, e.NumColumns())
	if e.DropFirst {
		if idx > 0 {
			out[idx-1] = 1
		}
	} else {
		out[idx] = 1
	}
	return out, nil
}

// GetParams returns the encoder's hyperparameters.
func (e *OneHotEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"drop_first": e.DropFirst,
		"reference":  e.Reference,
	}
}

// String returns a short description of the encoder.
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return fmt.Sprintf("OneHotEncoder(drop_first=%t)", e.DropFirst)
	}
	return fmt.Sprintf("OneHotEncoder(drop_first=%t, categories=%v)", e.DropFirst, e.Categories)
}
