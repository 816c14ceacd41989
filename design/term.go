// Package design turns named tabular data into a numeric design matrix for
// OLS: continuous columns pass through, categorical columns become treatment-
// coded dummy columns, and terms may be crossed into interaction columns
// (dummy×dummy and dummy×continuous). Column naming is deterministic so fitted
// coefficients can always be read back by name.
package design

import (
	"fmt"
	"strings"
)

type termKind int

const (
	numericKind termKind = iota
	categoricalKind
	interactionKind
	cellsKind
)

// Term describes one additive component of a model formula. Terms are value
// types; the With-style modifiers return copies.
type Term struct {
	kind        termKind
	col         string
	standardize bool
	reference   string
	factors     []Term   // interaction factors
	cols        []string // joint cell columns
}

// Numeric declares a continuous regressor read from the named column.
func Numeric(col string) Term {
	return Term{kind: numericKind, col: col}
}

// Standardized marks a numeric term for standardization (mean 0, unit
// standard deviation), yielding a standardized coefficient in the fit.
func (t Term) Standardized() Term {
	t.standardize = true
	return t
}

// Categorical declares a qualitative regressor read from the named column.
// Its levels are learned at Fit time and encoded as treatment-coded dummies.
func Categorical(col string) Term {
	return Term{kind: categoricalKind, col: col}
}

// Ref overrides the reference (dropped) level of a categorical term. The
// default reference is the lexicographically first level.
func (t Term) Ref(level string) Term {
	t.reference = level
	return t
}

// Interact crosses two or more terms into a product term. Categorical factors
// contribute their non-reference dummies, numeric factors contribute their
// values, and the resulting columns are all pairwise products. With a
// categorical and a numeric factor this yields slope shifters such as
// gender[female]:educ.
func Interact(factors ...Term) Term {
	return Term{kind: interactionKind, factors: factors}
}

// Cells declares joint dummies over two or more categorical columns: one
// column per observed level combination except the reference cell. This is
// the multi-category construction (e.g. married-male, married-female,
// single-female against a single-male base).
func Cells(cols ...string) Term {
	return Term{kind: cellsKind, cols: cols}
}

// String renders the term the way its design-matrix columns are prefixed.
func (t Term) String() string {
	switch t.kind {
	case numericKind:
		if t.standardize {
			return fmt.Sprintf("scale(%s)", t.col)
		}
		return t.col
	case categoricalKind:
		if t.reference != "" {
			return fmt.Sprintf("C(%s, ref=%s)", t.col, t.reference)
		}
		return fmt.Sprintf("C(%s)", t.col)
	case interactionKind:
		parts := make([]string, len(t.factors))
		for i, f := range t.factors {
			parts[i] = f.String()
		}
		return strings.Join(parts, ":")
	case cellsKind:
		return fmt.Sprintf("cells(%s)", strings.Join(t.cols, ", "))
	}
	return "unknown"
}

// columns returns the source data columns the term reads.
func (t Term) columns() []string {
	switch t.kind {
	case numericKind, categoricalKind:
		return []string{t.col}
	case interactionKind:
		var cols []string
		for _, f := range t.factors {
			cols = append(cols, f.columns()...)
		}
		return cols
	case cellsKind:
		return t.cols
	}
	return nil
}
