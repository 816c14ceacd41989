package linear

import (
	"fmt"
	"strings"

	"github.com/goecon/dummyreg/pkg/errors"
)

// Summary holds the regression results in tabular form.
type Summary struct {
	NObs    int
	DFModel int
	DFResid int

	ParamNames []string
	Params     []float64
	StdErrors  []float64
	TValues    []float64
	PValues    []float64

	R2      float64
	AdjR2   float64
	FStat   float64
	FPValue float64
	Sigma   float64
}

// Summary returns the regression results of a fitted model.
func (m *OLS) Summary() (*Summary, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Summary")
	}

	s := &Summary{
		NObs:       m.NObs_,
		DFModel:    m.DFModel_,
		DFResid:    m.DFResid_,
		ParamNames: append([]string(nil), m.ParamNames_...),
		Params:     append([]float64(nil), m.Params_...),
		StdErrors:  append([]float64(nil), m.StdErrors_...),
		TValues:    append([]float64(nil), m.TValues_...),
		PValues:    append([]float64(nil), m.PValues_...),
		R2:         m.R2_,
		AdjR2:      m.AdjR2_,
		FStat:      m.FStat_,
		FPValue:    m.FPValue_,
		Sigma:      m.Sigma_,
	}
	return s, nil
}

// String renders the coefficient table as plain text.
func (s *Summary) String() string {
	var b strings.Builder

	nameWidth := len("variable")
	for _, n := range s.ParamNames {
		if len(n) > nameWidth {
			nameWidth = len(n)
		}
	}

	fmt.Fprintf(&b, "OLS Regression Results\n")
	fmt.Fprintf(&b, "No. Observations: %-8d Df Residuals: %-8d Df Model: %d\n",
		s.NObs, s.DFResid, s.DFModel)
	fmt.Fprintf(&b, "R-squared: %.4f    Adj. R-squared: %.4f\n", s.R2, s.AdjR2)
	fmt.Fprintf(&b, "F-statistic: %.4f    Prob (F-statistic): %.4g\n", s.FStat, s.FPValue)
	fmt.Fprintf(&b, "Residual Std. Error: %.4f\n", s.Sigma)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "%-*s %12s %12s %10s %10s\n", nameWidth, "variable", "coef", "std err", "t", "P>|t|")
	for i, n := range s.ParamNames {
		fmt.Fprintf(&b, "%-*s %12.4f %12.4f %10.3f %10.3f\n",
			nameWidth, n, s.Params[i], s.StdErrors[i], s.TValues[i], s.PValues[i])
	}

	return b.String()
}
