package design

import (
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"github.com/goecon/dummyreg/pkg/errors"
)

// Response extracts the named column as the response vector for a fit.
func Response(df dataframe.DataFrame, col string) (*mat.VecDense, error) {
	if df.Err != nil {
		return nil, errors.NewModelError("design.Response", "invalid dataframe", df.Err)
	}

	vals, err := numericColumn(df, col, "design.Response")
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, errors.NewModelError("design.Response", "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckValues("design.Response: column "+col, vals); err != nil {
		return nil, err
	}

	return mat.NewVecDense(len(vals), vals), nil
}
