package design

import (
	"gonum.org/v1/gonum/mat"

	"github.com/goecon/dummyreg/pkg/errors"
)

// Matrix is a dense design matrix with named columns. It implements
// mat.Matrix so it can be handed directly to the linear estimators.
type Matrix struct {
	data  *mat.Dense
	names []string
}

// NewMatrix wraps data with its column names.
func NewMatrix(data *mat.Dense, names []string) (*Matrix, error) {
	_, c := data.Dims()
	if c != len(names) {
		return nil, errors.NewDimensionError("design.NewMatrix", len(names), c, 1)
	}
	return &Matrix{data: data, names: names}, nil
}

// Dims returns the matrix dimensions.
func (m *Matrix) Dims() (r, c int) { return m.data.Dims() }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// T returns the transpose.
func (m *Matrix) T() mat.Matrix { return m.data.T() }

// Names returns the column names in column order.
func (m *Matrix) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Dense exposes the underlying dense matrix.
func (m *Matrix) Dense() *mat.Dense { return m.data }

// Column returns a copy of the named column's values.
func (m *Matrix) Column(name string) ([]float64, error) {
	for j, n := range m.names {
		if n == name {
			r, _ := m.data.Dims()
			out := make([]float64, r)
			mat.Col(out, j, m.data)
			return out, nil
		}
	}
	return nil, errors.NewValidationError("name", "no such design column", name)
}
