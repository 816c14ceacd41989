package linear

// Solver selects the algorithm used to solve the least-squares problem.
type Solver string

const (
	// SolverQR solves via QR decomposition (default). More stable on nearly
	// collinear dummy columns.
	SolverQR Solver = "qr"

	// SolverNormal solves the normal equations (X'X)^-1 X'y directly.
	SolverNormal Solver = "normal"
)

// Option is a function that configures an OLS model.
type Option func(*OLS)

// WithFitIntercept sets whether the model includes a constant term.
func WithFitIntercept(fit bool) Option {
	return func(m *OLS) {
		m.fitIntercept = fit
	}
}

// WithSolver selects the least-squares solver.
func WithSolver(s Solver) Option {
	return func(m *OLS) {
		m.solver = s
	}
}

// WithCopyX sets whether Fit works on a copy of X.
func WithCopyX(copy bool) Option {
	return func(m *OLS) {
		m.copyX = copy
	}
}
