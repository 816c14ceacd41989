// Package linear implements ordinary least squares with the inferential
// statistics a regression summary reports: coefficient standard errors,
// t-statistics and p-values, R², adjusted R², and the overall F-test.
package linear

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/goecon/dummyreg/core/model"
	"github.com/goecon/dummyreg/core/parallel"
	"github.com/goecon/dummyreg/design"
	"github.com/goecon/dummyreg/metrics"
	"github.com/goecon/dummyreg/pkg/errors"
	"github.com/goecon/dummyreg/pkg/log"
)

// parallelThreshold is the row count above which the intercept column is
// assembled in parallel.
const parallelThreshold = 1000

// rankTol is the relative tolerance on the R diagonal used to detect rank
// deficiency in the QR path.
const rankTol = 1e-12

// OLS is an ordinary least squares regression model. After Fit the exported
// trailing-underscore fields hold the estimates; parameter order matches
// ParamNames_, with the constant first when the model has an intercept.
type OLS struct {
	model.BaseEstimator

	fitIntercept bool
	solver       Solver
	copyX        bool

	// ParamNames_ names every estimated parameter, "const" included.
	ParamNames_ []string
	// Params_ holds the estimated parameters in ParamNames_ order.
	Params_ []float64
	// StdErrors_, TValues_ and PValues_ hold the per-parameter inference
	// results, aligned with Params_.
	StdErrors_ []float64
	TValues_   []float64
	PValues_   []float64

	// R2_ and AdjR2_ are the (adjusted) coefficient of determination.
	R2_    float64
	AdjR2_ float64
	// FStat_ is the overall F-statistic with FPValue_ its p-value.
	FStat_   float64
	FPValue_ float64
	// Sigma_ is the residual standard error sqrt(RSS / df_resid).
	Sigma_ float64
	// RSS_ and TSS_ are the residual and total sums of squares.
	RSS_ float64
	TSS_ float64
	// Rank_ is the column rank of the augmented design matrix.
	Rank_ int

	// NObs_ is the number of observations, NFeatures_ the number of design
	// columns excluding the constant.
	NObs_      int
	NFeatures_ int
	// DFResid_ and DFModel_ are the residual and model degrees of freedom.
	DFResid_ int
	DFModel_ int

	// Residuals_ and Fitted_ are the training residuals and fitted values.
	Residuals_ []float64
	Fitted_    []float64
}

// NewOLS creates an OLS model. By default it fits an intercept and solves via
// QR decomposition.
func NewOLS(opts ...Option) *OLS {
	m := &OLS{
		fitIntercept: true,
		solver:       SolverQR,
		copyX:        true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fit estimates the model on X and y. When X is a *design.Matrix its column
// names carry through to the parameter table; otherwise parameters are named
// x0, x1, ... y must be a column vector.
func (m *OLS) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "OLS.Fit")

	if m.solver != SolverQR && m.solver != SolverNormal {
		return errors.NewValidationError("solver", "unknown solver", string(m.solver))
	}

	n, c := X.Dims()
	ry, cy := y.Dims()

	if n == 0 || c == 0 {
		return errors.NewModelError("OLS.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != n {
		return errors.NewDimensionError("OLS.Fit", n, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("OLS.Fit", "y must be a column vector")
	}

	names := paramNames(X, c, m.fitIntercept)

	var XWork mat.Matrix = X
	if m.copyX {
		XCopy := mat.NewDense(n, c, nil)
		XCopy.Copy(X)
		XWork = XCopy
	}

	// Augment with the constant column.
	p := c
	var XFit *mat.Dense
	if m.fitIntercept {
		p = c + 1
		XFit = mat.NewDense(n, p, nil)
		src := XWork
		parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
			for i := start; i < end; i++ {
				XFit.Set(i, 0, 1.0)
				for j := 0; j < c; j++ {
					XFit.Set(i, j+1, src.At(i, j))
				}
			}
		})
	} else {
		XFit = mat.NewDense(n, p, nil)
		XFit.Copy(XWork)
	}

	dfResid := n - p
	if dfResid <= 0 {
		return errors.NewValueError("OLS.Fit",
			fmt.Sprintf("insufficient degrees of freedom: %d observations for %d parameters", n, p))
	}

	yVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	beta := mat.NewVecDense(p, nil)
	rank := p
	switch m.solver {
	case SolverQR:
		var err error
		rank, err = solveQR(XFit, yVec, beta)
		if err != nil {
			if rank < p {
				errors.Warn(errors.NewRankDeficiencyWarning("OLS.Fit", rank, p))
			}
			return err
		}
	case SolverNormal:
		if err := solveNormal(XFit, yVec, beta); err != nil {
			return err
		}
	}

	// Covariance needs (X'X)^-1 regardless of solver.
	var xtx mat.Dense
	xtx.Mul(XFit.T(), XFit)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		errors.Warn(errors.NewRankDeficiencyWarning("OLS.Fit", rank, p))
		return errors.NewModelError("OLS.Fit", "singular design matrix", errors.ErrSingularMatrix)
	}

	// Fitted values and residuals.
	fitted := mat.NewVecDense(n, nil)
	fitted.MulVec(XFit, beta)

	residuals := make([]float64, n)
	fittedVals := make([]float64, n)
	var rss float64
	for i := 0; i < n; i++ {
		fittedVals[i] = fitted.AtVec(i)
		residuals[i] = yVec.AtVec(i) - fittedVals[i]
		rss += residuals[i] * residuals[i]
	}

	// Total sum of squares: centered with an intercept, raw without.
	var tss float64
	if m.fitIntercept {
		var yMean float64
		for i := 0; i < n; i++ {
			yMean += yVec.AtVec(i)
		}
		yMean /= float64(n)
		for i := 0; i < n; i++ {
			d := yVec.AtVec(i) - yMean
			tss += d * d
		}
	} else {
		for i := 0; i < n; i++ {
			v := yVec.AtVec(i)
			tss += v * v
		}
	}

	sigma2 := rss / float64(dfResid)

	params := make([]float64, p)
	stdErrs := make([]float64, p)
	tVals := make([]float64, p)
	pVals := make([]float64, p)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResid)}
	for j := 0; j < p; j++ {
		params[j] = beta.AtVec(j)
		stdErrs[j] = math.Sqrt(sigma2 * xtxInv.At(j, j))
		if stdErrs[j] > 0 {
			tVals[j] = params[j] / stdErrs[j]
			pVals[j] = 2 * tDist.Survival(math.Abs(tVals[j]))
		} else {
			tVals[j] = math.NaN()
			pVals[j] = math.NaN()
		}
	}

	var r2, adjR2 float64
	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2", "zero variance in y", 0))
	} else {
		r2 = 1 - rss/tss
		if m.fitIntercept {
			adjR2 = 1 - (1-r2)*float64(n-1)/float64(dfResid)
		} else {
			adjR2 = 1 - (1-r2)*float64(n)/float64(dfResid)
		}
	}

	dfModel := p
	if m.fitIntercept {
		dfModel = p - 1
	}
	fStat := math.NaN()
	fPValue := math.NaN()
	if dfModel > 0 && rss > 0 {
		ess := tss - rss
		fStat = (ess / float64(dfModel)) / (rss / float64(dfResid))
		fDist := distuv.F{D1: float64(dfModel), D2: float64(dfResid)}
		fPValue = fDist.Survival(fStat)
	}

	m.ParamNames_ = names
	m.Params_ = params
	m.StdErrors_ = stdErrs
	m.TValues_ = tVals
	m.PValues_ = pVals
	m.R2_ = r2
	m.AdjR2_ = adjR2
	m.FStat_ = fStat
	m.FPValue_ = fPValue
	m.Sigma_ = math.Sqrt(sigma2)
	m.RSS_ = rss
	m.TSS_ = tss
	m.Rank_ = rank
	m.NObs_ = n
	m.NFeatures_ = c
	m.DFResid_ = dfResid
	m.DFModel_ = dfModel
	m.Residuals_ = residuals
	m.Fitted_ = fittedVals

	m.SetFitted()
	slog.Debug("ols fitted",
		slog.String(log.ModelNameKey, "OLS"),
		slog.String(log.OperationKey, "fit"),
		slog.Int(log.SamplesKey, n),
		slog.Int(log.FeaturesKey, c),
		slog.Int(log.RankKey, rank),
		slog.Int(log.DFResidKey, dfResid))
	return nil
}

// solveQR factorizes X and solves for beta, returning the rank of X.
func solveQR(X *mat.Dense, y *mat.VecDense, beta *mat.VecDense) (int, error) {
	_, p := X.Dims()

	var qr mat.QR
	qr.Factorize(X)

	var r mat.Dense
	qr.RTo(&r)

	var maxDiag float64
	for j := 0; j < p; j++ {
		if v := math.Abs(r.At(j, j)); v > maxDiag {
			maxDiag = v
		}
	}
	rank := 0
	for j := 0; j < p; j++ {
		if math.Abs(r.At(j, j)) > rankTol*maxDiag {
			rank++
		}
	}
	if rank < p {
		return rank, errors.NewModelError("OLS.Fit", "singular design matrix", errors.ErrSingularMatrix)
	}

	if err := qr.SolveVecTo(beta, false, y); err != nil {
		// A Condition error still carries a usable solution; anything else
		// means the factorization failed outright.
		if _, ok := err.(mat.Condition); !ok {
			return rank, errors.NewModelError("OLS.Fit", "singular design matrix", errors.ErrSingularMatrix)
		}
	}
	return rank, nil
}

// solveNormal solves the normal equations (X'X)^-1 X'y.
func solveNormal(X *mat.Dense, y *mat.VecDense, beta *mat.VecDense) error {
	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return errors.NewModelError("OLS.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)
	beta.MulVec(&xtxInv, &xty)
	return nil
}

// paramNames derives parameter names from X, using design column names when
// available.
func paramNames(X mat.Matrix, c int, fitIntercept bool) []string {
	var cols []string
	if dm, ok := X.(*design.Matrix); ok {
		cols = dm.Names()
	} else {
		cols = make([]string, c)
		for j := 0; j < c; j++ {
			cols[j] = fmt.Sprintf("x%d", j)
		}
	}

	if !fitIntercept {
		return cols
	}
	names := make([]string, 0, c+1)
	names = append(names, "const")
	names = append(names, cols...)
	return names
}

// Predict returns predictions for X. X must have the same number of columns
// the model was fitted on (excluding the constant).
func (m *OLS) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Predict")
	}

	r, c := X.Dims()
	if c != m.NFeatures_ {
		return nil, errors.NewDimensionError("OLS.Predict", m.NFeatures_, c, 1)
	}

	offset := 0
	intercept := 0.0
	if m.fitIntercept {
		offset = 1
		intercept = m.Params_[0]
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * m.Params_[j+offset]
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// Intercept returns the fitted constant, or 0 for a model without one.
func (m *OLS) Intercept() float64 {
	if !m.IsFitted() || !m.fitIntercept {
		return 0
	}
	return m.Params_[0]
}

// Coefficients returns the fitted slope coefficients, excluding the constant.
func (m *OLS) Coefficients() []float64 {
	if !m.IsFitted() {
		return nil
	}
	offset := 0
	if m.fitIntercept {
		offset = 1
	}
	out := make([]float64, len(m.Params_)-offset)
	copy(out, m.Params_[offset:])
	return out
}

// Coef returns the named parameter estimate.
func (m *OLS) Coef(name string) (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("OLS", "Coef")
	}
	for i, n := range m.ParamNames_ {
		if n == name {
			return m.Params_[i], nil
		}
	}
	return 0, errors.NewValidationError("name", "no such parameter", name)
}

// Score returns the coefficient of determination R² on X, y.
func (m *OLS) Score(X, y mat.Matrix) (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("OLS", "Score")
	}

	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrue := mat.NewVecDense(r, nil)
	yHat := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yHat.SetVec(i, yPred.At(i, 0))
	}

	return metrics.R2Score(yTrue, yHat)
}

// GetParams returns the model's hyperparameters.
func (m *OLS) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": m.fitIntercept,
		"solver":        string(m.solver),
		"copy_x":        m.copyX,
	}
}

// String returns a short description of the model.
func (m *OLS) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("OLS(fit_intercept=%t, solver=%s)", m.fitIntercept, m.solver)
	}
	return fmt.Sprintf("OLS(fit_intercept=%t, solver=%s, n_obs=%d, n_params=%d)",
		m.fitIntercept, m.solver, m.NObs_, len(m.Params_))
}
