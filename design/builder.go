package design

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/goecon/dummyreg/core/model"
	"github.com/goecon/dummyreg/core/parallel"
	"github.com/goecon/dummyreg/pkg/errors"
	"github.com/goecon/dummyreg/pkg/log"
	"github.com/goecon/dummyreg/preprocessing"
)

// jointSep joins level combinations for Cells terms. Control character so it
// cannot collide with real level strings.
const jointSep = "\x1f"

// parallelThreshold is the row count above which matrix materialization runs
// in parallel.
const parallelThreshold = 1000

// Builder assembles a named design matrix from a DataFrame according to a
// list of terms. Categorical levels, reference levels and scaling statistics
// are learned at Fit; Transform materializes the matrix and rejects levels
// that were not seen during Fit.
//
// The builder never emits an intercept column itself: the linear estimators
// add the constant. The intercept option only controls dummy coding — with an
// intercept (the default) every categorical main effect drops its reference
// level; without one, categorical main effects keep all levels.
type Builder struct {
	model.BaseEstimator

	intercept bool
	terms     []Term

	encoders map[string]*preprocessing.OneHotEncoder // per categorical column
	cellEncs map[string]*preprocessing.OneHotEncoder // per Cells term key
	scalers  map[string]*preprocessing.StandardScaler

	specs []termSpec
	names []string
}

// Option configures a Builder.
type Option func(*Builder)

// WithIntercept declares whether the downstream model will include an
// intercept. Defaults to true.
func WithIntercept(intercept bool) Option {
	return func(b *Builder) {
		b.intercept = intercept
	}
}

// NewBuilder creates a Builder for the given terms.
func NewBuilder(terms []Term, opts ...Option) *Builder {
	b := &Builder{
		intercept: true,
		terms:     terms,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// termSpec is the fitted expansion of one term: its output columns and, per
// column, the factors whose product fills it.
type termSpec struct {
	term Term
	cols []colSpec
}

type colSpec struct {
	name    string
	factors []factorRef
}

// factorRef points one column factor at its data source. Exactly one of
// numericCol, catCol and joint is set.
type factorRef struct {
	numericCol  string
	standardize bool

	catCol string
	level  string

	joint      []string // Cells source columns
	jointLevel string
}

// Fit learns categorical levels and scaling statistics from df and fixes the
// design-matrix column layout.
func (b *Builder) Fit(df dataframe.DataFrame) error {
	if df.Err != nil {
		return errors.NewModelError("Builder.Fit", "invalid dataframe", df.Err)
	}
	if len(b.terms) == 0 {
		return errors.NewValidationError("terms", "at least one term is required", len(b.terms))
	}
	if df.Nrow() == 0 {
		return errors.NewModelError("Builder.Fit", "empty data", errors.ErrEmptyData)
	}

	b.encoders = make(map[string]*preprocessing.OneHotEncoder)
	b.cellEncs = make(map[string]*preprocessing.OneHotEncoder)
	b.scalers = make(map[string]*preprocessing.StandardScaler)
	b.specs = nil
	b.names = nil

	for _, t := range b.terms {
		spec, err := b.fitTerm(df, t)
		if err != nil {
			return err
		}
		b.specs = append(b.specs, spec)
		for _, c := range spec.cols {
			b.names = append(b.names, c.name)
		}
	}

	if len(b.names) == 0 {
		return errors.NewValueError("Builder.Fit",
			"terms expand to no design columns (single-level categoricals only?)")
	}

	b.SetFitted()
	slog.Debug("design builder fitted",
		slog.String(log.ModelNameKey, "Builder"),
		slog.String(log.OperationKey, "fit"),
		slog.Int(log.SamplesKey, df.Nrow()),
		slog.Int(log.FeaturesKey, len(b.names)))
	return nil
}

func (b *Builder) fitTerm(df dataframe.DataFrame, t Term) (termSpec, error) {
	for _, col := range t.columns() {
		if !hasColumn(df, col) {
			return termSpec{}, errors.NewValidationError("column", "column not found in dataframe", col)
		}
	}

	switch t.kind {
	case numericKind:
		if err := b.fitNumeric(df, t); err != nil {
			return termSpec{}, err
		}
		return termSpec{term: t, cols: []colSpec{{
			name:    t.String(),
			factors: []factorRef{{numericCol: t.col, standardize: t.standardize}},
		}}}, nil

	case categoricalKind:
		enc, err := b.fitCategorical(df, t)
		if err != nil {
			return termSpec{}, err
		}
		levels := enc.EncodedLevels()
		if !b.intercept {
			// Without an intercept the main effect keeps every level.
			levels = enc.Categories
		}
		cols := make([]colSpec, 0, len(levels))
		for _, level := range levels {
			cols = append(cols, colSpec{
				name:    dummyName(t.col, level),
				factors: []factorRef{{catCol: t.col, level: level}},
			})
		}
		return termSpec{term: t, cols: cols}, nil

	case interactionKind:
		if len(t.factors) < 2 {
			return termSpec{}, errors.NewValidationError("factors",
				"an interaction needs at least two factors", len(t.factors))
		}
		expansions := make([][]colSpec, len(t.factors))
		for i, f := range t.factors {
			exp, err := b.fitFactor(df, f)
			if err != nil {
				return termSpec{}, err
			}
			expansions[i] = exp
		}
		return termSpec{term: t, cols: crossColumns(expansions)}, nil

	case cellsKind:
		return b.fitCells(df, t)
	}

	return termSpec{}, errors.NewValidationError("term", "unknown term kind", t.kind)
}

// fitFactor expands a single interaction factor. Categorical factors always
// drop their reference level inside interactions.
func (b *Builder) fitFactor(df dataframe.DataFrame, f Term) ([]colSpec, error) {
	switch f.kind {
	case numericKind:
		if err := b.fitNumeric(df, f); err != nil {
			return nil, err
		}
		return []colSpec{{
			name:    f.String(),
			factors: []factorRef{{numericCol: f.col, standardize: f.standardize}},
		}}, nil
	case categoricalKind:
		enc, err := b.fitCategorical(df, f)
		if err != nil {
			return nil, err
		}
		cols := make([]colSpec, 0, enc.NumColumns())
		for _, level := range enc.EncodedLevels() {
			cols = append(cols, colSpec{
				name:    dummyName(f.col, level),
				factors: []factorRef{{catCol: f.col, level: level}},
			})
		}
		return cols, nil
	}
	return nil, errors.NewValidationError("factors",
		"interaction factors must be Numeric or Categorical terms", f.String())
}

func (b *Builder) fitNumeric(df dataframe.DataFrame, t Term) error {
	vals, err := numericColumn(df, t.col, "Builder.Fit")
	if err != nil {
		return err
	}
	if err := errors.CheckValues("Builder.Fit: column "+t.col, vals); err != nil {
		return err
	}
	if t.standardize {
		if _, ok := b.scalers[t.col]; !ok {
			scaler := preprocessing.NewStandardScalerDefault()
			if err := scaler.Fit(mat.NewDense(len(vals), 1, vals)); err != nil {
				return err
			}
			b.scalers[t.col] = scaler
		}
	}
	return nil
}

func (b *Builder) fitCategorical(df dataframe.DataFrame, t Term) (*preprocessing.OneHotEncoder, error) {
	if enc, ok := b.encoders[t.col]; ok {
		if t.reference != "" && enc.Reference != t.reference {
			return nil, errors.NewValidationError("reference",
				fmt.Sprintf("column %q appears in multiple terms with conflicting reference levels", t.col),
				t.reference)
		}
		return enc, nil
	}

	enc := preprocessing.NewOneHotEncoder()
	enc.Reference = t.reference
	if err := enc.Fit(df.Col(t.col).Records()); err != nil {
		return nil, err
	}
	b.encoders[t.col] = enc
	return enc, nil
}

func (b *Builder) fitCells(df dataframe.DataFrame, t Term) (termSpec, error) {
	if len(t.cols) < 2 {
		return termSpec{}, errors.NewValidationError("cols",
			"Cells needs at least two columns", len(t.cols))
	}

	keys := jointRecords(df, t.cols)
	enc := preprocessing.NewOneHotEncoder()
	if err := enc.Fit(keys); err != nil {
		return termSpec{}, err
	}
	b.cellEncs[cellsKey(t.cols)] = enc

	levels := enc.EncodedLevels()
	if !b.intercept {
		levels = enc.Categories
	}
	cols := make([]colSpec, 0, len(levels))
	for _, key := range levels {
		cols = append(cols, colSpec{
			name:    cellName(t.cols, key),
			factors: []factorRef{{joint: t.cols, jointLevel: key}},
		})
	}
	return termSpec{term: t, cols: cols}, nil
}

// Transform materializes the design matrix for df using the layout fixed at
// Fit time.
func (b *Builder) Transform(df dataframe.DataFrame) (*Matrix, error) {
	if !b.IsFitted() {
		return nil, errors.NewNotFittedError("Builder", "Transform")
	}
	if df.Err != nil {
		return nil, errors.NewModelError("Builder.Transform", "invalid dataframe", df.Err)
	}
	n := df.Nrow()
	if n == 0 {
		return nil, errors.NewModelError("Builder.Transform", "empty data", errors.ErrEmptyData)
	}

	plans, err := b.columnPlans(df, n)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(n, len(b.names), nil)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j, p := range plans {
				out.Set(i, j, p.value(i))
			}
		}
	})

	if err := errors.CheckMatrix("Builder.Transform", out, n, len(b.names)); err != nil {
		return nil, err
	}

	return NewMatrix(out, b.names)
}

// FitTransform fits the builder and materializes the matrix for the same
// data.
func (b *Builder) FitTransform(df dataframe.DataFrame) (*Matrix, error) {
	if err := b.Fit(df); err != nil {
		return nil, err
	}
	return b.Transform(df)
}

// ColumnNames returns the design-matrix column names fixed at Fit.
func (b *Builder) ColumnNames() []string {
	if !b.IsFitted() {
		return nil
	}
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// NumColumns returns the design-matrix width fixed at Fit.
func (b *Builder) NumColumns() int {
	return len(b.names)
}

// Intercept reports whether the builder codes for a model with an intercept.
func (b *Builder) Intercept() bool {
	return b.intercept
}

// GetParams returns the builder's hyperparameters.
func (b *Builder) GetParams() map[string]interface{} {
	terms := make([]string, len(b.terms))
	for i, t := range b.terms {
		terms[i] = t.String()
	}
	return map[string]interface{}{
		"intercept": b.intercept,
		"terms":     terms,
	}
}

// colPlan resolves one output column to its data sources. value computes the
// product of all factor contributions for a row.
type colPlan struct {
	nums [][]float64
	cats []catIndicator
}

type catIndicator struct {
	records []string
	level   string
}

func (p colPlan) value(i int) float64 {
	v := 1.0
	for _, rec := range p.cats {
		if rec.records[i] != rec.level {
			return 0
		}
	}
	for _, vals := range p.nums {
		v *= vals[i]
	}
	return v
}

// columnPlans resolves every fitted column against df, validating categorical
// levels before the parallel fill so the fill itself cannot fail.
func (b *Builder) columnPlans(df dataframe.DataFrame, n int) ([]colPlan, error) {
	numCache := make(map[string][]float64)
	recCache := make(map[string][]string)
	jointCache := make(map[string][]string)

	plans := make([]colPlan, 0, len(b.names))
	for _, spec := range b.specs {
		for _, c := range spec.cols {
			var p colPlan
			for _, f := range c.factors {
				switch {
				case f.numericCol != "":
					vals, err := b.resolveNumeric(df, f, numCache)
					if err != nil {
						return nil, err
					}
					p.nums = append(p.nums, vals)
				case f.catCol != "":
					recs, err := b.resolveRecords(df, f.catCol, recCache)
					if err != nil {
						return nil, err
					}
					p.cats = append(p.cats, catIndicator{records: recs, level: f.level})
				default:
					recs, err := b.resolveJoint(df, f.joint, jointCache)
					if err != nil {
						return nil, err
					}
					p.cats = append(p.cats, catIndicator{records: recs, level: f.jointLevel})
				}
			}
			plans = append(plans, p)
		}
	}
	return plans, nil
}

func (b *Builder) resolveNumeric(df dataframe.DataFrame, f factorRef, cache map[string][]float64) ([]float64, error) {
	key := f.numericCol
	if f.standardize {
		key = "scale(" + key + ")"
	}
	if vals, ok := cache[key]; ok {
		return vals, nil
	}

	vals, err := numericColumn(df, f.numericCol, "Builder.Transform")
	if err != nil {
		return nil, err
	}
	if f.standardize {
		scaler, ok := b.scalers[f.numericCol]
		if !ok {
			return nil, errors.NewValueError("Builder.Transform",
				fmt.Sprintf("no scaler fitted for column %q", f.numericCol))
		}
		scaled, err := scaler.Transform(mat.NewDense(len(vals), 1, vals))
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(vals))
		mat.Col(out, 0, scaled)
		vals = out
	}
	cache[key] = vals
	return vals, nil
}

func (b *Builder) resolveRecords(df dataframe.DataFrame, col string, cache map[string][]string) ([]string, error) {
	if recs, ok := cache[col]; ok {
		return recs, nil
	}
	if !hasColumn(df, col) {
		return nil, errors.NewValidationError("column", "column not found in dataframe", col)
	}

	recs := df.Col(col).Records()
	enc := b.encoders[col]
	for i, r := range recs {
		if !enc.Contains(r) {
			return nil, errors.Wrapf(errors.ErrUnknownCategory,
				"column %q row %d: level %q", col, i, r)
		}
	}
	cache[col] = recs
	return recs, nil
}

func (b *Builder) resolveJoint(df dataframe.DataFrame, cols []string, cache map[string][]string) ([]string, error) {
	key := cellsKey(cols)
	if recs, ok := cache[key]; ok {
		return recs, nil
	}
	for _, col := range cols {
		if !hasColumn(df, col) {
			return nil, errors.NewValidationError("column", "column not found in dataframe", col)
		}
	}

	recs := jointRecords(df, cols)
	enc := b.cellEncs[key]
	for i, r := range recs {
		if !enc.Contains(r) {
			return nil, errors.Wrapf(errors.ErrUnknownCategory,
				"cell %s row %d: combination %q not observed during fit",
				strings.Join(cols, ":"), i, strings.ReplaceAll(r, jointSep, "."))
		}
	}
	cache[key] = recs
	return recs, nil
}

// crossColumns forms the cartesian product of the factor expansions, leftmost
// factor varying slowest. Names join with ":".
func crossColumns(expansions [][]colSpec) []colSpec {
	out := []colSpec{{}}
	for _, exp := range expansions {
		next := make([]colSpec, 0, len(out)*len(exp))
		for _, acc := range out {
			for _, c := range exp {
				name := c.name
				if acc.name != "" {
					name = acc.name + ":" + c.name
				}
				factors := make([]factorRef, 0, len(acc.factors)+len(c.factors))
				factors = append(factors, acc.factors...)
				factors = append(factors, c.factors...)
				next = append(next, colSpec{name: name, factors: factors})
			}
		}
		out = next
	}
	return out
}

func dummyName(col, level string) string {
	return fmt.Sprintf("%s[%s]", col, level)
}

func cellName(cols []string, key string) string {
	levels := strings.Split(key, jointSep)
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = dummyName(col, levels[i])
	}
	return strings.Join(parts, ":")
}

func cellsKey(cols []string) string {
	return strings.Join(cols, jointSep)
}

func jointRecords(df dataframe.DataFrame, cols []string) []string {
	recs := make([][]string, len(cols))
	for i, col := range cols {
		recs[i] = df.Col(col).Records()
	}

	n := df.Nrow()
	keys := make([]string, n)
	parts := make([]string, len(cols))
	for i := 0; i < n; i++ {
		for j := range cols {
			parts[j] = recs[j][i]
		}
		keys[i] = strings.Join(parts, jointSep)
	}
	return keys
}

func hasColumn(df dataframe.DataFrame, col string) bool {
	for _, name := range df.Names() {
		if name == col {
			return true
		}
	}
	return false
}

// numericColumn extracts a column as float64 values. Integer columns are
// widened with a DataConversionWarning; string and bool columns are rejected.
func numericColumn(df dataframe.DataFrame, col, op string) ([]float64, error) {
	if !hasColumn(df, col) {
		return nil, errors.NewValidationError("column", "column not found in dataframe", col)
	}

	s := df.Col(col)
	switch s.Type() {
	case series.Float:
	case series.Int:
		errors.Warn(errors.NewDataConversionWarning("int", "float64",
			fmt.Sprintf("%s: column %q used as a continuous regressor", op, col)))
	default:
		return nil, errors.NewValidationError("column",
			fmt.Sprintf("column is %s, not numeric; declare it Categorical instead", s.Type()), col)
	}

	return s.Float(), nil
}
