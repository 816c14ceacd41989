package log

// Standard attribute keys used by the estimators in this library. Keys follow
// a hierarchical naming convention ("model.name", "data.samples") so logs can
// be filtered per component.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "OLS", "OneHotEncoder", "Builder"
	ModelNameKey = "model.name"

	// OperationKey names the estimator operation being performed.
	// Standard values: "fit", "predict", "transform", "summary"
	OperationKey = "op"

	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of design-matrix columns.
	FeaturesKey = "data.features"

	// RankKey is the computed rank of the design matrix.
	RankKey = "model.rank"

	// DFResidKey is the residual degrees of freedom after a fit.
	DFResidKey = "model.df_resid"
)
