// Package dummyreg provides regression with dummy variables for Go,
// covering design-matrix construction from categorical data and ordinary
// least squares with full inference output.
//
// The library turns named data frame columns into numeric regressor
// matrices the way an econometrics package would: one-hot dummies with a
// dropped reference level, joint category cells, and interactions between
// categorical and continuous variables. A closed-form OLS solver then
// reports coefficients, standard errors, t statistics, p-values, R² and
// the model F test.
//
// # Quick Start
//
// Regress log wage on a gender dummy and years of education:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/goecon/dummyreg/dataset"
//	    "github.com/goecon/dummyreg/design"
//	    "github.com/goecon/dummyreg/linear"
//	)
//
//	func main() {
//	    df := dataset.Wage()
//
//	    b := design.NewBuilder([]design.Term{
//	        design.Categorical("gender"),
//	        design.Numeric("educ"),
//	    })
//	    X, err := b.FitTransform(df)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    y, err := design.Response(df, "lwage")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model := linear.NewOLS()
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    s, err := model.Summary()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(s)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - design: terms, dummy coding and design-matrix assembly
//   - linear: ordinary least squares with inference and persistence
//   - preprocessing: one-hot encoding and standardization primitives
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R²)
//   - dataset: the embedded wage sample used throughout the examples
//   - core/model: estimator interfaces, fitted state and persistence format
//   - core/parallel: parallel processing utilities
//   - pkg/errors: error types and the warning system
//   - pkg/log: structured logging setup
//
// # Dummy Coding
//
// With an intercept in the model, each categorical term drops one
// reference level so the design matrix stays full rank. The reference is
// the lexicographically first level unless overridden:
//
//	design.Categorical("gender").Ref("male")
//
// Interactions multiply the expanded columns of their factors, and
// Cells codes the joint combinations of several categorical columns as
// one set of dummies.
//
// # Performance
//
// Matrix assembly and intercept augmentation parallelize automatically
// for datasets with more than 1000 rows.
package dummyreg
