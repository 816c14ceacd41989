// Package dataset ships the fixed wage survey sample the example program and
// tests run against. The sample is embedded in memory and exposed as a gota
// DataFrame; there is no flat-file parsing involved.
package dataset

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the wage sample.
const (
	ColWage    = "wage"    // average hourly earnings, USD
	ColLogWage = "lwage"   // log of wage
	ColEduc    = "educ"    // years of education
	ColExper   = "exper"   // years of labor market experience
	ColTenure  = "tenure"  // years with current employer
	ColGender  = "gender"  // "male" / "female"
	ColMarital = "marital" // "married" / "single"
)

// Gender levels.
const (
	Male   = "male"
	Female = "female"
)

// Marital levels.
const (
	Married = "married"
	Single  = "single"
)

var (
	wage = []float64{
		8.75, 12.10, 6.40, 15.30, 9.86, 18.20, 7.45, 11.25, 5.90, 13.75,
		10.60, 16.40, 4.95, 9.10, 6.75, 12.85, 8.20, 14.60, 5.35, 10.05,
		7.90, 19.45, 6.10, 11.80, 9.30, 17.10, 5.60, 13.20, 8.55, 15.95,
		4.50, 10.90, 7.15, 12.40, 6.85, 16.85, 5.15, 9.65, 8.05, 14.10,
		6.30, 11.50, 7.70, 13.55, 5.80, 10.35, 9.50, 18.75,
	}
	educ = []int{
		12, 14, 10, 16, 12, 18, 11, 14, 9, 16,
		13, 17, 8, 12, 10, 15, 12, 16, 9, 13,
		11, 18, 10, 14, 12, 17, 9, 15, 12, 16,
		8, 13, 11, 14, 10, 17, 9, 12, 11, 16,
		10, 14, 11, 15, 9, 13, 12, 18,
	}
	exper = []int{
		10, 8, 22, 6, 15, 12, 18, 9, 30, 7,
		11, 5, 35, 14, 20, 8, 12, 10, 28, 13,
		16, 4, 24, 9, 14, 11, 31, 6, 17, 8,
		38, 12, 19, 10, 23, 7, 29, 15, 21, 9,
		26, 11, 18, 8, 33, 13, 16, 5,
	}
	tenure = []int{
		4, 3, 8, 2, 7, 6, 5, 4, 12, 3,
		6, 2, 10, 5, 7, 4, 6, 5, 9, 4,
		8, 1, 7, 3, 5, 6, 11, 2, 7, 4,
		13, 5, 6, 4, 9, 3, 10, 6, 8, 4,
		9, 5, 6, 3, 12, 5, 7, 2,
	}
	gender = []string{
		Male, Male, Male, Male, Male, Male, Male, Male, Male, Male,
		Male, Male, Female, Female, Female, Female, Female, Female, Female, Female,
		Female, Male, Female, Male, Male, Male, Female, Male, Male, Male,
		Female, Female, Female, Male, Female, Male, Female, Female, Female, Male,
		Female, Male, Female, Male, Female, Female, Male, Male,
	}
	marital = []string{
		Married, Married, Married, Married, Married, Married, Single, Single, Married, Married,
		Married, Married, Married, Married, Married, Married, Single, Single, Married, Married,
		Single, Married, Married, Single, Married, Married, Married, Single, Married, Married,
		Married, Single, Single, Single, Married, Married, Married, Single, Single, Single,
		Married, Single, Single, Married, Married, Single, Single, Married,
	}
)

// Wage returns the embedded wage survey sample as a fresh DataFrame. Each call
// returns an independent copy so callers can mutate freely.
func Wage() dataframe.DataFrame {
	lwage := make([]float64, len(wage))
	for i, w := range wage {
		lwage[i] = math.Log(w)
	}

	return dataframe.New(
		series.New(wage, series.Float, ColWage),
		series.New(lwage, series.Float, ColLogWage),
		series.New(educ, series.Int, ColEduc),
		series.New(exper, series.Int, ColExper),
		series.New(tenure, series.Int, ColTenure),
		series.New(gender, series.String, ColGender),
		series.New(marital, series.String, ColMarital),
	)
}

// NumRows is the number of observations in the sample.
func NumRows() int {
	return len(wage)
}
