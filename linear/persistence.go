package linear

import (
	"io"
	"os"

	"github.com/goecon/dummyreg/core/model"
	"github.com/goecon/dummyreg/pkg/errors"

	"encoding/json"
)

const documentName = "OLS"

// olsParams is the JSON payload persisted for a fitted model.
type olsParams struct {
	FitIntercept bool   `json:"fit_intercept"`
	Solver       string `json:"solver"`

	ParamNames []string  `json:"param_names"`
	Params     []float64 `json:"params"`
	StdErrors  []float64 `json:"std_errors"`
	TValues    []float64 `json:"t_values"`
	PValues    []float64 `json:"p_values"`

	R2      float64 `json:"r2"`
	AdjR2   float64 `json:"adj_r2"`
	FStat   float64 `json:"f_stat"`
	FPValue float64 `json:"f_p_value"`
	Sigma   float64 `json:"sigma"`
	RSS     float64 `json:"rss"`
	TSS     float64 `json:"tss"`
	Rank    int     `json:"rank"`

	NObs      int `json:"n_obs"`
	NFeatures int `json:"n_features"`
	DFResid   int `json:"df_resid"`
	DFModel   int `json:"df_model"`
}

// Save writes the fitted model to a JSON document file.
func (m *OLS) Save(filename string) error {
	if !m.IsFitted() {
		return errors.NewNotFittedError("OLS", "Save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	return m.SaveWriter(file)
}

// SaveWriter writes the fitted model as a JSON document.
func (m *OLS) SaveWriter(w io.Writer) error {
	if !m.IsFitted() {
		return errors.NewNotFittedError("OLS", "SaveWriter")
	}

	params := olsParams{
		FitIntercept: m.fitIntercept,
		Solver:       string(m.solver),
		ParamNames:   m.ParamNames_,
		Params:       m.Params_,
		StdErrors:    m.StdErrors_,
		TValues:      m.TValues_,
		PValues:      m.PValues_,
		R2:           m.R2_,
		AdjR2:        m.AdjR2_,
		FStat:        m.FStat_,
		FPValue:      m.FPValue_,
		Sigma:        m.Sigma_,
		RSS:          m.RSS_,
		TSS:          m.TSS_,
		Rank:         m.Rank_,
		NObs:         m.NObs_,
		NFeatures:    m.NFeatures_,
		DFResid:      m.DFResid_,
		DFModel:      m.DFModel_,
	}

	return model.WriteDocument(w, documentName, params)
}

// Load reads a fitted model from a JSON document file.
func (m *OLS) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return m.LoadReader(file)
}

// LoadReader restores a fitted model from a JSON document. Training data
// (residuals, fitted values) is not persisted, so those fields stay empty.
func (m *OLS) LoadReader(r io.Reader) error {
	raw, err := model.ReadDocument(r, documentName)
	if err != nil {
		return err
	}

	var params olsParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return errors.Wrap(err, "failed to unmarshal OLS params")
	}

	if len(params.Params) == 0 || len(params.Params) != len(params.ParamNames) {
		return errors.NewValidationError("params",
			"parameter vector and names disagree", len(params.Params))
	}

	m.fitIntercept = params.FitIntercept
	m.solver = Solver(params.Solver)
	m.ParamNames_ = params.ParamNames
	m.Params_ = params.Params
	m.StdErrors_ = params.StdErrors
	m.TValues_ = params.TValues
	m.PValues_ = params.PValues
	m.R2_ = params.R2
	m.AdjR2_ = params.AdjR2
	m.FStat_ = params.FStat
	m.FPValue_ = params.FPValue
	m.Sigma_ = params.Sigma
	m.RSS_ = params.RSS
	m.TSS_ = params.TSS
	m.Rank_ = params.Rank
	m.NObs_ = params.NObs
	m.NFeatures_ = params.NFeatures
	m.DFResid_ = params.DFResid
	m.DFModel_ = params.DFModel
	m.Residuals_ = nil
	m.Fitted_ = nil

	m.SetFitted()
	return nil
}
