package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestBaseEstimator_FittedState(t *testing.T) {
	var e BaseEstimator

	if e.IsFitted() {
		t.Error("new estimator should not be fitted")
	}

	e.SetFitted()
	if !e.IsFitted() {
		t.Error("estimator should be fitted after SetFitted")
	}

	e.Reset()
	if e.IsFitted() {
		t.Error("estimator should not be fitted after Reset")
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	type payload struct {
		Mean []float64 `json:"mean"`
	}

	var buf bytes.Buffer
	want := payload{Mean: []float64{1.5, -2.25}}
	if err := WriteDocument(&buf, "StandardScaler", want); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	raw, err := ReadDocument(&buf, "StandardScaler")
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}

	var got payload
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal params: %v", err)
	}
	if len(got.Mean) != 2 || got.Mean[0] != 1.5 || got.Mean[1] != -2.25 {
		t.Errorf("params = %+v, want %+v", got, want)
	}
}

func TestReadDocument_NameMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, "OLS", struct{}{}); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	if _, err := ReadDocument(&buf, "StandardScaler"); err == nil {
		t.Error("expected error for estimator name mismatch")
	}
}

func TestReadDocument_BadVersion(t *testing.T) {
	doc := `{"model_spec":{"name":"OLS","format_version":"0.0"},"params":{}}`
	if _, err := ReadDocument(strings.NewReader(doc), "OLS"); err == nil {
		t.Error("expected error for unsupported format version")
	}
}
