package model

import (
	"encoding/json"
	"io"

	"github.com/goecon/dummyreg/pkg/errors"
)

// FormatVersion is the current version of the JSON model document format.
const FormatVersion = "1.0"

// Document is the versioned JSON envelope used to persist fitted estimators.
type Document struct {
	Spec   DocumentSpec    `json:"model_spec"`
	Params json.RawMessage `json:"params"`
}

// DocumentSpec identifies the estimator stored in a Document.
type DocumentSpec struct {
	Name          string `json:"name"`
	FormatVersion string `json:"format_version"`
}

// WriteDocument marshals params into a Document for the named estimator and
// writes it as indented JSON.
func WriteDocument(w io.Writer, name string, params interface{}) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal params")
	}

	doc := Document{
		Spec: DocumentSpec{
			Name:          name,
			FormatVersion: FormatVersion,
		},
		Params: paramsJSON,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&doc); err != nil {
		return errors.Wrap(err, "failed to encode model document")
	}

	return nil
}

// ReadDocument decodes a Document and returns its raw params payload after
// checking the estimator name.
func ReadDocument(r io.Reader, wantName string) (json.RawMessage, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode model document")
	}

	if doc.Spec.Name != wantName {
		return nil, errors.NewValidationError("model_spec.name",
			"document holds a different estimator than requested", doc.Spec.Name)
	}

	if doc.Spec.FormatVersion != FormatVersion {
		return nil, errors.NewValidationError("model_spec.format_version",
			"unsupported format version", doc.Spec.FormatVersion)
	}

	return doc.Params, nil
}
