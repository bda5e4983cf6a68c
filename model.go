package linreg

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-linreg/linearmodel"
	"github.com/goccy/go-json"
)

// Model represents a serializeable format of a fit storing the options, intercept, feature
// weights and fit scores
type Model struct {
	Options   *Options            `json:"options"`
	Intercept float64             `json:"intercept"`
	Weights   []FeatureWeight     `json:"weights"`
	Scores    *linearmodel.Scores `json:"scores,omitempty"`
}

// FeatureWeight is the slope fit for a labelled feature
type FeatureWeight struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// WriteJSON encodes the model as indented json
func (m Model) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// ReadModel decodes a model previously written with WriteJSON
func ReadModel(r io.Reader) (Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Model{}, fmt.Errorf("unable to decode model, %w", err)
	}
	return m, nil
}

// TablePrint writes a human readable summary of the method, intercept, scores and weights
func (m Model) TablePrint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Linear Regression:\n"); err != nil {
		return err
	}
	if m.Options != nil {
		if _, err := fmt.Fprintf(w, "  Method: %s\n", m.Options.Method); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "  Intercept: %.3f\n", m.Intercept); err != nil {
		return err
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "Scores:\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  MAPE: %.3f    MSE: %.3f    R2: %.3f\n",
			m.Scores.MAPE,
			m.Scores.MSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Weights:\n"); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "  Label\tValue\t\n"); err != nil {
		return err
	}
	for _, fw := range m.Weights {
		if _, err := fmt.Fprintf(tbl, "  %s\t%.3f\t\n", fw.Label, fw.Value); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
