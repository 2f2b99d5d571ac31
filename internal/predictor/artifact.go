package predictor

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"StockLens/internal/model"
)

// ModelTypeLinear is the only supported artifact type.
const ModelTypeLinear = "linear_regression"

// Artifact is the on-disk model description. JSON artifacts parse as YAML.
type Artifact struct {
	Type         string    `yaml:"type"`
	Features     []string  `yaml:"features"`
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
}

// LoadModel reads and checks a model artifact against the moving-average
// windows the features are derived with. The file is opened and closed here;
// no handle is kept.
func LoadModel(path string, windows ...int) (*LinearModel, error) {
	const op = "load model"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.Error{Kind: model.KindModelLoad, Op: op, Err: err}
	}
	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, model.Errorf(model.KindModelLoad, op, "parse %s: %v", path, err)
	}
	return a.Model(windows...)
}

// Model validates the artifact shape and builds the regression. The artifact's
// feature names must match FeatureNames(windows) in order.
func (a *Artifact) Model(windows ...int) (*LinearModel, error) {
	const op = "load model"
	want := FeatureNames(windows)
	if a.Type != ModelTypeLinear {
		return nil, model.Errorf(model.KindModelLoad, op, "unsupported model type %q", a.Type)
	}
	if len(a.Features) != len(want) {
		return nil, model.Errorf(model.KindModelLoad, op, "expected features %v, got %v", want, a.Features)
	}
	for i, name := range a.Features {
		if !strings.EqualFold(strings.TrimSpace(name), want[i]) {
			return nil, model.Errorf(model.KindModelLoad, op, "feature %d is %q, want %q", i, name, want[i])
		}
	}
	if len(a.Coefficients) != len(want) {
		return nil, model.Errorf(model.KindModelLoad, op, "expected %d coefficients, got %d", len(want), len(a.Coefficients))
	}
	coef := make([]float64, len(a.Coefficients))
	copy(coef, a.Coefficients)
	return &LinearModel{Intercept: a.Intercept, Coefficients: coef}, nil
}
