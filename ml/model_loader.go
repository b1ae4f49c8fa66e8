package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrArtifactNotFound is returned when the artifact path does not name an existing file.
	ErrArtifactNotFound = errors.New("model artifact not found")
	// ErrArtifactCorrupt is returned for every other load failure.
	ErrArtifactCorrupt = errors.New("model artifact corrupt")
)

const (
	ModelTypeGaussianNB   = "gaussian_nb"
	ModelTypeDecisionTree = "decision_tree"
)

// artifact is the on-disk envelope shared by all model types.
type artifact struct {
	ModelType  string      `json:"model_type"`
	Features   []string    `json:"features,omitempty"`
	Classes    []string    `json:"classes"`
	ClassPrior []float64   `json:"class_prior,omitempty"`
	Theta      [][]float64 `json:"theta,omitempty"`
	Var        [][]float64 `json:"var,omitempty"`
	Nodes      []TreeNode  `json:"nodes,omitempty"`
}

// LoadClassifier reads and validates the artifact at path.
func LoadClassifier(path string) (Classifier, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrArtifactCorrupt, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrArtifactNotFound, path)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactCorrupt, err)
	}

	model, err := decodeClassifier(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactCorrupt, err)
	}
	return model, nil
}

func decodeClassifier(payload []byte) (Classifier, error) {
	var a artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := checkFeatures(a.Features); err != nil {
		return nil, err
	}
	if len(a.Classes) == 0 {
		return nil, errors.New("artifact declares no classes")
	}

	switch a.ModelType {
	case ModelTypeGaussianNB:
		return newGaussianNB(a)
	case ModelTypeDecisionTree:
		return newDecisionTree(a)
	case "":
		return nil, errors.New("artifact has no model_type")
	default:
		return nil, fmt.Errorf("unsupported model type %q", a.ModelType)
	}
}

// checkFeatures accepts artifacts that omit the feature list; a declared
// list must match FeatureOrder.
func checkFeatures(features []string) error {
	if len(features) == 0 {
		return nil
	}
	if len(features) != len(FeatureOrder) {
		return fmt.Errorf("artifact declares %d features, expected %d", len(features), len(FeatureOrder))
	}
	for i, name := range features {
		if name != FeatureOrder[i] {
			return fmt.Errorf("feature %d is %q, expected %q", i, name, FeatureOrder[i])
		}
	}
	return nil
}
