package ml

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadClassifierMissingFile(t *testing.T) {
	model, err := LoadClassifier(filepath.Join(t.TempDir(), "NBClassifier.json"))
	require.ErrorIs(t, err, ErrArtifactNotFound)
	assert.Nil(t, model)
}

func TestLoadClassifierDirectory(t *testing.T) {
	model, err := LoadClassifier(t.TempDir())
	require.ErrorIs(t, err, ErrArtifactNotFound)
	assert.Nil(t, model)
}

func TestLoadClassifierFixtures(t *testing.T) {
	for _, name := range []string{"gaussian_nb.json", "decision_tree.json"} {
		t.Run(name, func(t *testing.T) {
			model, err := LoadClassifier(filepath.Join("testdata", name))
			require.NoError(t, err)
			require.NotNil(t, model)
			labeled, ok := model.(Labeled)
			require.True(t, ok)
			assert.Equal(t, []string{"rice", "maize", "chickpea"}, labeled.Classes())
		})
	}
}

func TestLoadClassifierCorrupt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "\x80\x04\x95pickle"},
		{"empty", ""},
		{"missing type", `{"classes":["rice"]}`},
		{"unknown type", `{"model_type":"svm","classes":["rice"]}`},
		{"no classes", `{"model_type":"gaussian_nb","classes":[]}`},
		{"feature order", `{"model_type":"gaussian_nb","features":["P","N","K","temperature","humidity","ph","rainfall"],"classes":["rice"],"class_prior":[1],"theta":[[1,1,1,1,1,1,1]],"var":[[1,1,1,1,1,1,1]]}`},
		{"prior length", `{"model_type":"gaussian_nb","classes":["rice","maize"],"class_prior":[1],"theta":[[1],[1]],"var":[[1],[1]]}`},
		{"zero variance", `{"model_type":"gaussian_nb","classes":["rice"],"class_prior":[1],"theta":[[1,2]],"var":[[1,0]]}`},
		{"ragged theta", `{"model_type":"gaussian_nb","classes":["rice","maize"],"class_prior":[0.5,0.5],"theta":[[1,2],[1]],"var":[[1,1],[1,1]]}`},
		{"zero priors", `{"model_type":"gaussian_nb","classes":["rice"],"class_prior":[0],"theta":[[1]],"var":[[1]]}`},
		{"tree without nodes", `{"model_type":"decision_tree","classes":["rice"]}`},
		{"tree leaf out of range", `{"model_type":"decision_tree","classes":["rice"],"nodes":[{"is_leaf":true,"class_label":3}]}`},
		{"tree cycle", `{"model_type":"decision_tree","classes":["rice"],"nodes":[{"feature_idx":0,"left_child":0,"right_child":0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := LoadClassifier(writeArtifact(t, tt.body))
			require.ErrorIs(t, err, ErrArtifactCorrupt)
			assert.NotErrorIs(t, err, ErrArtifactNotFound)
			assert.Nil(t, model)
		})
	}
}

func TestGaussianNBPredict(t *testing.T) {
	model, err := LoadClassifier(filepath.Join("testdata", "gaussian_nb.json"))
	require.NoError(t, err)

	labels, err := model.Predict([][]float64{
		{79.89, 47.58, 39.87, 23.69, 82.27, 6.43, 236.18},
		{77.76, 48.44, 19.79, 22.39, 65.09, 6.25, 84.77},
		{40, 68, 80, 19, 17, 7.3, 80},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rice", "maize", "chickpea"}, labels)
}

func TestGaussianNBPredictShapeMismatch(t *testing.T) {
	model, err := LoadClassifier(filepath.Join("testdata", "gaussian_nb.json"))
	require.NoError(t, err)

	_, err = model.Predict([][]float64{{50, 50, 50}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model expects 7")
}

func TestGaussianNBPredictNaN(t *testing.T) {
	model, err := LoadClassifier(filepath.Join("testdata", "gaussian_nb.json"))
	require.NoError(t, err)

	_, err = model.Predict([][]float64{{math.NaN(), 50, 50, 25, 70, 6.5, 100}})
	require.Error(t, err)
}

func TestDecisionTreePredict(t *testing.T) {
	model, err := LoadClassifier(filepath.Join("testdata", "decision_tree.json"))
	require.NoError(t, err)

	labels, err := model.Predict([][]float64{
		{80, 48, 40, 23.7, 82.3, 6.4, 236.2},
		{78, 48, 20, 22.4, 65.1, 6.2, 84.8},
		{40, 68, 80, 18.9, 16.9, 7.3, 80.1},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rice", "maize", "chickpea"}, labels)

	_, err = model.Predict([][]float64{{1, 2}})
	require.Error(t, err)
}
