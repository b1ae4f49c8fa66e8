package ml

// FeatureOrder is the column order every artifact is trained against.
// Rows passed to Predict must follow it exactly.
var FeatureOrder = []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// Classifier maps feature rows to class labels, one label per row.
type Classifier interface {
	Predict(rows [][]float64) ([]string, error)
}

// Labeled is implemented by classifiers that know their label set.
type Labeled interface {
	Classes() []string
}
