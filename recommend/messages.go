package recommend

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"croprec/ml"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	PageTitle     = "🌾 Crop Recommendation System"
	PageSubtitle  = "Enter the soil and weather conditions to get a recommendation for the most suitable crop to cultivate."
	SidebarHeader = "Input Parameters"
	EchoHeader    = "Your Input Parameters"
	ButtonLabel   = "Get Crop Recommendation"

	NotLoadedWarning = "Model is not loaded. Please check the file path and integrity."
	Disclaimer       = "Disclaimer: This recommendation is based on a machine learning model trained on a standard dataset. " +
		"Always consult with local agricultural experts for final decisions."
)

// Capitalize upper-cases the first letter of label and lower-cases the rest.
func Capitalize(label string) string {
	if label == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(label)
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	return upper.String(label[:size]) + lower.String(label[size:])
}

// SuccessMessage is the text of the success panel for a capitalized label.
func SuccessMessage(label string) string {
	return "The recommended crop is: " + label
}

// PredictionFailureMessage is the text of the error panel after a failed prediction.
func PredictionFailureMessage(err error) string {
	var predErr *PredictionError
	if errors.As(err, &predErr) {
		err = predErr.Err
	}
	return fmt.Sprintf("An error occurred during prediction: %v", err)
}

// LoadFailureMessage is the text shown when the classifier could not be loaded.
func LoadFailureMessage(path string, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ml.ErrArtifactNotFound) {
		return fmt.Sprintf("Error: Model file not found at %s. Please make sure the model file is in the correct directory.", path)
	}
	return fmt.Sprintf("An error occurred while loading the model: %v", err)
}
