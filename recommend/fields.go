// Package recommend implements the crop recommendation interaction: the
// bounded input controls, the feature record handed to the classifier, the
// load-once classifier service and the per-user session loop that the web
// and terminal front-ends drive.
package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldID identifies one of the seven input controls. The numeric order is
// the classifier's feature order.
type FieldID int

const (
	Nitrogen FieldID = iota
	Phosphorus
	Potassium
	Temperature
	Humidity
	PH
	Rainfall

	fieldCount
)

// FieldSpec describes a bounded numeric control.
type FieldSpec struct {
	ID       FieldID
	Key      string
	Label    string
	Help     string
	Min      float64
	Max      float64
	Default  float64
	Step     float64
	Decimals int
}

var fieldSpecs = [fieldCount]FieldSpec{
	{ID: Nitrogen, Key: "N", Label: "Nitrogen (N)", Min: 5, Max: 140, Default: 50, Step: 1,
		Help: "Enter the ratio of Nitrogen content in the soil (e.g., 50)"},
	{ID: Phosphorus, Key: "P", Label: "Phosphorus (P)", Min: 5, Max: 145, Default: 50, Step: 1,
		Help: "Enter the ratio of Phosphorus content in the soil (e.g., 50)"},
	{ID: Potassium, Key: "K", Label: "Potassium (K)", Min: 5, Max: 300, Default: 50, Step: 1,
		Help: "Enter the ratio of Potassium content in the soil (e.g., 50)"},
	{ID: Temperature, Key: "temperature", Label: "Temperature (°C)", Min: 9.0, Max: 43.0, Default: 25.0, Step: 0.1, Decimals: 1,
		Help: "Enter the temperature in Celsius (e.g., 25.5)"},
	{ID: Humidity, Key: "humidity", Label: "Humidity (%)", Min: 15.0, Max: 99.0, Default: 70.0, Step: 0.1, Decimals: 1,
		Help: "Enter the relative humidity in % (e.g., 70.0)"},
	{ID: PH, Key: "ph", Label: "pH Level", Min: 3.6, Max: 9.9, Default: 6.5, Step: 0.1, Decimals: 1,
		Help: "Enter the pH value of the soil (e.g., 6.5)"},
	{ID: Rainfall, Key: "rainfall", Label: "Rainfall (mm)", Min: 21.0, Max: 298.0, Default: 100.0, Step: 0.1, Decimals: 1,
		Help: "Enter the rainfall in mm (e.g., 100.0)"},
}

// Fields returns the control specs in feature order.
func Fields() []FieldSpec {
	return append([]FieldSpec(nil), fieldSpecs[:]...)
}

// Spec returns the spec for id. It panics on an unknown id.
func (id FieldID) Spec() FieldSpec {
	return fieldSpecs[id]
}

func (id FieldID) String() string {
	if id < 0 || id >= fieldCount {
		return fmt.Sprintf("FieldID(%d)", int(id))
	}
	return fieldSpecs[id].Key
}

// LookupField resolves a control key such as "N" or "rainfall".
func LookupField(key string) (FieldID, bool) {
	for _, spec := range fieldSpecs {
		if spec.Key == key {
			return spec.ID, true
		}
	}
	return 0, false
}

// Normalize quantizes v to the control precision and clamps it to
// [Min, Max]. ok is false for NaN and infinities, which no control can hold.
func (f FieldSpec) Normalize(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	scale := math.Pow10(f.Decimals)
	v = math.Round(v*scale) / scale
	if v < f.Min {
		v = f.Min
	}
	if v > f.Max {
		v = f.Max
	}
	return v, true
}

// Parse reads user text for this control. The result is not yet normalized.
func (f FieldSpec) Parse(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", f.Label, text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number", f.Label, text)
	}
	return v, nil
}

// Format renders v the way form controls and the echo show it.
func (f FieldSpec) Format(v float64) string {
	return strconv.FormatFloat(v, 'f', f.Decimals, 64)
}
