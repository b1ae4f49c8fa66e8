package recommend

// FeatureRecord is the seven-value input for one prediction request.
type FeatureRecord struct {
	N           int
	P           int
	K           int
	Temperature float64
	Humidity    float64
	PH          float64
	Rainfall    float64
}

// Vector lays the record out as [N, P, K, temperature, humidity, ph, rainfall].
func (r FeatureRecord) Vector() []float64 {
	return []float64{
		float64(r.N),
		float64(r.P),
		float64(r.K),
		r.Temperature,
		r.Humidity,
		r.PH,
		r.Rainfall,
	}
}

// Controls holds the current value of every input control. Values are
// always normalized, so a control never holds an out-of-range value.
type Controls struct {
	values [fieldCount]float64
}

// NewControls returns controls set to their defaults.
func NewControls() Controls {
	var c Controls
	for _, spec := range fieldSpecs {
		c.values[spec.ID] = spec.Default
	}
	return c
}

// Set normalizes v and stores it, returning the value the control now
// holds. Non-finite values leave the control unchanged.
func (c *Controls) Set(id FieldID, v float64) float64 {
	if normalized, ok := id.Spec().Normalize(v); ok {
		c.values[id] = normalized
	}
	return c.values[id]
}

// SetText parses and stores user text. On a parse error the control keeps
// its previous value.
func (c *Controls) SetText(id FieldID, text string) (float64, error) {
	v, err := id.Spec().Parse(text)
	if err != nil {
		return c.values[id], err
	}
	return c.Set(id, v), nil
}

func (c Controls) Value(id FieldID) float64 {
	return c.values[id]
}

// Record builds the feature record for the current control state.
func (c Controls) Record() FeatureRecord {
	return FeatureRecord{
		N:           int(c.values[Nitrogen]),
		P:           int(c.values[Phosphorus]),
		K:           int(c.values[Potassium]),
		Temperature: c.values[Temperature],
		Humidity:    c.values[Humidity],
		PH:          c.values[PH],
		Rainfall:    c.values[Rainfall],
	}
}
