package potability

import "math"

// NormalizeOptions controls how missing fields are handled.
type NormalizeOptions struct {
	// FillDefaults substitutes the documented per-field default (dataset
	// median) for absent fields instead of failing. Every substitution is
	// reported back in Normalized.Defaulted.
	FillDefaults bool
}

// RangeFlag annotates a value that falls outside its physically plausible
// range. It is a data-quality note, not an error: genuinely contaminated
// water can carry such values and is precisely what the model must judge.
type RangeFlag struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Normalized is the validator output: the raw feature vector in training
// order plus the annotations the caller must see.
type Normalized struct {
	Vector     []float64
	OutOfRange []RangeFlag
	Defaulted  []string
}

// Normalize checks presence and finiteness of the nine parameters and
// produces the fixed-order feature vector. A failure is terminal for the
// call; there are no retries. Values outside the plausible range are
// accepted but flagged, never clamped.
func Normalize(sample map[string]float64, opts NormalizeOptions) (*Normalized, error) {
	out := &Normalized{Vector: make([]float64, 0, FieldCount)}

	for _, spec := range FieldSpecs() {
		value, present := sample[spec.Name]
		if !present {
			if !opts.FillDefaults {
				return nil, &ValidationError{Field: spec.Name, Reason: MissingField}
			}
			value = spec.Default
			out.Defaulted = append(out.Defaulted, spec.Name)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, &ValidationError{Field: spec.Name, Reason: InvalidValue, Detail: "value must be a finite number"}
		}
		if value < spec.Min || value > spec.Max {
			out.OutOfRange = append(out.OutOfRange, RangeFlag{
				Field: spec.Name,
				Value: value,
				Min:   spec.Min,
				Max:   spec.Max,
			})
		}
		out.Vector = append(out.Vector, value)
	}

	return out, nil
}
