package potability

import "fmt"

// NormalizationScheme identifies the feature scaling the model was trained
// with. The loader rejects artifacts declaring any other scheme so a model
// can never be silently paired with a validator using a different one.
const NormalizationScheme = "zscore-v1"

// StandardScaler applies the z-score standardization the trained model
// expects. Mean and Std come from the model artifact and are read-only
// after load.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Transform standardizes a raw feature vector. The input is not mutated.
func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.Mean) {
		return nil, fmt.Errorf("vector width %d does not match scaler width %d", len(vector), len(s.Mean))
	}
	scaled := make([]float64, len(vector))
	for i, v := range vector {
		scaled[i] = (v - s.Mean[i]) / s.Std[i]
	}
	return scaled, nil
}

func (s *StandardScaler) validate(featureCount int) error {
	if len(s.Mean) != featureCount {
		return fmt.Errorf("scaler mean has %d entries, want %d", len(s.Mean), featureCount)
	}
	if len(s.Std) != featureCount {
		return fmt.Errorf("scaler std has %d entries, want %d", len(s.Std), featureCount)
	}
	for i, std := range s.Std {
		if std <= 0 {
			return fmt.Errorf("scaler std for feature %d is %v, must be positive", i, std)
		}
	}
	return nil
}
