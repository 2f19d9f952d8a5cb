package potability

import "fmt"

// RiskFactor is an advisory guideline violation. Risk assessment is
// independent of the model verdict: it compares each parameter against its
// drinking-water guideline band and never blocks a prediction.
type RiskFactor struct {
	Field   string  `json:"field"`
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

// AssessRiskFactors reports every parameter outside its guideline band.
// Fields absent from the sample are skipped: risk assessment describes
// measured values only, never defaults.
func AssessRiskFactors(sample map[string]float64) []RiskFactor {
	var factors []RiskFactor
	for _, spec := range FieldSpecs() {
		value, present := sample[spec.Name]
		if !present {
			continue
		}
		if value < spec.GuidelineMin {
			factors = append(factors, RiskFactor{
				Field:   spec.Name,
				Value:   value,
				Message: fmt.Sprintf("%s of %.2f %s is below the guideline minimum %.2f: %s", spec.Name, value, spec.Unit, spec.GuidelineMin, spec.Guideline),
			})
			continue
		}
		if value > spec.GuidelineMax {
			factors = append(factors, RiskFactor{
				Field:   spec.Name,
				Value:   value,
				Message: fmt.Sprintf("%s of %.2f %s exceeds the guideline maximum %.2f: %s", spec.Name, value, spec.Unit, spec.GuidelineMax, spec.Guideline),
			})
		}
	}
	return factors
}
