package potability

// Class labels. LabelSafe matches label 1 in the training data.
const (
	LabelUnsafe = 0
	LabelSafe   = 1
)

// Verdict is the human-facing class name.
type Verdict string

const (
	VerdictSafe   Verdict = "Safe"
	VerdictUnsafe Verdict = "Unsafe"
)

// ConfidenceNote is surfaced with every result: the confidence is the
// classifier's membership probability for the predicted class, not a
// calibrated statistical guarantee.
const ConfidenceNote = "confidence is the model's class-membership probability, not a calibrated statistical guarantee"

// Classifier is the narrow interface over the opaque trained model. The
// returned probability is always that of the predicted label, so it is
// never below 0.5. Identical vectors must yield identical output.
type Classifier interface {
	Predict(vector []float64) (label int, probability float64, err error)
}

// PredictionResult is the pipeline output, created once per call and
// immutable afterwards.
type PredictionResult struct {
	Prediction   Verdict     `json:"prediction"`
	Confidence   float64     `json:"confidence"`
	OutOfRange   []RangeFlag `json:"out_of_range,omitempty"`
	Defaulted    []string    `json:"defaulted,omitempty"`
	ModelVersion string      `json:"model_version,omitempty"`
}

// VerdictForLabel maps a class label to its verdict.
func VerdictForLabel(label int) Verdict {
	if label == LabelSafe {
		return VerdictSafe
	}
	return VerdictUnsafe
}
