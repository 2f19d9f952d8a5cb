package potability

// Pipeline runs the full prediction path: validate, default-fill on request,
// scale, classify. It is a pure function of its input and the injected
// model; nothing is retained between calls.
type Pipeline struct {
	classifier Classifier
	scaler     *StandardScaler
	version    string
}

// NewPipeline builds a pipeline over a loaded model.
func NewPipeline(model *Model) *Pipeline {
	return &Pipeline{
		classifier: model.Forest,
		scaler:     model.Scaler,
		version:    model.Version,
	}
}

// NewPipelineWith builds a pipeline over an arbitrary classifier. A nil
// scaler means the raw vector is passed through unchanged; tests use this
// to substitute deterministic stubs.
func NewPipelineWith(classifier Classifier, scaler *StandardScaler, version string) *Pipeline {
	return &Pipeline{classifier: classifier, scaler: scaler, version: version}
}

// ModelVersion returns the version of the model the pipeline serves.
func (p *Pipeline) ModelVersion() string { return p.version }

// Predict validates the sample and runs inference. ValidationError means
// the caller's input is at fault and the classifier was never invoked;
// InferenceError means the deployment is at fault.
func (p *Pipeline) Predict(sample map[string]float64, opts NormalizeOptions) (*PredictionResult, error) {
	normalized, err := Normalize(sample, opts)
	if err != nil {
		return nil, err
	}

	vector := normalized.Vector
	if p.scaler != nil {
		vector, err = p.scaler.Transform(vector)
		if err != nil {
			return nil, &InferenceError{Err: err}
		}
	}

	label, probability, err := p.classifier.Predict(vector)
	if err != nil {
		return nil, err
	}

	return &PredictionResult{
		Prediction:   VerdictForLabel(label),
		Confidence:   probability,
		OutOfRange:   normalized.OutOfRange,
		Defaulted:    normalized.Defaulted,
		ModelVersion: p.version,
	}, nil
}
