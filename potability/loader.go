package potability

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Artifact is the serialized form of a trained model: the forest plus the
// exact normalization contract it was trained with.
type Artifact struct {
	Version       string             `json:"version"`
	Normalization string             `json:"normalization"`
	FeatureNames  []string           `json:"feature_names"`
	Scaler        StandardScaler     `json:"scaler"`
	Defaults      map[string]float64 `json:"defaults,omitempty"`
	Trees         [][]TreeNode       `json:"trees"`
}

// Model is the read-only handle over a loaded artifact. It is constructed
// once at process start, injected into the pipeline, and never mutated, so
// it may be shared freely across goroutines.
type Model struct {
	Version string
	Scaler  *StandardScaler
	Forest  *RandomForest
}

// LoadModel reads and validates a model artifact. Any failure — absent or
// unreadable file, corrupt JSON, wrong feature count or order, unknown
// normalization scheme, degenerate scaler, malformed tree — is wrapped in
// ModelLoadError so it cannot be mistaken for a user-input fault.
func LoadModel(path string) (*Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, &ModelLoadError{Path: path, Err: fmt.Errorf("corrupt artifact: %w", err)}
	}
	model, err := buildModel(&artifact)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}
	return model, nil
}

// VerifyArtifact re-validates the artifact on disk without touching the
// in-memory model. The artifact watcher uses it to surface mid-run
// corruption distinctly from request errors.
func VerifyArtifact(path string) error {
	_, err := LoadModel(path)
	return err
}

func buildModel(artifact *Artifact) (*Model, error) {
	if artifact.Version == "" {
		return nil, errors.New("artifact has no version")
	}
	if artifact.Normalization != NormalizationScheme {
		return nil, fmt.Errorf("artifact normalization %q does not match expected %q", artifact.Normalization, NormalizationScheme)
	}
	names := FieldNames()
	if len(artifact.FeatureNames) != len(names) {
		return nil, fmt.Errorf("artifact has %d features, want %d", len(artifact.FeatureNames), len(names))
	}
	for i, name := range names {
		if artifact.FeatureNames[i] != name {
			return nil, fmt.Errorf("artifact feature %d is %q, want %q", i, artifact.FeatureNames[i], name)
		}
	}
	if err := artifact.Scaler.validate(len(names)); err != nil {
		return nil, err
	}
	forest, err := NewRandomForest(artifact.Trees, len(names))
	if err != nil {
		return nil, err
	}
	scaler := artifact.Scaler
	return &Model{
		Version: artifact.Version,
		Scaler:  &scaler,
		Forest:  forest,
	}, nil
}
