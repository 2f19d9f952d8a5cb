package potability

import (
	"errors"
	"fmt"
)

// TreeNode is one node of a decision tree stored as a flat array. Interior
// nodes route on FeatureIdx against Threshold; leaves carry the training
// probability of the Safe class.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	SafeProb   float64 `json:"safe_prob"`
	IsLeaf     bool    `json:"is_leaf"`
}

// RandomForest is an ensemble of flat-array decision trees over
// standardized feature vectors. It holds no mutable state after
// construction and is safe for concurrent use.
type RandomForest struct {
	trees        [][]TreeNode
	featureCount int
}

// NewRandomForest validates the tree structures and wraps them. Structural
// problems are reported here, once, rather than at predict time.
func NewRandomForest(trees [][]TreeNode, featureCount int) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, errors.New("forest has no trees")
	}
	if featureCount <= 0 {
		return nil, errors.New("feature count must be positive")
	}
	for ti, tree := range trees {
		if len(tree) == 0 {
			return nil, fmt.Errorf("tree %d is empty", ti)
		}
		for ni, node := range tree {
			if node.IsLeaf {
				if node.SafeProb < 0 || node.SafeProb > 1 {
					return nil, fmt.Errorf("tree %d node %d: safe_prob %v outside [0,1]", ti, ni, node.SafeProb)
				}
				continue
			}
			if node.FeatureIdx < 0 || node.FeatureIdx >= featureCount {
				return nil, fmt.Errorf("tree %d node %d: feature index %d outside vector width %d", ti, ni, node.FeatureIdx, featureCount)
			}
			if node.LeftChild <= ni || node.LeftChild >= len(tree) ||
				node.RightChild <= ni || node.RightChild >= len(tree) {
				return nil, fmt.Errorf("tree %d node %d: child index out of bounds", ti, ni)
			}
		}
	}
	return &RandomForest{trees: trees, featureCount: featureCount}, nil
}

// FeatureCount returns the vector width the forest expects.
func (f *RandomForest) FeatureCount() int { return f.featureCount }

// TreeCount returns the ensemble size.
func (f *RandomForest) TreeCount() int { return len(f.trees) }

// PredictProba returns the probability of the Safe class: the mean of the
// leaf probabilities reached in each tree.
func (f *RandomForest) PredictProba(vector []float64) (float64, error) {
	if len(vector) != f.featureCount {
		return 0, &InferenceError{Err: fmt.Errorf("vector width %d does not match model width %d", len(vector), f.featureCount)}
	}
	sum := 0.0
	for _, tree := range f.trees {
		idx := 0
		for !tree[idx].IsLeaf {
			node := tree[idx]
			if vector[node.FeatureIdx] <= node.Threshold {
				idx = node.LeftChild
			} else {
				idx = node.RightChild
			}
		}
		sum += tree[idx].SafeProb
	}
	return sum / float64(len(f.trees)), nil
}

// Predict returns the class label and the probability of that label.
// A probability of exactly 0.5 resolves to Unsafe: for drinking water the
// deterministic default is the conservative class.
func (f *RandomForest) Predict(vector []float64) (int, float64, error) {
	safeProb, err := f.PredictProba(vector)
	if err != nil {
		return 0, 0, err
	}
	if safeProb > 0.5 {
		return LabelSafe, safeProb, nil
	}
	return LabelUnsafe, 1 - safeProb, nil
}
