package potability

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedPrediction struct {
	label       int
	probability float64
}

// CachingClassifier memoizes an underlying classifier with an LRU cache
// keyed by the exact input vector. Inference is deterministic, so a cache
// hit is indistinguishable from a fresh call.
type CachingClassifier struct {
	inner Classifier
	cache *lru.Cache[string, cachedPrediction]
	hits  func()
}

// NewCachingClassifier wraps a classifier with a cache of the given size.
// onHit, if non-nil, is invoked on every cache hit.
func NewCachingClassifier(inner Classifier, size int, onHit func()) (*CachingClassifier, error) {
	cache, err := lru.New[string, cachedPrediction](size)
	if err != nil {
		return nil, err
	}
	return &CachingClassifier{inner: inner, cache: cache, hits: onHit}, nil
}

// Predict serves from cache when the identical vector was seen before.
func (c *CachingClassifier) Predict(vector []float64) (int, float64, error) {
	key := vectorKey(vector)
	if cached, ok := c.cache.Get(key); ok {
		if c.hits != nil {
			c.hits()
		}
		return cached.label, cached.probability, nil
	}

	label, probability, err := c.inner.Predict(vector)
	if err != nil {
		return 0, 0, err
	}
	c.cache.Add(key, cachedPrediction{label: label, probability: probability})
	return label, probability, nil
}

// Len reports the number of cached vectors.
func (c *CachingClassifier) Len() int { return c.cache.Len() }

func vectorKey(vector []float64) string {
	var b strings.Builder
	for i, v := range vector {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}
