package potability

import "testing"

func TestCachingClassifier(t *testing.T) {
	stub := &echoClassifier{label: LabelSafe, prob: 0.8}
	hits := 0
	cached, err := NewCachingClassifier(stub, 8, func() { hits++ })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vector := testVector(0.5)
	label1, prob1, err := cached.Predict(vector)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	label2, prob2, err := cached.Predict(vector)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if label1 != label2 || prob1 != prob2 {
		t.Fatalf("cache changed the result: (%d, %v) vs (%d, %v)", label1, prob1, label2, prob2)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one underlying call, got %d", stub.calls)
	}
	if hits != 1 {
		t.Fatalf("expected one cache hit, got %d", hits)
	}
	if cached.Len() != 1 {
		t.Fatalf("expected one cached vector, got %d", cached.Len())
	}

	// A different vector misses the cache.
	if _, _, err := cached.Predict(testVector(-0.5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("expected two underlying calls, got %d", stub.calls)
	}
}
