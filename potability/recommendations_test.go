package potability

import (
	"strings"
	"testing"
)

func containsAdvice(recommendations []string, fragment string) bool {
	for _, rec := range recommendations {
		if strings.Contains(rec, fragment) {
			return true
		}
	}
	return false
}

func TestRecommendUnsafeBaseActions(t *testing.T) {
	recs := Recommend(VerdictUnsafe, nil, map[string]float64{})
	if len(recs) != 4 {
		t.Fatalf("expected 4 base actions without risk factors, got %d: %v", len(recs), recs)
	}
	if !containsAdvice(recs, "do not consume") {
		t.Fatalf("expected consumption warning, got %v", recs)
	}
}

func TestRecommendUnsafePerContaminant(t *testing.T) {
	tests := []struct {
		name   string
		sample map[string]float64
		advice string
	}{
		{"low ph", map[string]float64{FieldPH: 5.2}, "lime treatment"},
		{"high ph", map[string]float64{FieldPH: 9.4}, "acid neutralization"},
		{"chloramines", map[string]float64{FieldChloramines: 9.0}, "activated carbon filtration"},
		{"trihalomethanes", map[string]float64{FieldTrihalomethanes: 95.0}, "reverse osmosis"},
		{"turbidity", map[string]float64{FieldTurbidity: 7.5}, "sediment filtration"},
		{"solids", map[string]float64{FieldSolids: 30000.0}, "distillation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := AssessRiskFactors(tt.sample)
			if len(factors) == 0 {
				t.Fatalf("sample %v should raise a risk factor", tt.sample)
			}
			recs := Recommend(VerdictUnsafe, factors, tt.sample)
			if !containsAdvice(recs, tt.advice) {
				t.Fatalf("expected advice containing %q, got %v", tt.advice, recs)
			}
		})
	}
}

func TestRecommendSafeMaintenanceTips(t *testing.T) {
	sample := map[string]float64{FieldHardness: 150.0, FieldChloramines: 1.0}
	recs := Recommend(VerdictSafe, nil, sample)
	if len(recs) != 4 {
		t.Fatalf("expected 4 maintenance tips, got %d: %v", len(recs), recs)
	}
	if containsAdvice(recs, "do not consume") {
		t.Fatalf("safe verdict must not carry treatment warnings: %v", recs)
	}
}

func TestRecommendSafeExtraTips(t *testing.T) {
	sample := map[string]float64{FieldHardness: 320.0, FieldChloramines: 2.5}
	recs := Recommend(VerdictSafe, nil, sample)
	if !containsAdvice(recs, "water softening") {
		t.Fatalf("expected softening tip for hardness 320, got %v", recs)
	}
	if !containsAdvice(recs, "carbon filtration") {
		t.Fatalf("expected chloramine taste tip, got %v", recs)
	}
}
