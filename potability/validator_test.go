package potability

import (
	"errors"
	"math"
	"testing"
)

func fullSample() map[string]float64 {
	return map[string]float64{
		"ph":              7.2,
		"Hardness":        158.3,
		"Solids":          15000.2,
		"Chloramines":     7.8,
		"Sulfate":         320.1,
		"Conductivity":    420.5,
		"Organic_carbon":  18.2,
		"Trihalomethanes": 72.1,
		"Turbidity":       3.8,
	}
}

func TestNormalizeOrder(t *testing.T) {
	sample := fullSample()
	normalized, err := Normalize(sample, NormalizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(normalized.Vector) != FieldCount {
		t.Fatalf("expected %d values, got %d", FieldCount, len(normalized.Vector))
	}
	for i, name := range FieldNames() {
		if normalized.Vector[i] != sample[name] {
			t.Fatalf("position %d: expected %s=%v, got %v", i, name, sample[name], normalized.Vector[i])
		}
	}
}

func TestNormalizeMissingField(t *testing.T) {
	sample := fullSample()
	delete(sample, "Sulfate")

	_, err := Normalize(sample, NormalizeOptions{})
	if err == nil {
		t.Fatal("expected error for missing field")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Field != "Sulfate" {
		t.Fatalf("expected field Sulfate, got %s", verr.Field)
	}
	if verr.Reason != MissingField {
		t.Fatalf("expected reason %s, got %s", MissingField, verr.Reason)
	}
}

func TestNormalizeFillDefaults(t *testing.T) {
	sample := fullSample()
	delete(sample, "Sulfate")

	normalized, err := Normalize(sample, NormalizeOptions{FillDefaults: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(normalized.Defaulted) != 1 || normalized.Defaulted[0] != "Sulfate" {
		t.Fatalf("expected Sulfate substitution to be reported, got %v", normalized.Defaulted)
	}
	spec, _ := FieldSpecByName("Sulfate")
	for i, name := range FieldNames() {
		if name == "Sulfate" && normalized.Vector[i] != spec.Default {
			t.Fatalf("expected default %v, got %v", spec.Default, normalized.Vector[i])
		}
	}
}

func TestNormalizeNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		sample := fullSample()
		sample["Turbidity"] = bad

		_, err := Normalize(sample, NormalizeOptions{})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("value %v: expected ValidationError, got %v", bad, err)
		}
		if verr.Field != "Turbidity" || verr.Reason != InvalidValue {
			t.Fatalf("value %v: unexpected error detail: %+v", bad, verr)
		}
	}
}

func TestNormalizeOutOfRangeIsFlaggedNotRejected(t *testing.T) {
	sample := fullSample()
	sample["ph"] = 25.0

	normalized, err := Normalize(sample, NormalizeOptions{})
	if err != nil {
		t.Fatalf("out-of-range value must not fail validation: %v", err)
	}
	if len(normalized.OutOfRange) != 1 {
		t.Fatalf("expected one out-of-range flag, got %v", normalized.OutOfRange)
	}
	flag := normalized.OutOfRange[0]
	if flag.Field != "ph" || flag.Value != 25.0 || flag.Max != 14 {
		t.Fatalf("unexpected flag: %+v", flag)
	}
	// The value itself stays in the vector, unclamped.
	if normalized.Vector[0] != 25.0 {
		t.Fatalf("expected unclamped value 25.0, got %v", normalized.Vector[0])
	}
}

func TestFieldSpecsCoverAllFields(t *testing.T) {
	specs := FieldSpecs()
	names := FieldNames()
	if len(specs) != len(names) {
		t.Fatalf("expected %d specs, got %d", len(names), len(specs))
	}
	for i, spec := range specs {
		if spec.Name != names[i] {
			t.Fatalf("spec %d is %s, want %s", i, spec.Name, names[i])
		}
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Fatalf("%s default %v outside plausible range [%v, %v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}
