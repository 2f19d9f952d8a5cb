// Package potability implements the water potability prediction pipeline:
// sample validation, feature normalization, model inference and
// confidence derivation.
package potability

// Field names in the exact order the model was trained on. This ordering is
// a contract shared between the validator and the classifier; changing it
// without re-deriving the model artifact is a breaking change.
const (
	FieldPH              = "ph"
	FieldHardness        = "Hardness"
	FieldSolids          = "Solids"
	FieldChloramines     = "Chloramines"
	FieldSulfate         = "Sulfate"
	FieldConductivity    = "Conductivity"
	FieldOrganicCarbon   = "Organic_carbon"
	FieldTrihalomethanes = "Trihalomethanes"
	FieldTurbidity       = "Turbidity"
)

// FieldCount is the width of the feature vector.
const FieldCount = 9

// FieldNames returns the nine parameter names in training order.
func FieldNames() []string {
	return []string{
		FieldPH,
		FieldHardness,
		FieldSolids,
		FieldChloramines,
		FieldSulfate,
		FieldConductivity,
		FieldOrganicCarbon,
		FieldTrihalomethanes,
		FieldTurbidity,
	}
}

// FieldSpec describes one water-chemistry parameter: its physically
// plausible range, the default substituted when the caller requests
// default-filling (dataset median), and the guideline band used by the
// advisory risk assessment.
type FieldSpec struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Default      float64 `json:"default"`
	GuidelineMin float64 `json:"guideline_min"`
	GuidelineMax float64 `json:"guideline_max"`
	Guideline    string  `json:"guideline"`
}

// FieldSpecs returns the per-field contract in training order. Defaults are
// the medians of the 3276-record potability dataset; guideline bands follow
// WHO/EPA drinking water recommendations.
func FieldSpecs() []FieldSpec {
	return []FieldSpec{
		{FieldPH, "pH", 0, 14, 7.04, 6.5, 8.5, "WHO recommends pH between 6.5 and 8.5"},
		{FieldHardness, "mg/L", 0, 500, 196.97, 0, 300, "hardness above 300 mg/L is considered very hard"},
		{FieldSolids, "ppm", 0, 60000, 20927.83, 0, 1000, "total dissolved solids above 1000 ppm exceed the desirable limit"},
		{FieldChloramines, "ppm", 0, 15, 7.13, 0, 4, "chloramine levels up to 4 ppm are considered safe"},
		{FieldSulfate, "mg/L", 0, 500, 333.07, 0, 250, "sulfate above 250 mg/L exceeds the secondary standard"},
		{FieldConductivity, "uS/cm", 0, 1000, 421.88, 0, 400, "EPA recommends conductivity not exceed 400 uS/cm"},
		{FieldOrganicCarbon, "ppm", 0, 30, 14.22, 0, 4, "total organic carbon in source water should stay below 4 ppm"},
		{FieldTrihalomethanes, "ug/L", 0, 130, 66.62, 0, 80, "trihalomethane levels up to 80 ug/L are considered safe"},
		{FieldTurbidity, "NTU", 0, 10, 3.96, 0, 5, "WHO recommends turbidity below 5 NTU"},
	}
}

// FieldSpecByName looks up the contract entry for a single field.
func FieldSpecByName(name string) (FieldSpec, bool) {
	for _, spec := range FieldSpecs() {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// DefaultValues returns the per-field default-fill values keyed by name.
func DefaultValues() map[string]float64 {
	defaults := make(map[string]float64, FieldCount)
	for _, spec := range FieldSpecs() {
		defaults[spec.Name] = spec.Default
	}
	return defaults
}
