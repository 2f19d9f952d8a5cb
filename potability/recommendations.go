package potability

// Recommend maps a verdict plus the measured values to treatment or
// maintenance advice. Like risk assessment it is advisory and independent
// of the model internals; it only reads the verdict, the flagged risk
// factors and the raw sample.
func Recommend(verdict Verdict, factors []RiskFactor, sample map[string]float64) []string {
	if verdict == VerdictUnsafe {
		return unsafeRecommendations(factors, sample)
	}
	return safeRecommendations(sample)
}

func unsafeRecommendations(factors []RiskFactor, sample map[string]float64) []string {
	recommendations := []string{
		"do not consume this water until it has been properly treated",
		"have the water professionally tested by a certified laboratory",
		"use bottled or properly treated water for drinking and cooking",
		"consider installing an appropriate water treatment system",
	}

	flagged := make(map[string]bool, len(factors))
	for _, factor := range factors {
		flagged[factor.Field] = true
	}

	if flagged[FieldPH] {
		if ph, ok := sample[FieldPH]; ok {
			if spec, _ := FieldSpecByName(FieldPH); ph < spec.GuidelineMin {
				recommendations = append(recommendations, "pH too low: consider lime treatment or a pH adjustment system")
			} else if ph > spec.GuidelineMax {
				recommendations = append(recommendations, "pH too high: consider an acid neutralization system")
			}
		}
	}
	if flagged[FieldChloramines] {
		recommendations = append(recommendations, "high chloramines: install activated carbon filtration")
	}
	if flagged[FieldTrihalomethanes] {
		recommendations = append(recommendations, "high trihalomethanes: use granular activated carbon or reverse osmosis")
	}
	if flagged[FieldTurbidity] {
		recommendations = append(recommendations, "high turbidity: install sediment filtration and UV disinfection")
	}
	if flagged[FieldSolids] {
		recommendations = append(recommendations, "high total dissolved solids: consider reverse osmosis or distillation")
	}
	return recommendations
}

// Thresholds for the extra maintenance tips. They sit inside the guideline
// bands: the advice applies to water that is safe but worth watching.
const (
	hardnessSofteningLevel = 300.0
	chloramineTasteLevel   = 2.0
)

func safeRecommendations(sample map[string]float64) []string {
	tips := []string{
		"test water quality periodically",
		"clean and maintain any existing filtration systems",
		"keep pipes and storage tanks clean",
		"document water quality test results over time",
	}

	if hardness, ok := sample[FieldHardness]; ok && hardness > hardnessSofteningLevel {
		tips = append(tips, "hard water: consider water softening for appliance longevity")
	}
	if chloramines, ok := sample[FieldChloramines]; ok && chloramines > chloramineTasteLevel {
		tips = append(tips, "noticeable chloramine levels: let water sit or use carbon filtration to reduce taste and odor")
	}
	return tips
}
