package types

// RiskLevel is the categorical classification of a residual risk score.
type RiskLevel string

const (
	RiskLevelCritical RiskLevel = "Crítico"
	RiskLevelHigh     RiskLevel = "Alto"
	RiskLevelMedium   RiskLevel = "Medio"
	RiskLevelLow      RiskLevel = "Bajo"
	RiskLevelVeryLow  RiskLevel = "Muy Bajo"
)

// LevelOf classifies a residual risk score. Thresholds are inclusive at the
// lower bound: a score of exactly 20 is Crítico, not Alto.
func LevelOf(score float64) RiskLevel {
	switch {
	case score >= 20:
		return RiskLevelCritical
	case score >= 15:
		return RiskLevelHigh
	case score >= 10:
		return RiskLevelMedium
	case score >= 5:
		return RiskLevelLow
	default:
		return RiskLevelVeryLow
	}
}

// String returns the string representation of RiskLevel
func (l RiskLevel) String() string {
	return string(l)
}
