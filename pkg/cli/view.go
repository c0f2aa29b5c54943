package cli

import (
	"github.com/fatih/color"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

// levelColor maps a risk level to its terminal color, matching the usual
// heat map reading of the matrix.
func levelColor(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskLevelCritical:
		return color.New(color.FgRed, color.Bold)
	case types.RiskLevelHigh:
		return color.New(color.FgRed)
	case types.RiskLevelMedium:
		return color.New(color.FgYellow)
	case types.RiskLevelLow:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgCyan)
	}
}
