package impact

import "strings"

// RiskLevel expresses how conservatively projected approval benefits are discounted.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

var riskFactors = map[RiskLevel]float64{
	RiskLow:    1.0,
	RiskMedium: 0.7,
	RiskHigh:   0.5,
}

// RiskLevels lists the accepted levels from least to most conservative.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskLow, RiskMedium, RiskHigh}
}

// ParseRiskLevel resolves a level name case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	name := strings.TrimSpace(s)
	for _, level := range RiskLevels() {
		if strings.EqualFold(name, string(level)) {
			return level, nil
		}
	}
	return "", &InvalidInputError{Field: FieldRiskLevel, Reason: ReasonUnrecognized, Value: s}
}

// RiskFactor returns the fixed benefit multiplier for a level.
func RiskFactor(level RiskLevel) (float64, error) {
	canonical, err := ParseRiskLevel(string(level))
	if err != nil {
		return 0, err
	}
	return riskFactors[canonical], nil
}
