package impact

import (
	"errors"
	"testing"
)

func TestRiskFactor(t *testing.T) {
	tests := []struct {
		level    RiskLevel
		expected float64
	}{
		{RiskLow, 1.0},
		{RiskMedium, 0.7},
		{RiskHigh, 0.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got, err := RiskFactor(tt.level)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("RiskFactor(%s) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestRiskFactor_Unrecognized(t *testing.T) {
	for _, name := range []string{"Extreme", "", "None", "Med"} {
		_, err := RiskFactor(RiskLevel(name))
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("%q: expected *InvalidInputError, got %v", name, err)
		}
		if invalid.Field != FieldRiskLevel || invalid.Reason != ReasonUnrecognized {
			t.Errorf("%q: got %s/%s", name, invalid.Field, invalid.Reason)
		}
	}
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		in   string
		want RiskLevel
	}{
		{"Low", RiskLow},
		{"medium", RiskMedium},
		{"  HIGH ", RiskHigh},
	}

	for _, tt := range tests {
		got, err := ParseRiskLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseRiskLevel(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseRiskLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRiskLevels_Order(t *testing.T) {
	levels := RiskLevels()
	if len(levels) != 3 || levels[0] != RiskLow || levels[1] != RiskMedium || levels[2] != RiskHigh {
		t.Errorf("RiskLevels() = %v", levels)
	}
}
