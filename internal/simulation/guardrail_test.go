package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

func testGuardrails() domain.GuardrailConfig {
	return domain.GuardrailConfig{
		CutThreshold:   decimal.NewFromFloat(0.05),
		RaiseThreshold: decimal.NewFromFloat(0.03),
		AdjustmentPct:  decimal.NewFromFloat(0.20),
	}
}

func TestGuardrailEngine_Apply(t *testing.T) {
	engine := NewGuardrailEngine(testGuardrails())
	portfolio := decimal.NewFromInt(1000000)

	tests := []struct {
		name      string
		baseSpend decimal.Decimal
		expected  decimal.Decimal
		action    domain.GuardrailAction
	}{
		{
			// 60000/1000000 = 6% > 5%: cut by 20%.
			name:      "rate above cut threshold",
			baseSpend: decimal.NewFromInt(60000),
			expected:  decimal.NewFromInt(48000),
			action:    domain.GuardrailDown,
		},
		{
			// 20000/1000000 = 2% < 3%: raise by 20%.
			name:      "rate below raise threshold",
			baseSpend: decimal.NewFromInt(20000),
			expected:  decimal.NewFromInt(24000),
			action:    domain.GuardrailUp,
		},
		{
			// 4% sits between the thresholds.
			name:      "rate inside the band",
			baseSpend: decimal.NewFromInt(40000),
			expected:  decimal.NewFromInt(40000),
			action:    domain.GuardrailNone,
		},
		{
			// Exactly at the cut threshold does not trigger.
			name:      "rate equal to cut threshold",
			baseSpend: decimal.NewFromInt(50000),
			expected:  decimal.NewFromInt(50000),
			action:    domain.GuardrailNone,
		},
		{
			// Exactly at the raise threshold does not trigger.
			name:      "rate equal to raise threshold",
			baseSpend: decimal.NewFromInt(30000),
			expected:  decimal.NewFromInt(30000),
			action:    domain.GuardrailNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, action := engine.Apply(tt.baseSpend, portfolio)
			assert.True(t, got.Equal(tt.expected), "Apply(%s) = %s, want %s", tt.baseSpend, got, tt.expected)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestGuardrailEngine_DepletedPortfolio(t *testing.T) {
	engine := NewGuardrailEngine(testGuardrails())
	spend := decimal.NewFromInt(60000)

	got, action := engine.Apply(spend, decimal.Zero)
	assert.True(t, got.Equal(spend))
	assert.Equal(t, domain.GuardrailNone, action)

	got, action = engine.Apply(spend, decimal.NewFromInt(-100))
	assert.True(t, got.Equal(spend))
	assert.Equal(t, domain.GuardrailNone, action)
}

func TestClampSpend(t *testing.T) {
	bounds := domain.SpendingBounds{
		Floor:        decimal.NewFromInt(60000),
		Ceiling:      decimal.NewFromInt(180000),
		FloorEndYear: 2045,
	}

	tests := []struct {
		name    string
		spend   decimal.Decimal
		year    int
		want    decimal.Decimal
		floor   bool
		ceiling bool
	}{
		{"below floor while floor active", decimal.NewFromInt(50000), 2040, decimal.NewFromInt(60000), true, false},
		{"below floor after floor expires", decimal.NewFromInt(50000), 2046, decimal.NewFromInt(50000), false, false},
		{"floor boundary year", decimal.NewFromInt(50000), 2045, decimal.NewFromInt(60000), true, false},
		{"above ceiling", decimal.NewFromInt(200000), 2040, decimal.NewFromInt(180000), false, true},
		{"inside bounds", decimal.NewFromInt(100000), 2040, decimal.NewFromInt(100000), false, false},
		{"at floor exactly", decimal.NewFromInt(60000), 2040, decimal.NewFromInt(60000), false, false},
		{"at ceiling exactly", decimal.NewFromInt(180000), 2040, decimal.NewFromInt(180000), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, floorApplied, ceilingApplied := ClampSpend(tt.spend, tt.year, bounds)
			assert.True(t, got.Equal(tt.want), "ClampSpend(%s, %d) = %s, want %s", tt.spend, tt.year, got, tt.want)
			assert.Equal(t, tt.floor, floorApplied)
			assert.Equal(t, tt.ceiling, ceilingApplied)
		})
	}
}
