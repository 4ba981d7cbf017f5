package sheetengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConditionalRuleDefaults(t *testing.T) {
	rule, err := NewConditionalRule(ConditionalRule{
		Type:     RuleCellValue,
		Operator: OpGreaterThan,
		Value:    "100",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rule.Priority)

	_, err = NewConditionalRule(ConditionalRule{
		Type:     RuleCellValue,
		Operator: OpEqual,
		Priority: -2,
	})
	assert.ErrorIs(t, err, ErrRuleValidation)
}

func TestNewConditionalRulePayloads(t *testing.T) {
	_, err := NewConditionalRule(ConditionalRule{Type: RuleCellValue})
	assert.ErrorIs(t, err, ErrRuleValidation)

	_, err = NewConditionalRule(ConditionalRule{Type: RuleFormula})
	assert.ErrorIs(t, err, ErrRuleValidation)

	_, err = NewConditionalRule(ConditionalRule{Type: RuleColorScale})
	assert.ErrorIs(t, err, ErrRuleValidation)

	_, err = NewConditionalRule(ConditionalRule{Type: RuleDataBar})
	assert.ErrorIs(t, err, ErrRuleValidation)

	_, err = NewConditionalRule(ConditionalRule{Type: RuleIconSet})
	assert.ErrorIs(t, err, ErrRuleValidation)

	_, err = NewConditionalRule(ConditionalRule{Type: RuleContainsText})
	assert.ErrorIs(t, err, ErrRuleValidation)

	// Variants without required payloads pass through.
	rule, err := NewConditionalRule(ConditionalRule{Type: RuleDuplicateValues})
	require.NoError(t, err)
	assert.Equal(t, RuleDuplicateValues, rule.Type)
}

func TestNewConditionalRuleFormula(t *testing.T) {
	rule, err := NewConditionalRule(ConditionalRule{
		Type:    RuleFormula,
		Formula: `=AND($B1>0, $C1<100)`,
	})
	require.NoError(t, err)
	assert.Equal(t, RuleFormula, rule.Type)

	// A leading equals sign is optional.
	_, err = NewConditionalRule(ConditionalRule{
		Type:    RuleFormula,
		Formula: `SUM(A1:A10)>0`,
	})
	assert.NoError(t, err)

	_, err = NewConditionalRule(ConditionalRule{Type: RuleFormula, Formula: "="})
	assert.ErrorIs(t, err, ErrRuleValidation)
}

func TestCellValueConvenienceRules(t *testing.T) {
	style := NegativeValueStyle()

	negative := CellIsNegative(style, 3)
	assert.Equal(t, RuleCellValue, negative.Type)
	assert.Equal(t, OpLessThan, negative.Operator)
	assert.Equal(t, "0", negative.Value)
	assert.Equal(t, 3, negative.Priority)
	assert.Same(t, style, negative.Style)

	positive := CellIsPositive(nil, 0)
	assert.Equal(t, OpGreaterThan, positive.Operator)
	assert.Equal(t, 1, positive.Priority)

	zero := CellIsZero(nil, 1)
	assert.Equal(t, OpEqual, zero.Operator)
}

func TestRedGreenScale(t *testing.T) {
	rule := RedGreenScale(2)
	require.NotNil(t, rule.ColorScale)
	assert.Equal(t, Color("FF0000"), rule.ColorScale.MinColor)
	assert.Equal(t, Color("FFFF00"), rule.ColorScale.MidColor)
	assert.Equal(t, Color("00FF00"), rule.ColorScale.MaxColor)
	assert.Equal(t, 2, rule.Priority)
}

func TestValidNumberFormat(t *testing.T) {
	for _, code := range []string{
		"",
		FmtGeneral,
		FmtCurrencyBRL,
		FmtAccountingBRL,
		FmtPercentage2,
		FmtDateBR,
		"0.00_);[Red](0.00)",
	} {
		assert.True(t, validNumberFormat(code), code)
	}

	assert.False(t, validNumberFormat("0;0;0;0;0"))
}

func TestCurrencyFormat(t *testing.T) {
	assert.Equal(t, FmtCurrencyUSD, CurrencyFormat("usd"))
	assert.Equal(t, FmtCurrencyEUR, CurrencyFormat("EUR"))
	assert.Equal(t, FmtCurrencyBRL, CurrencyFormat("BRL"))
	assert.Equal(t, FmtCurrencyBRL, CurrencyFormat("XYZ"))

	assert.Equal(t, FmtAccountingUSD, AccountingFormat("USD"))
	assert.Equal(t, FmtAccountingBRL, AccountingFormat("BRL"))
}
