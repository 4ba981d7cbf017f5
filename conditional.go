package sheetengine

import (
	"strings"

	"github.com/xuri/efp"
)

// RuleType tags the conditional formatting rule variants.
type RuleType string

const (
	RuleCellValue        RuleType = "cellValue"
	RuleFormula          RuleType = "formula"
	RuleColorScale       RuleType = "colorScale"
	RuleDataBar          RuleType = "dataBar"
	RuleIconSet          RuleType = "iconSet"
	RuleTop10            RuleType = "top10"
	RuleDuplicateValues  RuleType = "duplicateValues"
	RuleUniqueValues     RuleType = "uniqueValues"
	RuleContainsText     RuleType = "containsText"
	RuleNotContainsText  RuleType = "notContainsText"
	RuleBeginsWith       RuleType = "beginsWith"
	RuleEndsWith         RuleType = "endsWith"
	RuleContainsBlanks   RuleType = "containsBlanks"
	RuleNotContainsBlank RuleType = "notContainsBlanks"
	RuleAboveAverage     RuleType = "aboveAverage"
	RuleBelowAverage     RuleType = "belowAverage"
)

// CellValueOperator enumerates comparison operators for cell-value rules.
type CellValueOperator string

const (
	OpEqual          CellValueOperator = "equal"
	OpNotEqual       CellValueOperator = "notEqual"
	OpGreaterThan    CellValueOperator = "greaterThan"
	OpGreaterOrEqual CellValueOperator = "greaterThanOrEqual"
	OpLessThan       CellValueOperator = "lessThan"
	OpLessOrEqual    CellValueOperator = "lessThanOrEqual"
	OpBetween        CellValueOperator = "between"
	OpNotBetween     CellValueOperator = "notBetween"
)

// ColorScale is the payload of a color-scale rule. MidColor may be empty for
// a two-color scale.
type ColorScale struct {
	MinColor Color
	MidColor Color
	MaxColor Color
	MinValue string
	MidValue string
	MaxValue string
}

// DataBar is the payload of a data-bar rule.
type DataBar struct {
	Color     Color
	ShowValue bool
	MinValue  string
	MaxValue  string
}

// IconSetType enumerates the built-in icon set names.
type IconSetType string

const (
	Icons3Arrows        IconSetType = "3Arrows"
	Icons3ArrowsGray    IconSetType = "3ArrowsGray"
	Icons3Flags         IconSetType = "3Flags"
	Icons3TrafficLights IconSetType = "3TrafficLights1"
	Icons3Signs         IconSetType = "3Signs"
	Icons3Symbols       IconSetType = "3Symbols"
	Icons4Arrows        IconSetType = "4Arrows"
	Icons4ArrowsGray    IconSetType = "4ArrowsGray"
	Icons4RedToBlack    IconSetType = "4RedToBlack"
	Icons4Rating        IconSetType = "4Rating"
	Icons5Arrows        IconSetType = "5Arrows"
	Icons5ArrowsGray    IconSetType = "5ArrowsGray"
	Icons5Rating        IconSetType = "5Rating"
	Icons5Quarters      IconSetType = "5Quarters"
)

// IconSet is the payload of an icon-set rule.
type IconSet struct {
	Type      IconSetType
	ShowValue bool
	Reverse   bool
}

// ConditionalRule describes formatting applied when a condition holds. Only
// the fields relevant to the rule's Type are consulted; NewConditionalRule
// validates that the variant-required payload is present.
type ConditionalRule struct {
	Type       RuleType
	Style      *CellStyle
	Priority   int
	StopIfTrue bool
	Formula    string
	Operator   CellValueOperator
	Value      string
	Value2     string
	Text       string
	ColorScale *ColorScale
	DataBar    *DataBar
	IconSet    *IconSet
}

// NewConditionalRule validates rule's variant payload and returns it. A zero
// priority defaults to 1.
func NewConditionalRule(rule ConditionalRule) (ConditionalRule, error) {
	if rule.Priority == 0 {
		rule.Priority = 1
	}
	if rule.Priority < 1 {
		return ConditionalRule{}, newRuleValidationError("priority must be >= 1, got %d", rule.Priority)
	}
	switch rule.Type {
	case RuleCellValue:
		if rule.Operator == "" {
			return ConditionalRule{}, newRuleValidationError("cell value rules require an operator")
		}
	case RuleFormula:
		if rule.Formula == "" {
			return ConditionalRule{}, newRuleValidationError("formula rules require a formula")
		}
		if !parsableFormula(rule.Formula) {
			return ConditionalRule{}, newRuleValidationError("formula rules require a parsable formula, got %q", rule.Formula)
		}
	case RuleColorScale:
		if rule.ColorScale == nil {
			return ConditionalRule{}, newRuleValidationError("color scale rules require a color scale payload")
		}
	case RuleDataBar:
		if rule.DataBar == nil {
			return ConditionalRule{}, newRuleValidationError("data bar rules require a data bar payload")
		}
	case RuleIconSet:
		if rule.IconSet == nil {
			return ConditionalRule{}, newRuleValidationError("icon set rules require an icon set payload")
		}
	case RuleContainsText, RuleNotContainsText, RuleBeginsWith, RuleEndsWith:
		if rule.Text == "" {
			return ConditionalRule{}, newRuleValidationError("%s rules require text", rule.Type)
		}
	}
	return rule, nil
}

// parsableFormula reports whether the formula tokenizes. Formula semantics
// stay opaque to the engine; this only rejects strings the formula grammar
// cannot tokenize at all.
func parsableFormula(formula string) bool {
	src := strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if src == "" {
		return false
	}
	ps := efp.ExcelParser()
	return len(ps.Parse(src)) > 0
}

// CellIsNegative builds a cell-value rule matching values below zero.
func CellIsNegative(style *CellStyle, priority int) ConditionalRule {
	rule, _ := NewConditionalRule(ConditionalRule{
		Type:     RuleCellValue,
		Operator: OpLessThan,
		Value:    "0",
		Style:    style,
		Priority: priority,
	})
	return rule
}

// CellIsPositive builds a cell-value rule matching values above zero.
func CellIsPositive(style *CellStyle, priority int) ConditionalRule {
	rule, _ := NewConditionalRule(ConditionalRule{
		Type:     RuleCellValue,
		Operator: OpGreaterThan,
		Value:    "0",
		Style:    style,
		Priority: priority,
	})
	return rule
}

// CellIsZero builds a cell-value rule matching zero values.
func CellIsZero(style *CellStyle, priority int) ConditionalRule {
	rule, _ := NewConditionalRule(ConditionalRule{
		Type:     RuleCellValue,
		Operator: OpEqual,
		Value:    "0",
		Style:    style,
		Priority: priority,
	})
	return rule
}

// RedGreenScale builds a red-yellow-green color scale rule.
func RedGreenScale(priority int) ConditionalRule {
	rule, _ := NewConditionalRule(ConditionalRule{
		Type: RuleColorScale,
		ColorScale: &ColorScale{
			MinColor: MustColor("FF0000"),
			MidColor: MustColor("FFFF00"),
			MaxColor: MustColor("00FF00"),
		},
		Priority: priority,
	})
	return rule
}
