package sheetengine

import (
	"fmt"
	"strings"
)

// Color is a normalized six-digit uppercase RGB hex value without a leading
// hash, for example "4472C4".
type Color string

var namedColors = map[string]Color{
	"BLACK":   "000000",
	"WHITE":   "FFFFFF",
	"RED":     "FF0000",
	"GREEN":   "00FF00",
	"BLUE":    "0000FF",
	"YELLOW":  "FFFF00",
	"CYAN":    "00FFFF",
	"MAGENTA": "FF00FF",
	"GRAY":    "808080",
	"GREY":    "808080",
	"ORANGE":  "FFA500",
	"PURPLE":  "800080",
	"BROWN":   "A52A2A",
	"PINK":    "FFC0CB",
}

// NewColor parses a color from a hex string ("FF0000", "#FF0000") or a
// well-known color name ("red").
func NewColor(value string) (Color, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	v = strings.TrimPrefix(v, "#")
	if len(v) == 6 && strings.Trim(v, "0123456789ABCDEF") == "" {
		return Color(v), nil
	}
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	return "", fmt.Errorf("invalid color format: %q", value)
}

// MustColor is like NewColor but panics on invalid input. Intended for
// package-level style constants.
func MustColor(value string) Color {
	c, err := NewColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

// HorizontalAlignment enumerates horizontal cell alignments.
type HorizontalAlignment string

const (
	AlignLeft        HorizontalAlignment = "left"
	AlignCenter      HorizontalAlignment = "center"
	AlignRight       HorizontalAlignment = "right"
	AlignJustify     HorizontalAlignment = "justify"
	AlignDistributed HorizontalAlignment = "distributed"
)

// VerticalAlignment enumerates vertical cell alignments.
type VerticalAlignment string

const (
	VAlignTop         VerticalAlignment = "top"
	VAlignCenter      VerticalAlignment = "center"
	VAlignBottom      VerticalAlignment = "bottom"
	VAlignJustify     VerticalAlignment = "justify"
	VAlignDistributed VerticalAlignment = "distributed"
)

// Alignment configures cell text placement. The zero value means unset.
type Alignment struct {
	Horizontal   HorizontalAlignment
	Vertical     VerticalAlignment
	WrapText     bool
	ShrinkToFit  bool
	Indent       int
	TextRotation int
}

// BorderStyle enumerates line styles for cell borders.
type BorderStyle string

const (
	BorderNone       BorderStyle = "none"
	BorderThin       BorderStyle = "thin"
	BorderMedium     BorderStyle = "medium"
	BorderThick      BorderStyle = "thick"
	BorderDouble     BorderStyle = "double"
	BorderDotted     BorderStyle = "dotted"
	BorderDashed     BorderStyle = "dashed"
	BorderDashDot    BorderStyle = "dashDot"
	BorderDashDotDot BorderStyle = "dashDotDot"
)

// Border configures the four cell edges. Empty sides are not drawn.
type Border struct {
	Left   BorderStyle
	Right  BorderStyle
	Top    BorderStyle
	Bottom BorderStyle
	Color  Color
}

// BorderAllSides creates a border with the same style on every edge.
func BorderAllSides(style BorderStyle, color Color) *Border {
	return &Border{Left: style, Right: style, Top: style, Bottom: style, Color: color}
}

// UnderlineStyle enumerates font underline variants.
type UnderlineStyle string

const (
	UnderlineNone   UnderlineStyle = "none"
	UnderlineSingle UnderlineStyle = "single"
	UnderlineDouble UnderlineStyle = "double"
)

// Font configures cell typography. Zero-valued fields are unset.
type Font struct {
	Family        string
	Size          float64
	Bold          bool
	Italic        bool
	Underline     UnderlineStyle
	Strikethrough bool
	Color         Color
}

// FillPattern enumerates cell background fill patterns.
type FillPattern string

const (
	FillNone            FillPattern = "none"
	FillSolid           FillPattern = "solid"
	FillGray125         FillPattern = "gray125"
	FillGray0625        FillPattern = "gray0625"
	FillDarkGray        FillPattern = "darkGray"
	FillLightGray       FillPattern = "lightGray"
	FillDarkHorizontal  FillPattern = "darkHorizontal"
	FillDarkVertical    FillPattern = "darkVertical"
	FillDarkDown        FillPattern = "darkDown"
	FillDarkUp          FillPattern = "darkUp"
	FillDarkGrid        FillPattern = "darkGrid"
	FillDarkTrellis     FillPattern = "darkTrellis"
	FillLightHorizontal FillPattern = "lightHorizontal"
	FillLightVertical   FillPattern = "lightVertical"
	FillLightDown       FillPattern = "lightDown"
	FillLightUp         FillPattern = "lightUp"
	FillLightGrid       FillPattern = "lightGrid"
	FillLightTrellis    FillPattern = "lightTrellis"
)

// Fill configures the cell background.
type Fill struct {
	Pattern    FillPattern
	Foreground Color
	Background Color
}

// CellStyle aggregates the optional style components of a cell. Nil
// components are unset. CellStyle values are treated as immutable; Merge
// produces a new value.
type CellStyle struct {
	Font         *Font
	Fill         *Fill
	Border       *Border
	Alignment    *Alignment
	NumberFormat string
}

// Merge combines the style with an override. Every non-nil (or, for the
// number format, non-empty) field of other replaces the corresponding field
// wholesale; components are never merged sub-field by sub-field. A nil
// override returns the receiver unchanged.
func (s *CellStyle) Merge(other *CellStyle) *CellStyle {
	if other == nil {
		return s
	}
	if s == nil {
		return other
	}
	merged := *s
	if other.Font != nil {
		merged.Font = other.Font
	}
	if other.Fill != nil {
		merged.Fill = other.Fill
	}
	if other.Border != nil {
		merged.Border = other.Border
	}
	if other.Alignment != nil {
		merged.Alignment = other.Alignment
	}
	if other.NumberFormat != "" {
		merged.NumberFormat = other.NumberFormat
	}
	return &merged
}

// HeaderStyle returns the built-in header preset: bold text on a light gray
// solid fill, centered, thin borders.
func HeaderStyle() *CellStyle {
	return &CellStyle{
		Font: &Font{Bold: true, Size: 11},
		Fill: &Fill{Pattern: FillSolid, Foreground: MustColor("D3D3D3")},
		Alignment: &Alignment{
			Horizontal: AlignCenter,
			Vertical:   VAlignCenter,
		},
		Border: BorderAllSides(BorderThin, ""),
	}
}

// TitleStyle returns the built-in title preset.
func TitleStyle() *CellStyle {
	return &CellStyle{
		Font: &Font{Bold: true, Size: 14},
		Alignment: &Alignment{
			Horizontal: AlignCenter,
			Vertical:   VAlignCenter,
		},
	}
}

// CurrencyStyle returns the built-in preset for currency values.
func CurrencyStyle() *CellStyle {
	return &CellStyle{Alignment: &Alignment{Horizontal: AlignRight}}
}

// PercentageStyle returns the built-in preset for percentage values.
func PercentageStyle() *CellStyle {
	return &CellStyle{Alignment: &Alignment{Horizontal: AlignRight}}
}

// NegativeValueStyle returns the built-in preset for negative values: red
// text, right aligned.
func NegativeValueStyle() *CellStyle {
	return &CellStyle{
		Font:      &Font{Color: MustColor("FF0000")},
		Alignment: &Alignment{Horizontal: AlignRight},
	}
}
