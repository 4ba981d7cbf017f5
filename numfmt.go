package sheetengine

import (
	"strings"

	"github.com/xuri/nfp"
)

// Standard number format codes. These are format-agnostic codes that writers
// translate to their own representation.
const (
	FmtGeneral          = "General"
	FmtInteger          = "0"
	FmtDecimal1         = "0.0"
	FmtDecimal2         = "0.00"
	FmtDecimal3         = "0.000"
	FmtDecimal4         = "0.0000"
	FmtThousands        = "#,##0"
	FmtThousandsDec2    = "#,##0.00"
	FmtCurrencyBRL      = "R$ #,##0.00"
	FmtCurrencyBRLNeg   = "R$ #,##0.00_);[Red](R$ #,##0.00)"
	FmtCurrencyUSD      = "$#,##0.00"
	FmtCurrencyEUR      = "€#,##0.00"
	FmtAccountingBRL    = `_-R$ * #,##0.00_-;-R$ * #,##0.00_-;_-R$ * "-"??_-;_-@_-`
	FmtAccountingUSD    = `_-$* #,##0.00_-;-$* #,##0.00_-;_-$* "-"??_-;_-@_-`
	FmtPercentage       = "0%"
	FmtPercentage1      = "0.0%"
	FmtPercentage2      = "0.00%"
	FmtDateISO          = "YYYY-MM-DD"
	FmtDateBR           = "DD/MM/YYYY"
	FmtDateUS           = "MM/DD/YYYY"
	FmtDatetimeBR       = "DD/MM/YYYY HH:MM:SS"
	FmtDatetimeISO      = "YYYY-MM-DD HH:MM:SS"
	FmtTime             = "HH:MM:SS"
	FmtTimeShort        = "HH:MM"
	FmtScientific       = "0.00E+00"
	FmtFraction         = "# ?/?"
	FmtText             = "@"
)

// CurrencyFormat returns the display format for an ISO currency code,
// falling back to BRL for unknown codes.
func CurrencyFormat(code string) string {
	switch strings.ToUpper(code) {
	case "USD":
		return FmtCurrencyUSD
	case "EUR":
		return FmtCurrencyEUR
	default:
		return FmtCurrencyBRL
	}
}

// AccountingFormat returns the accounting format for an ISO currency code,
// falling back to BRL for unknown codes.
func AccountingFormat(code string) string {
	if strings.ToUpper(code) == "USD" {
		return FmtAccountingUSD
	}
	return FmtAccountingBRL
}

// validNumberFormat reports whether a custom number format code tokenizes
// into at most the four sections (positive, negative, zero, text) the
// format grammar allows. The empty string is treated as unset and valid.
func validNumberFormat(code string) bool {
	if code == "" {
		return true
	}
	p := nfp.NumberFormatParser()
	return len(p.Parse(code)) <= 4
}
