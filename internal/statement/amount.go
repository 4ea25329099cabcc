package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses an amount string into cents according to the
// profile's decimal style. Currency symbols and whitespace around the
// value are tolerated.
func parseAmount(s string, style decimalStyle) (int64, error) {
	s = strings.Trim(s, "€$£  ")

	if style == decimalAuto {
		// Whichever separator comes last is the decimal one.
		if strings.LastIndexByte(s, ',') > strings.LastIndexByte(s, '.') {
			style = decimalEuropean
		} else {
			style = decimalUS
		}
	}

	switch style {
	case decimalEuropean:
		// "1.234,56": dots are thousand separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case decimalUS:
		// "1,234.56": commas are thousand separators.
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return d.Shift(2).Round(0).IntPart(), nil
}
