package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned means one signed column (e.g. "Amount" with value "-10.00").
	amountSigned amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// decimalStyle determines how amount strings are interpreted.
type decimalStyle int

const (
	// decimalAuto infers the decimal separator from the value itself.
	decimalAuto decimalStyle = iota
	// decimalEuropean expects "1.234,56".
	decimalEuropean
	// decimalUS expects "1,234.56".
	decimalUS
)

// Profile describes the column layout of one bank's statement export.
// Adding support for a new bank is just adding a Profile to the
// profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	DateFormats []string
	DescCol     string
	AmountMode  amountMode
	Decimals    decimalStyle
	AmountCol   string // used when AmountMode == amountSigned
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific profiles come first to avoid false
// matches.
var profiles = []Profile{
	{
		Name:        "us card",
		DateCol:     "Transaction Date",
		DateFormats: []string{"01/02/2006", "1/2/2006"},
		DescCol:     "Description",
		AmountMode:  amountSplit,
		Decimals:    decimalUS,
		DebitCol:    "Debit",
		CreditCol:   "Credit",
	},
	{
		Name:        "giro",
		DateCol:     "Buchungstag",
		DateFormats: []string{"02.01.2006", "02.01.06"},
		DescCol:     "Verwendungszweck",
		AmountMode:  amountSigned,
		Decimals:    decimalEuropean,
		AmountCol:   "Betrag",
	},
	{
		Name:        "generic",
		DateCol:     "Date",
		DateFormats: []string{"2006-01-02", "02/01/2006"},
		DescCol:     "Description",
		AmountMode:  amountSigned,
		Decimals:    decimalAuto,
		AmountCol:   "Amount",
	},
}
