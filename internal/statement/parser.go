package statement

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/moneta-dev/moneta/internal/transaction"
)

// Parser reads bank statement CSV exports and produces transaction
// params. It auto-detects which bank layout is being used by matching
// column headers against known profiles, after normalizing charset and
// field delimiter.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := newUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	sample, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sampling statement: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(sample)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no recognized statement layout: tried %s", profileNames())
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks the field separator by counting candidates in
// the first chunk of the file. European exports use semicolons so the
// comma stays free for decimals.
func sniffDelimiter(sample []byte) rune {
	if bytes.Count(sample, []byte{';'}) > bytes.Count(sample, []byte{','}) {
		return ';'
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func profileNames() string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}

	return strings.Join(names, ", ")
}

// parseRows extracts transactions from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var params []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, dateIdx, p.DateFormats)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, isIncome, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		params = append(params, transaction.CreateParams{
			Amount:         amount,
			IsIncome:       isIncome,
			Description:    desc,
			RawDescription: desc,
			Date:           date,
		})
	}

	return params, nil
}

// parseDate tries the profile's date layouts against the given cell.
// Returns false for empty cells or unparseable values (footer rows, etc).
func parseDate(row []string, idx int, formats []string) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// rowAmount extracts the amount and direction from a row based on the
// profile's amount mode.
func rowAmount(p *Profile, cols colIndex, row []string) (int64, bool, bool) {
	switch p.AmountMode {
	case amountSigned:
		return signedAmount(row, cols[p.AmountCol], p.Decimals)
	case amountSplit:
		return splitAmount(row, cols[p.DebitCol], cols[p.CreditCol], p.Decimals)
	}

	return 0, false, false
}

// signedAmount handles a single signed amount column. Negative values
// are expenses, positive values income.
func signedAmount(row []string, idx int, style decimalStyle) (amount int64, isIncome, ok bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false, false
	}

	cents, err := parseAmount(s, style)
	if err != nil || cents == 0 {
		return 0, false, false
	}

	if cents < 0 {
		return -cents, false, true
	}

	return cents, true, true
}

// splitAmount handles separate debit/credit columns.
func splitAmount(row []string, debitIdx, creditIdx int, style decimalStyle) (amount int64, isIncome, ok bool) {
	if s := cellValue(row, debitIdx); s != "" {
		if cents, err := parseAmount(s, style); err == nil && cents != 0 {
			return abs(cents), false, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		if cents, err := parseAmount(s, style); err == nil && cents != 0 {
			return abs(cents), true, true
		}
	}

	return 0, false, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
