// Package bankcsv normalizes heterogeneous bank and card CSV exports into
// the canonical RawTransaction shape consumed by the import pipeline.
package bankcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
)

const wellsFargoColumns = 5

// Result is the outcome of parsing one statement file. SkippedRows counts
// rows dropped for unparseable required fields (date, amount); these are
// reported to the caller, never fatal to the batch.
type Result struct {
	Dialect      Dialect
	Transactions []domain.RawTransaction
	SkippedRows  int
}

// dateLayouts covers the formats the supported exports actually emit.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
}

// Parse reads raw CSV bytes, detects the dialect and converts every row into
// a RawTransaction. An unrecognized layout or empty file rejects the whole
// file; individual bad rows are skipped and counted.
func Parse(content []byte) (*Result, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := readAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnrecognizedFormat, err)
	}
	if len(records) == 0 {
		return nil, apperrors.ErrEmptyFile
	}

	first := records[0]
	hasHeader := !looksLikeDataRow(first)
	dialect := DetectFormat(first, hasHeader)
	if dialect.IsUnknown() {
		return nil, fmt.Errorf("%w: %d columns, header=%t", apperrors.ErrUnrecognizedFormat, len(first), hasHeader)
	}

	rows := records
	if dialect.HasHeader {
		rows = records[1:]
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyFile
	}

	result := &Result{Dialect: dialect}
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		txn, err := dialect.extract(row)
		if err != nil {
			result.SkippedRows++
			continue
		}
		txn.RawLine = strings.Join(row, ",")
		result.Transactions = append(result.Transactions, txn)
	}
	return result, nil
}

func readAll(reader *csv.Reader) ([][]string, error) {
	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// looksLikeDataRow distinguishes a headerless data row from a header row:
// headers never begin with a parseable date.
func looksLikeDataRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := parseDate(row[0])
	return err == nil
}

func isBlankRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(s)
}

func extractWellsFargo(row []string) (domain.RawTransaction, error) {
	if len(row) < wellsFargoColumns {
		return domain.RawTransaction{}, fmt.Errorf("expected %d columns, got %d", wellsFargoColumns, len(row))
	}
	date, err := parseDate(row[0])
	if err != nil {
		return domain.RawTransaction{}, err
	}
	amount, err := parseAmount(row[1])
	if err != nil {
		return domain.RawTransaction{}, err
	}
	return domain.RawTransaction{
		SourceBank:         "Wells Fargo",
		SourceAccountLabel: "Checking",
		TransactionDate:    date,
		PostDate:           date,
		Amount:             amount,
		Description:        strings.TrimSpace(row[4]),
	}, nil
}

func extractCapitalOne(row []string) (domain.RawTransaction, error) {
	if len(row) < 7 {
		return domain.RawTransaction{}, fmt.Errorf("expected 7 columns, got %d", len(row))
	}
	date, err := parseDate(row[0])
	if err != nil {
		return domain.RawTransaction{}, err
	}
	postDate := date
	if pd, err := parseDate(row[1]); err == nil {
		postDate = pd
	}

	// Separate debit/credit columns fold into one signed amount: outflows
	// (debits) become negative regardless of the source polarity convention.
	debit, debitErr := parseAmount(row[5])
	credit, creditErr := parseAmount(row[6])
	var amount decimal.Decimal
	switch {
	case creditErr == nil && credit.IsPositive():
		amount = credit
	case debitErr == nil:
		amount = debit.Neg()
	default:
		return domain.RawTransaction{}, fmt.Errorf("no usable debit or credit amount")
	}

	cardNo := strings.TrimSpace(row[2])
	label := "Card"
	if cardNo != "" {
		label = "Card " + cardNo
	}
	return domain.RawTransaction{
		SourceBank:         "Capital One",
		SourceAccountLabel: label,
		TransactionDate:    date,
		PostDate:           postDate,
		Amount:             amount,
		Description:        strings.TrimSpace(row[3]),
		OriginalCategory:   strings.TrimSpace(row[4]),
		CardNumber:         cardNo,
	}, nil
}

func extractChase(row []string) (domain.RawTransaction, error) {
	if len(row) < 6 {
		return domain.RawTransaction{}, fmt.Errorf("expected at least 6 columns, got %d", len(row))
	}
	date, err := parseDate(row[0])
	if err != nil {
		return domain.RawTransaction{}, err
	}
	postDate := date
	if pd, err := parseDate(row[1]); err == nil {
		postDate = pd
	}
	amount, err := parseAmount(row[5])
	if err != nil {
		return domain.RawTransaction{}, err
	}
	return domain.RawTransaction{
		SourceBank:         "Chase",
		SourceAccountLabel: "Credit Card",
		TransactionDate:    date,
		PostDate:           postDate,
		Amount:             amount,
		Description:        strings.TrimSpace(row[2]),
		OriginalCategory:   strings.TrimSpace(row[3]),
		TransactionType:    strings.TrimSpace(row[4]),
	}, nil
}

func extractQBSelfEmployed(row []string) (domain.RawTransaction, error) {
	if len(row) < 5 {
		return domain.RawTransaction{}, fmt.Errorf("expected at least 5 columns, got %d", len(row))
	}
	date, err := parseDate(row[0])
	if err != nil {
		return domain.RawTransaction{}, err
	}
	amount, err := parseAmount(row[2])
	if err != nil {
		return domain.RawTransaction{}, err
	}
	business := strings.EqualFold(strings.TrimSpace(row[3]), "y") ||
		strings.EqualFold(strings.TrimSpace(row[3]), "yes") ||
		strings.EqualFold(strings.TrimSpace(row[3]), "business")

	txn := domain.RawTransaction{
		SourceBank:         "QuickBooks",
		SourceAccountLabel: "Self-Employed",
		TransactionDate:    date,
		PostDate:           date,
		Amount:             amount,
		Description:        strings.TrimSpace(row[1]),
		OriginalCategory:   strings.TrimSpace(row[4]),
		IsPersonal:         !business,
	}
	if len(row) > 5 {
		txn.TransactionType = strings.TrimSpace(row[5])
	}
	return txn, nil
}
