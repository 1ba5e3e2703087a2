package bankcsv_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/bankcsv"
)

func TestParseWellsFargo(t *testing.T) {
	content := []byte(`"2024-01-15","-42.50","*","","AMAZON.COM PURCHASE"
"2024-01-16","1200.00","*","","CLIENT PAYMENT"
`)

	result, err := bankcsv.Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "WELLS_FARGO", result.Dialect.Name)
	assert.Equal(t, 0, result.SkippedRows)
	require.Len(t, result.Transactions, 2)

	first := result.Transactions[0]
	assert.Equal(t, "Wells Fargo", first.SourceBank)
	assert.Equal(t, "Checking", first.SourceAccountLabel)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first.TransactionDate)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("-42.50")))
	assert.Equal(t, "AMAZON.COM PURCHASE", first.Description)
	assert.False(t, first.IsPersonal)

	second := result.Transactions[1]
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("1200.00")))
}

func TestParseCapitalOneFoldsDebitCreditColumns(t *testing.T) {
	content := []byte(`Transaction Date,Posted Date,Card No.,Description,Category,Debit,Credit
2024-02-01,2024-02-02,1234,COFFEE SHOP,Dining,5.75,
2024-02-03,2024-02-04,1234,PAYMENT THANK YOU,Payment,,250.00
`)

	result, err := bankcsv.Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "CAPITAL_ONE", result.Dialect.Name)
	require.Len(t, result.Transactions, 2)

	outflow := result.Transactions[0]
	assert.True(t, outflow.Amount.Equal(decimal.RequireFromString("-5.75")), "debits fold to negative, got %s", outflow.Amount)
	assert.Equal(t, "Dining", outflow.OriginalCategory)
	assert.Equal(t, "Card 1234", outflow.SourceAccountLabel)
	assert.Equal(t, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), outflow.PostDate)

	inflow := result.Transactions[1]
	assert.True(t, inflow.Amount.Equal(decimal.RequireFromString("250.00")))
}

func TestParseChase(t *testing.T) {
	content := []byte(`Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/10/2024,01/11/2024,OFFICE SUPPLIES INC,Shopping,Sale,-89.99,
01/12/2024,01/13/2024,REFUND,Shopping,Return,15.00,
`)

	result, err := bankcsv.Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "CHASE", result.Dialect.Name)
	require.Len(t, result.Transactions, 2)

	txn := result.Transactions[0]
	assert.Equal(t, "Chase", txn.SourceBank)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("-89.99")))
	assert.Equal(t, "OFFICE SUPPLIES INC", txn.Description)
	assert.Equal(t, "Shopping", txn.OriginalCategory)
	assert.Equal(t, "Sale", txn.TransactionType)
}

func TestParseQBSelfEmployedBusinessMarker(t *testing.T) {
	content := []byte(`Date,Transaction,Amount,Business,Category,Note
2024-03-01,SOFTWARE SUBSCRIPTION,-29.00,Y,Software,
2024-03-02,GROCERY STORE,-54.20,N,Personal,
`)

	result, err := bankcsv.Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "QB_SELF_EMPLOYED", result.Dialect.Name)
	require.Len(t, result.Transactions, 2)

	business := result.Transactions[0]
	assert.False(t, business.IsPersonal)
	assert.Equal(t, "Software", business.OriginalCategory)

	personal := result.Transactions[1]
	assert.True(t, personal.IsPersonal)
}

func TestParseRejectsUnknownLayout(t *testing.T) {
	// Three headerless columns match no known export.
	content := []byte(`2024-01-01,-10.00,SOMETHING
2024-01-02,-20.00,SOMETHING ELSE
`)

	_, err := bankcsv.Parse(content)
	assert.ErrorIs(t, err, apperrors.ErrUnrecognizedFormat)
}

func TestParseRejectsUnknownHeader(t *testing.T) {
	content := []byte(`Foo,Bar,Baz
1,2,3
`)

	_, err := bankcsv.Parse(content)
	assert.ErrorIs(t, err, apperrors.ErrUnrecognizedFormat)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := bankcsv.Parse([]byte(""))
	assert.ErrorIs(t, err, apperrors.ErrEmptyFile)
}

func TestParseHeaderOnlyFile(t *testing.T) {
	content := []byte("Transaction Date,Post Date,Description,Category,Type,Amount,Memo\n")
	_, err := bankcsv.Parse(content)
	assert.ErrorIs(t, err, apperrors.ErrEmptyFile)
}

func TestParseSkipsBadRowsAndCounts(t *testing.T) {
	content := []byte(`"2024-01-15","-42.50","*","","GOOD ROW"
"not-a-date","-10.00","*","","BAD DATE"
"2024-01-16","garbage","*","","BAD AMOUNT"
"2024-01-17","3.00","*","","ANOTHER GOOD ROW"
`)

	result, err := bankcsv.Parse(content)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SkippedRows)
	assert.Len(t, result.Transactions, 2)
}

func TestParseAmountFormats(t *testing.T) {
	// Currency symbols, thousands separators and parenthesized negatives all
	// appear in real exports.
	content := []byte(`"2024-01-15","$1,250.00","*","","DEPOSIT"
"2024-01-16","(42.50)","*","","PAREN NEGATIVE"
`)

	result, err := bankcsv.Parse(content)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.True(t, result.Transactions[0].Amount.Equal(decimal.RequireFromString("1250.00")))
	assert.True(t, result.Transactions[1].Amount.Equal(decimal.RequireFromString("-42.50")))
}

func TestParsePreservesRawLine(t *testing.T) {
	content := []byte(`"2024-01-15","-42.50","*","","AMAZON.COM"`)

	result, err := bankcsv.Parse(content)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "2024-01-15,-42.50,*,,AMAZON.COM", result.Transactions[0].RawLine)
}
