package domain

import "github.com/shopspring/decimal"

// JournalEntryLine is one leg of a journal entry. Exactly one of Debit or
// Credit is non-zero per line, and for any entry the debit and credit totals
// across its lines must be equal.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"`         // Primary Key (UUID)
	JournalEntryID string          `json:"journalEntryID"` // FK -> JournalEntry
	AccountID      string          `json:"accountID"`      // FK -> Account
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	AuditFields
}

// IsDebit reports whether the line carries its amount on the debit side.
func (l JournalEntryLine) IsDebit() bool {
	return !l.Debit.IsZero()
}

// Amount returns the non-zero side of the line.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
