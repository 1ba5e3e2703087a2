package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// JournalEntryLineResponse is one leg of a journal entry, annotated with the
// name of the account it hits.
type JournalEntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName,omitempty"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a posted journal entry.
type JournalEntryResponse struct {
	JournalEntryID  string                     `json:"journalEntryID"`
	TransactionDate time.Time                  `json:"transactionDate"`
	Description     string                     `json:"description"`
	Reference       string                     `json:"reference"`
	Status          string                     `json:"status"`
	PostedAt        time.Time                  `json:"postedAt"`
	PostedBy        string                     `json:"postedBy"`
	Lines           []JournalEntryLineResponse `json:"lines"`
}

// ToJournalEntryResponse converts a journal entry and its lines to the DTO,
// resolving account names from the supplied lookup.
func ToJournalEntryResponse(entry *domain.JournalEntry, lines []domain.JournalEntryLine, accounts map[string]domain.Account) JournalEntryResponse {
	lineResponses := make([]JournalEntryLineResponse, len(lines))
	for i, line := range lines {
		lineResponses[i] = JournalEntryLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			AccountName: accounts[line.AccountID].Name,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
		}
	}
	return JournalEntryResponse{
		JournalEntryID:  entry.JournalEntryID,
		TransactionDate: entry.TransactionDate,
		Description:     entry.Description,
		Reference:       entry.Reference,
		Status:          string(entry.Status),
		PostedAt:        entry.PostedAt,
		PostedBy:        entry.PostedBy,
		Lines:           lineResponses,
	}
}
