package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// BankTransactionResponse defines the data returned for a staged transaction.
type BankTransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	SourceAccountID    string          `json:"sourceAccountID"`
	TransactionDate    time.Time       `json:"transactionDate"`
	PostDate           time.Time       `json:"postDate"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	OriginalCategory   string          `json:"originalCategory,omitempty"`
	SuggestedAccountID string          `json:"suggestedAccountID,omitempty"`
	SuggestedCategory  string          `json:"suggestedCategory,omitempty"`
	SuggestedMemo      string          `json:"suggestedMemo,omitempty"`
	ConfidenceScore    int             `json:"confidenceScore"`
	Status             string          `json:"status"`
	IsPersonal         bool            `json:"isPersonal"`
	ApprovedAccountID  string          `json:"approvedAccountID,omitempty"`
	ApprovedCategory   string          `json:"approvedCategory,omitempty"`
	ApprovedMemo       string          `json:"approvedMemo,omitempty"`
	JournalEntryID     *string         `json:"journalEntryID,omitempty"`
}

// ApproveTransactionRequest carries the optional review overrides applied
// when approving a pending transaction.
type ApproveTransactionRequest struct {
	AccountID *string `json:"accountID"`
	Category  *string `json:"category"`
	Memo      *string `json:"memo"`
}

// ListTransactionsParams holds filter parameters for listing staged
// transactions.
type ListTransactionsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED POSTED REJECTED"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// ToBankTransactionResponse converts a domain.BankTransaction to its DTO.
func ToBankTransactionResponse(t *domain.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		TransactionID:      t.TransactionID,
		SourceAccountID:    t.SourceAccountID,
		TransactionDate:    t.TransactionDate,
		PostDate:           t.PostDate,
		Amount:             t.Amount,
		Description:        t.Description,
		OriginalCategory:   t.OriginalCategory,
		SuggestedAccountID: t.SuggestedAccountID,
		SuggestedCategory:  t.SuggestedCategory,
		SuggestedMemo:      t.SuggestedMemo,
		ConfidenceScore:    t.ConfidenceScore,
		Status:             string(t.Status),
		IsPersonal:         t.IsPersonal,
		ApprovedAccountID:  t.ApprovedAccountID,
		ApprovedCategory:   t.ApprovedCategory,
		ApprovedMemo:       t.ApprovedMemo,
		JournalEntryID:     t.JournalEntryID,
	}
}

// ToBankTransactionResponses converts a slice of domain.BankTransaction.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	responses := make([]BankTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToBankTransactionResponse(&txns[i])
	}
	return responses
}
