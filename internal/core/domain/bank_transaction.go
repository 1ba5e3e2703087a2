package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a staged bank transaction.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusPosted   TransactionStatus = "POSTED"
	StatusRejected TransactionStatus = "REJECTED"
)

// RawTransaction is the in-memory result of parsing one CSV row. It is never
// persisted directly; the import pipeline converts it into a BankTransaction.
type RawTransaction struct {
	SourceBank         string
	SourceAccountLabel string
	TransactionDate    time.Time
	PostDate           time.Time
	Amount             decimal.Decimal // signed; negative = outflow
	Description        string
	OriginalCategory   string
	CardNumber         string
	TransactionType    string
	IsPersonal         bool
	RawLine            string
}

// BankTransaction is a staged transaction awaiting or having received
// accounting treatment.
//
// JournalEntryID is non-nil iff Status is POSTED; a transaction is eligible
// for posting iff Status is APPROVED and JournalEntryID is nil.
type BankTransaction struct {
	TransactionID      string            `json:"transactionID"`   // Primary Key (UUID)
	SourceAccountID    string            `json:"sourceAccountID"` // FK -> Account (the bank/card)
	TransactionDate    time.Time         `json:"transactionDate"`
	PostDate           time.Time         `json:"postDate"`
	Amount             decimal.Decimal   `json:"amount"` // signed; negative = outflow
	Description        string            `json:"description"`
	OriginalCategory   string            `json:"originalCategory"`
	SuggestedAccountID string            `json:"suggestedAccountID"` // Nullable FK -> Account
	SuggestedCategory  string            `json:"suggestedCategory"`
	SuggestedMemo      string            `json:"suggestedMemo"`
	ConfidenceScore    int               `json:"confidenceScore"` // 0-100
	Status             TransactionStatus `json:"status"`
	IsPersonal         bool              `json:"isPersonal"` // routes through equity instead of P&L
	ApprovedAccountID  string            `json:"approvedAccountID"` // Nullable FK -> Account, review override
	ApprovedCategory   string            `json:"approvedCategory"`
	ApprovedMemo       string            `json:"approvedMemo"`
	JournalEntryID     *string           `json:"journalEntryID"` // set exactly once, on posting
	RawLine            string            `json:"-"`
	AuditFields
}

// CategoryAccountID returns the account the transaction should be posted
// against: the reviewer's override when present, else the advisor suggestion.
func (t BankTransaction) CategoryAccountID() string {
	if t.ApprovedAccountID != "" {
		return t.ApprovedAccountID
	}
	return t.SuggestedAccountID
}

// Postable reports whether the transaction is eligible for journal posting.
func (t BankTransaction) Postable() bool {
	return t.Status == StatusApproved && t.JournalEntryID == nil
}
