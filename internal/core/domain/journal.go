package domain

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	// Posted is the only status the import engine ever writes; there is no
	// draft state for bank-feed postings.
	Posted JournalStatus = "POSTED"
)

// JournalEntry is the header for a balanced accounting event. Entries created
// by the posting engine are immutable once written.
type JournalEntry struct {
	JournalEntryID  string        `json:"journalEntryID"` // Primary Key (UUID)
	TransactionDate time.Time     `json:"transactionDate"`
	Description     string        `json:"description"`
	Reference       string        `json:"reference"` // traceable back to the originating BankTransaction
	Status          JournalStatus `json:"status"`
	PostedAt        time.Time     `json:"postedAt"`
	PostedBy        string        `json:"postedBy"`
	AuditFields
}
