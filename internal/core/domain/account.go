package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Common account subtypes. Subtype is free text; these are the values the
// import pipeline itself assigns.
const (
	SubtypeBank       = "Bank"
	SubtypeCreditCard = "CreditCard"
	SubtypeOperating  = "Operating"
)

// Names of the equity accounts personal transactions are routed through.
// These are a chart-of-accounts precondition for posting, never auto-created.
const (
	OwnersDrawAccountName         = "Owner's Draw"
	OwnersContributionAccountName = "Owner's Contribution"
)

// Account represents a chart-of-accounts entry.
// Name uniquely identifies an account for import-time resolution; the
// resolver must never create two accounts sharing a Name.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	Code        string      `json:"code"`        // Unique human-readable code; generated for auto-created accounts
	Name        string      `json:"name"`        // Unique within the ledger for matching purposes
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Subtype     string      `json:"subtype"`     // Free text classification, e.g. "Bank", "CreditCard"
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`
	AuditFields
}
