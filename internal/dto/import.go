package dto

// ImportRequest carries one statement file plus optional operator overrides
// for the source account. Content is the raw CSV bytes.
type ImportRequest struct {
	Content         []byte
	SourceAccountID string // use this account instead of resolving one
	SourceName      string // override the dialect's bank/label synthesis
	SourceType      string // "Bank" or "CreditCard" hint for auto-creation
}

// ImportResponse reports the outcome of one import batch.
type ImportResponse struct {
	Success                 bool                      `json:"success"`
	Count                   int                       `json:"count"`
	Skipped                 int                       `json:"skipped"`
	Format                  string                    `json:"format"`
	SourceAccountsCreated   int                       `json:"sourceAccountsCreated"`
	CategoryAccountsCreated int                       `json:"categoryAccountsCreated"`
	Transactions            []BankTransactionResponse `json:"transactions"`
}
