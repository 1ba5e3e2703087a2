package dto

import (
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a chart-of-accounts
// entry (used, among other things, to seed the owner equity accounts).
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Subtype     string `json:"subtype"`
	Description string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string    `json:"accountID"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	AccountType string    `json:"accountType"`
	Subtype     string    `json:"subtype"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		Subtype:     a.Subtype,
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
