package services

import (
	"context"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/dto"
)

// ImporterSvcFacade ingests one bank statement file: parse, resolve accounts,
// categorize and stage, all inside a single unit of work.
type ImporterSvcFacade interface {
	ImportStatement(ctx context.Context, req dto.ImportRequest, userID string) (*dto.ImportResponse, error)
}

// BankTransactionSvcFacade exposes the staged-transaction review lifecycle.
type BankTransactionSvcFacade interface {
	// ListTransactions retrieves staged transactions filtered by status.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.BankTransaction, error)

	// ApproveTransaction marks a pending transaction approved, optionally
	// overriding the suggested account/category/memo.
	ApproveTransaction(ctx context.Context, transactionID string, req dto.ApproveTransactionRequest, userID string) (*domain.BankTransaction, error)

	// RejectTransaction marks a pending transaction rejected.
	RejectTransaction(ctx context.Context, transactionID string, userID string) (*domain.BankTransaction, error)
}
