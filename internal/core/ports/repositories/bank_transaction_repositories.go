package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// BankTransactionReader defines read operations for staged bank transactions.
type BankTransactionReader interface {
	// FindTransactionByID retrieves a single staged transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// FindTransactionsByIDs retrieves the requested transactions. Missing ids
	// are simply absent from the result, not an error.
	FindTransactionsByIDs(ctx context.Context, transactionIDs []string) ([]domain.BankTransaction, error)

	// ListTransactionsByStatus retrieves a page of transactions in the given
	// lifecycle status, newest first.
	ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int, offset int) ([]domain.BankTransaction, error)

	// ListCategorizedExamples retrieves recently reviewed or posted
	// transactions that carry a category, for the classifier's few-shot
	// context.
	ListCategorizedExamples(ctx context.Context, limit int) ([]domain.BankTransaction, error)
}

// BankTransactionWriter defines write operations for staged bank transactions.
type BankTransactionWriter interface {
	// SaveTransactionsInTx stages the transactions of one import batch inside
	// the batch's transaction.
	SaveTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.BankTransaction) error

	// UpdateReview applies a human review decision (approve/reject with
	// optional overrides) to a transaction.
	UpdateReview(ctx context.Context, transaction domain.BankTransaction) error

	// MarkPostedInTx transitions a transaction to POSTED and links its journal
	// entry inside the posting batch's transaction. The update is conditional
	// on the transaction still being eligible; if no row matches it returns
	// apperrors.ErrConflict so the whole batch rolls back.
	MarkPostedInTx(ctx context.Context, tx pgx.Tx, transactionID string, journalEntryID string, userID string, now time.Time) error
}

// BankTransactionRepositoryFacade combines reader and writer.
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}

// BankTransactionRepositoryWithTx adds transaction management, used by the
// import batch which owns its unit of work.
type BankTransactionRepositoryWithTx interface {
	BankTransactionRepositoryFacade
	TransactionManager
}
