package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByName retrieves an account by its exact name.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account. Import batches load this once as
	// their resolution snapshot; it is never re-queried per row.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccountsInTx persists accounts created during an import batch inside
	// the batch's transaction, so a later failure rolls them back too.
	SaveAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
