package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(pool),
		BankTxnRepo: NewBankTransactionRepository(pool),
		JournalRepo: NewJournalRepository(pool),
	}
}
