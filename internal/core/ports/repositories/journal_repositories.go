package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// JournalReader defines read operations for posted journal data.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header.
	FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of a journal entry.
	FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalEntryLine, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveEntryInTx persists one journal entry and its lines inside the
	// posting batch's transaction.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalEntryLine) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx adds transaction management, used by the posting
// batch which owns its unit of work.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
