package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
)

type journalRepository struct {
	BaseRepository
}

// NewJournalRepository creates a new repository for journal entries and their
// lines.
func NewJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &journalRepository{BaseRepository: NewBaseRepository(pool)}
}

var _ portsrepo.JournalRepositoryWithTx = (*journalRepository)(nil)

// SaveEntryInTx inserts one entry header and all its lines inside the posting
// batch's transaction.
func (r *journalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	entryQuery := `
		INSERT INTO journal_entries (journal_entry_id, transaction_date, description, reference, status, posted_at, posted_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, entryQuery,
		entry.JournalEntryID,
		entry.TransactionDate,
		entry.Description,
		entry.Reference,
		entry.Status,
		entry.PostedAt,
		entry.PostedBy,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.JournalEntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, journal_entry_id, account_id, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.JournalEntryID,
			line.AccountID,
			line.Description,
			line.Debit,
			line.Credit,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for journal entry %s: %w", entry.JournalEntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header.
func (r *journalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT journal_entry_id, transaction_date, description, reference, status, posted_at, posted_by, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE journal_entry_id = $1;
	`
	var entry domain.JournalEntry
	err := r.Pool.QueryRow(ctx, query, journalEntryID).Scan(
		&entry.JournalEntryID,
		&entry.TransactionDate,
		&entry.Description,
		&entry.Reference,
		&entry.Status,
		&entry.PostedAt,
		&entry.PostedBy,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", journalEntryID, err)
	}
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of a journal entry in insertion
// order.
func (r *journalRepository) FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, journal_entry_id, account_id, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entry_lines
		WHERE journal_entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal entry %s: %w", journalEntryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var line domain.JournalEntryLine
		if err := rows.Scan(
			&line.LineID,
			&line.JournalEntryID,
			&line.AccountID,
			&line.Description,
			&line.Debit,
			&line.Credit,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row for entry %s: %w", journalEntryID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows for entry %s: %w", journalEntryID, err)
	}
	return lines, nil
}
