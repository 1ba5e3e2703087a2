package services

import (
	"context"

	"github.com/finbooks/finbooks_app/internal/dto"
)

// PosterSvcFacade converts approved bank transactions into balanced journal
// entries. The whole batch runs in one database transaction: a fatal error
// for any transaction rolls back every posting in the batch.
type PosterSvcFacade interface {
	PostBatch(ctx context.Context, transactionIDs []string, userID string) (*dto.PostBatchResponse, error)

	// GetJournalEntry retrieves a posted journal entry with its lines, each
	// line annotated with its account name.
	GetJournalEntry(ctx context.Context, journalEntryID string) (*dto.JournalEntryResponse, error)
}
