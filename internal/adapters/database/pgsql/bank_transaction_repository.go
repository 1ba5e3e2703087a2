package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
)

type bankTransactionRepository struct {
	BaseRepository
}

// NewBankTransactionRepository creates a new repository for staged bank
// transactions.
func NewBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryWithTx {
	return &bankTransactionRepository{BaseRepository: NewBaseRepository(pool)}
}

var _ portsrepo.BankTransactionRepositoryWithTx = (*bankTransactionRepository)(nil)

const bankTransactionColumns = `transaction_id, source_account_id, transaction_date, post_date, amount, description,
	original_category, suggested_account_id, suggested_category, suggested_memo, confidence_score,
	status, is_personal, approved_account_id, approved_category, approved_memo, journal_entry_id,
	raw_line, created_at, created_by, last_updated_at, last_updated_by`

func scanBankTransaction(row pgx.Row) (*domain.BankTransaction, error) {
	var txn domain.BankTransaction
	var suggestedAccountID, approvedAccountID *string
	err := row.Scan(
		&txn.TransactionID,
		&txn.SourceAccountID,
		&txn.TransactionDate,
		&txn.PostDate,
		&txn.Amount,
		&txn.Description,
		&txn.OriginalCategory,
		&suggestedAccountID,
		&txn.SuggestedCategory,
		&txn.SuggestedMemo,
		&txn.ConfidenceScore,
		&txn.Status,
		&txn.IsPersonal,
		&approvedAccountID,
		&txn.ApprovedCategory,
		&txn.ApprovedMemo,
		&txn.JournalEntryID,
		&txn.RawLine,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if suggestedAccountID != nil {
		txn.SuggestedAccountID = *suggestedAccountID
	}
	if approvedAccountID != nil {
		txn.ApprovedAccountID = *approvedAccountID
	}
	return &txn, nil
}

// nullable maps the domain's empty-string convention for optional account
// references onto SQL NULL, so the FK constraint holds.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SaveTransactionsInTx stages one import batch's transactions inside the
// batch's transaction.
func (r *bankTransactionRepository) SaveTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	batch := &pgx.Batch{}
	for _, txn := range transactions {
		batch.Queue(query,
			txn.TransactionID,
			txn.SourceAccountID,
			txn.TransactionDate,
			txn.PostDate,
			txn.Amount,
			txn.Description,
			txn.OriginalCategory,
			nullable(txn.SuggestedAccountID),
			txn.SuggestedCategory,
			txn.SuggestedMemo,
			txn.ConfidenceScore,
			txn.Status,
			txn.IsPersonal,
			nullable(txn.ApprovedAccountID),
			txn.ApprovedCategory,
			txn.ApprovedMemo,
			txn.JournalEntryID,
			txn.RawLine,
			txn.CreatedAt,
			txn.CreatedBy,
			txn.LastUpdatedAt,
			txn.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert bank transaction batch: %w", err)
	}
	return nil
}

// UpdateReview applies a review decision: status plus the approved override
// fields.
func (r *bankTransactionRepository) UpdateReview(ctx context.Context, transaction domain.BankTransaction) error {
	query := `
		UPDATE bank_transactions
		SET status = $2, approved_account_id = $3, approved_category = $4, approved_memo = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		transaction.TransactionID,
		transaction.Status,
		nullable(transaction.ApprovedAccountID),
		transaction.ApprovedCategory,
		transaction.ApprovedMemo,
		transaction.LastUpdatedAt,
		transaction.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update review for transaction %s: %w", transaction.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkPostedInTx links a transaction to its journal entry and flips it to
// POSTED. The WHERE clause re-checks eligibility inside the transaction, so a
// row that was posted or un-approved concurrently surfaces as ErrConflict and
// rolls the batch back.
func (r *bankTransactionRepository) MarkPostedInTx(ctx context.Context, tx pgx.Tx, transactionID string, journalEntryID string, userID string, now time.Time) error {
	query := `
		UPDATE bank_transactions
		SET status = $3, journal_entry_id = $2, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = $6 AND journal_entry_id IS NULL;
	`
	tag, err := tx.Exec(ctx, query,
		transactionID,
		journalEntryID,
		domain.StatusPosted,
		now,
		userID,
		domain.StatusApproved,
	)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s posted: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrConflict)
	}
	return nil
}

// FindTransactionByID retrieves a single staged transaction.
func (r *bankTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE transaction_id = $1;`
	txn, err := scanBankTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindTransactionsByIDs retrieves the requested transactions; missing ids are
// simply absent from the result.
func (r *bankTransactionRepository) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) ([]domain.BankTransaction, error) {
	if len(transactionIDs) == 0 {
		return []domain.BankTransaction{}, nil
	}
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE transaction_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by IDs: %w", err)
	}
	defer rows.Close()
	return collectBankTransactions(rows)
}

// ListTransactionsByStatus retrieves a page of transactions in the given
// status, newest first.
func (r *bankTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int, offset int) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE status = $1
		ORDER BY transaction_date DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by status %s: %w", status, err)
	}
	defer rows.Close()
	return collectBankTransactions(rows)
}

// ListCategorizedExamples retrieves recently reviewed transactions that carry
// a category, used as few-shot context for the classifier.
func (r *bankTransactionRepository) ListCategorizedExamples(ctx context.Context, limit int) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE status IN ($1, $2)
		  AND (approved_category <> '' OR suggested_category <> '')
		ORDER BY last_updated_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, domain.StatusApproved, domain.StatusPosted, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query categorized examples: %w", err)
	}
	defer rows.Close()
	return collectBankTransactions(rows)
}

func collectBankTransactions(rows pgx.Rows) ([]domain.BankTransaction, error) {
	transactions := []domain.BankTransaction{}
	for rows.Next() {
		txn, err := scanBankTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank transaction rows: %w", err)
	}
	return transactions, nil
}
