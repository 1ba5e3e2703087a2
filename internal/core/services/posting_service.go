package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

var (
	// ErrEntryUnbalanced reports a journal entry whose debit and credit legs
	// differ. The posting engine always emits mirrored legs, so hitting this
	// means a bug, not bad input.
	ErrEntryUnbalanced = errors.New("journal entry legs do not balance")

	// ErrMissingCategory reports an approved transaction with neither an
	// approved nor a suggested category account. Batch-fatal.
	ErrMissingCategory = errors.New("transaction has no category account")

	// ErrEquitySeedMissing reports that the owner equity accounts required
	// for personal transactions are absent from the chart of accounts.
	ErrEquitySeedMissing = errors.New("owner equity accounts are not seeded")
)

// posting pairs one journal entry with its lines and the staged transaction
// it settles.
type posting struct {
	transactionID string
	entry         domain.JournalEntry
	lines         []domain.JournalEntryLine
}

// posterService converts approved bank transactions into balanced journal
// entries. A batch is all-or-nothing: every entry, line and status update
// commits in one database transaction, and any fatal error rolls the whole
// batch back. Non-eligible ids are skipped, which makes retries idempotent.
type posterService struct {
	bankTxnRepo portsrepo.BankTransactionRepositoryFacade
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewPosterService creates the journal posting service.
func NewPosterService(
	bankTxnRepo portsrepo.BankTransactionRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
) portssvc.PosterSvcFacade {
	return &posterService{
		bankTxnRepo: bankTxnRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.PosterSvcFacade = (*posterService)(nil)

func (s *posterService) PostBatch(ctx context.Context, transactionIDs []string, userID string) (*dto.PostBatchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	found, err := s.bankTxnRepo.FindTransactionsByIDs(ctx, transactionIDs)
	if err != nil {
		logger.Error("Failed to load transactions for posting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	byID := make(map[string]domain.BankTransaction, len(found))
	for _, txn := range found {
		byID[txn.TransactionID] = txn
	}

	// Eligibility: APPROVED and never posted. Everything else (pending,
	// rejected, already posted, unknown id, repeated occurrence of an id in
	// the same request) is silently skipped so the same id list can be
	// retried safely.
	var eligible []domain.BankTransaction
	var skipped []string
	seen := make(map[string]struct{}, len(transactionIDs))
	for _, id := range transactionIDs {
		if _, dup := seen[id]; dup {
			skipped = append(skipped, id)
			continue
		}
		seen[id] = struct{}{}
		txn, ok := byID[id]
		if !ok || !txn.Postable() {
			skipped = append(skipped, id)
			continue
		}
		eligible = append(eligible, txn)
	}

	if len(eligible) == 0 {
		return &dto.PostBatchResponse{Success: true, Count: 0, SkippedIDs: skipped}, nil
	}

	equity, err := s.loadEquityAccounts(ctx, eligible)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	postings := make([]posting, 0, len(eligible))
	for _, txn := range eligible {
		p, err := s.buildPosting(txn, equity, userID, now)
		if err != nil {
			// Batch-fatal: nothing in this batch posts.
			return nil, err
		}
		postings = append(postings, p)
	}

	// The entire batch runs inside a single transactional scope.
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin posting transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	for _, p := range postings {
		if err := s.journalRepo.SaveEntryInTx(ctx, tx, p.entry, p.lines); err != nil {
			logger.Error("Failed to save journal entry", slog.String("transaction_id", p.transactionID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save journal entry for transaction %s: %w", p.transactionID, err)
		}
		if err := s.bankTxnRepo.MarkPostedInTx(ctx, tx, p.transactionID, p.entry.JournalEntryID, userID, now); err != nil {
			logger.Error("Failed to mark transaction posted", slog.String("transaction_id", p.transactionID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to mark transaction %s posted: %w", p.transactionID, err)
		}
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit posting batch: %w", err)
	}

	logger.Info("Posting batch committed",
		slog.Int("posted", len(postings)),
		slog.Int("skipped", len(skipped)))

	return &dto.PostBatchResponse{
		Success:    true,
		Count:      len(postings),
		SkippedIDs: skipped,
	}, nil
}

// GetJournalEntry retrieves one posted entry with its lines, annotating each
// line with its account name for review display.
func (s *posterService) GetJournalEntry(ctx context.Context, journalEntryID string) (*dto.JournalEntryResponse, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for entry %s: %w", journalEntryID, err)
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for entry %s: %w", journalEntryID, err)
	}

	resp := dto.ToJournalEntryResponse(entry, lines, accounts)
	return &resp, nil
}

// equityAccounts holds the fixed accounts personal transactions route
// through. Both are a chart-of-accounts precondition; the poster never
// creates them.
type equityAccounts struct {
	ownersDraw         domain.Account
	ownersContribution domain.Account
}

func (s *posterService) loadEquityAccounts(ctx context.Context, eligible []domain.BankTransaction) (*equityAccounts, error) {
	needed := false
	for _, txn := range eligible {
		if txn.IsPersonal {
			needed = true
			break
		}
	}
	if !needed {
		return nil, nil
	}

	draw, err := s.accountRepo.FindAccountByName(ctx, domain.OwnersDrawAccountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q: %w", apperrors.ErrResolution, domain.OwnersDrawAccountName, ErrEquitySeedMissing)
		}
		return nil, fmt.Errorf("failed to load equity accounts: %w", err)
	}
	contribution, err := s.accountRepo.FindAccountByName(ctx, domain.OwnersContributionAccountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q: %w", apperrors.ErrResolution, domain.OwnersContributionAccountName, ErrEquitySeedMissing)
		}
		return nil, fmt.Errorf("failed to load equity accounts: %w", err)
	}
	return &equityAccounts{ownersDraw: *draw, ownersContribution: *contribution}, nil
}

// buildPosting computes the debit/credit assignment for one transaction and
// assembles its journal entry with exactly two mirrored lines.
func (s *posterService) buildPosting(txn domain.BankTransaction, equity *equityAccounts, userID string, now time.Time) (posting, error) {
	amount := txn.Amount.Abs()
	outflow := txn.Amount.IsNegative()

	var debitAccountID, creditAccountID string
	switch {
	case txn.IsPersonal && outflow:
		debitAccountID = equity.ownersDraw.AccountID
		creditAccountID = txn.SourceAccountID
	case txn.IsPersonal:
		debitAccountID = txn.SourceAccountID
		creditAccountID = equity.ownersContribution.AccountID
	default:
		category := txn.CategoryAccountID()
		if category == "" {
			return posting{}, fmt.Errorf("%w: transaction %s: %w", apperrors.ErrResolution, txn.TransactionID, ErrMissingCategory)
		}
		if outflow {
			debitAccountID = category
			creditAccountID = txn.SourceAccountID
		} else {
			debitAccountID = txn.SourceAccountID
			creditAccountID = category
		}
	}

	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	entry := domain.JournalEntry{
		JournalEntryID:  entryID,
		TransactionDate: txn.TransactionDate,
		Description:     txn.Description,
		Reference:       fmt.Sprintf("Bank Txn %s", txn.TransactionID),
		Status:          domain.Posted,
		PostedAt:        now,
		PostedBy:        userID,
		AuditFields:     audit,
	}
	lines := []domain.JournalEntryLine{
		{
			LineID:         uuid.NewString(),
			JournalEntryID: entryID,
			AccountID:      debitAccountID,
			Description:    txn.Description,
			Debit:          amount,
			Credit:         decimal.Zero,
			AuditFields:    audit,
		},
		{
			LineID:         uuid.NewString(),
			JournalEntryID: entryID,
			AccountID:      creditAccountID,
			Description:    txn.Description,
			Debit:          decimal.Zero,
			Credit:         amount,
			AuditFields:    audit,
		},
	}

	if err := validateEntryBalance(lines); err != nil {
		return posting{}, err
	}
	return posting{transactionID: txn.TransactionID, entry: entry, lines: lines}, nil
}

// validateEntryBalance checks the ledger invariant before anything is
// written: for a given entry, total debits must equal total credits.
func validateEntryBalance(lines []domain.JournalEntryLine) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if !line.Debit.IsZero() && !line.Credit.IsZero() {
			return fmt.Errorf("%w: line %s has both sides set", ErrEntryUnbalanced, line.LineID)
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrEntryUnbalanced, debits.String(), credits.String())
	}
	return nil
}
