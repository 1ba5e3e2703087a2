package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/finbooks_app/internal/bankcsv"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

// classifierHistorySize is how many recently categorized transactions are
// loaded as few-shot material for the classifier.
const classifierHistorySize = 50

// importerService ingests one statement file per call: parse, resolve
// accounts against a batch-local snapshot, categorize, and stage. Account
// creation and staging-row insertion commit in a single database
// transaction; categorization happens before the transaction opens so the
// external classifier call never holds it.
type importerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	bankTxnRepo portsrepo.BankTransactionRepositoryWithTx
	advisor     *categorizationAdvisor
}

// NewImporterService creates the import service. classifier may be nil, in
// which case rows without a dialect-supplied category stage as Uncategorized.
func NewImporterService(
	accountRepo portsrepo.AccountRepositoryFacade,
	bankTxnRepo portsrepo.BankTransactionRepositoryWithTx,
	classifier portssvc.TransactionClassifier,
	classifierTimeout time.Duration,
) portssvc.ImporterSvcFacade {
	return &importerService{
		accountRepo: accountRepo,
		bankTxnRepo: bankTxnRepo,
		advisor:     newCategorizationAdvisor(classifier, classifierTimeout),
	}
}

var _ portssvc.ImporterSvcFacade = (*importerService)(nil)

func (s *importerService) ImportStatement(ctx context.Context, req dto.ImportRequest, userID string) (*dto.ImportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parsed, err := bankcsv.Parse(req.Content)
	if err != nil {
		// Format errors reject the batch before any writes.
		return nil, err
	}

	// Batch-local account snapshot, loaded once, never re-queried per row.
	existing, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to load account snapshot for import", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	now := time.Now().UTC()
	resolver := newAccountResolver(existing, userID, now)

	// Operator-pinned source account takes precedence over per-row resolution.
	var pinnedSource *domain.Account
	if req.SourceAccountID != "" {
		pinnedSource, err = s.accountRepo.FindAccountByID(ctx, req.SourceAccountID)
		if err != nil {
			return nil, fmt.Errorf("source account %s: %w", req.SourceAccountID, err)
		}
	}

	// Few-shot history for the classifier; a failure here only degrades
	// suggestions, it never fails the import.
	history, err := s.bankTxnRepo.ListCategorizedExamples(ctx, classifierHistorySize)
	if err != nil {
		logger.Warn("Failed to load categorized history for classifier", slog.String("error", err.Error()))
		history = nil
	}

	transactions := make([]domain.BankTransaction, 0, len(parsed.Transactions))
	for _, raw := range parsed.Transactions {
		sourceAccount, err := s.resolveSource(raw, req, pinnedSource, resolver)
		if err != nil {
			return nil, err
		}

		verdict, err := s.advisor.Categorize(ctx, raw, resolver, sourceAccount, history)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, s.stage(raw, sourceAccount, verdict, userID, now))
	}

	// Single unit of work: accounts created for this batch and the staged
	// rows commit or roll back together.
	tx, err := s.bankTxnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer s.bankTxnRepo.Rollback(ctx, tx)

	if created := resolver.Created(); len(created) > 0 {
		if err := s.accountRepo.SaveAccountsInTx(ctx, tx, created); err != nil {
			logger.Error("Failed to save auto-created accounts", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save accounts: %w", err)
		}
	}
	if len(transactions) > 0 {
		if err := s.bankTxnRepo.SaveTransactionsInTx(ctx, tx, transactions); err != nil {
			logger.Error("Failed to stage bank transactions", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to stage transactions: %w", err)
		}
	}
	if err := s.bankTxnRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit import batch: %w", err)
	}

	sourceCreated, categoryCreated := resolver.CreatedCounts()
	logger.Info("Statement imported",
		slog.String("format", parsed.Dialect.Name),
		slog.Int("staged", len(transactions)),
		slog.Int("skipped_rows", parsed.SkippedRows),
		slog.Int("accounts_created", len(resolver.Created())))

	return &dto.ImportResponse{
		Success:                 true,
		Count:                   len(transactions),
		Skipped:                 parsed.SkippedRows,
		Format:                  parsed.Dialect.Name,
		SourceAccountsCreated:   sourceCreated,
		CategoryAccountsCreated: categoryCreated,
		Transactions:            dto.ToBankTransactionResponses(transactions),
	}, nil
}

func (s *importerService) resolveSource(raw domain.RawTransaction, req dto.ImportRequest, pinned *domain.Account, resolver *accountResolver) (domain.Account, error) {
	if pinned != nil {
		return *pinned, nil
	}
	if req.SourceName != "" {
		return resolver.ResolveNamedSourceAccount(req.SourceName, req.SourceType)
	}
	return resolver.ResolveSourceAccount(raw.SourceBank, raw.SourceAccountLabel)
}

// stage converts one parsed row plus its advisor verdict into a staged
// BankTransaction. Initial status is Approved only when the advisor path was
// deterministic and produced a resolvable category account.
func (s *importerService) stage(raw domain.RawTransaction, sourceAccount domain.Account, verdict advisorResult, userID string, now time.Time) domain.BankTransaction {
	status := domain.StatusPending
	if verdict.AutoApprove && verdict.AccountID != "" {
		status = domain.StatusApproved
	}

	return domain.BankTransaction{
		TransactionID:      uuid.NewString(),
		SourceAccountID:    sourceAccount.AccountID,
		TransactionDate:    raw.TransactionDate,
		PostDate:           raw.PostDate,
		Amount:             raw.Amount,
		Description:        raw.Description,
		OriginalCategory:   raw.OriginalCategory,
		SuggestedAccountID: verdict.AccountID,
		SuggestedCategory:  verdict.Category,
		SuggestedMemo:      verdict.Memo,
		ConfidenceScore:    verdict.Confidence,
		Status:             status,
		IsPersonal:         raw.IsPersonal,
		RawLine:            raw.RawLine,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}
