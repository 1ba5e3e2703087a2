package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

const defaultListLimit = 50

// ErrNotReviewable reports a review action on a transaction that already
// left the PENDING state.
var ErrNotReviewable = errors.New("transaction is no longer pending review")

// bankTransactionService implements the staged-transaction review lifecycle.
type bankTransactionService struct {
	bankTxnRepo portsrepo.BankTransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewBankTransactionService creates the review service.
func NewBankTransactionService(
	bankTxnRepo portsrepo.BankTransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
) portssvc.BankTransactionSvcFacade {
	return &bankTransactionService{
		bankTxnRepo: bankTxnRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BankTransactionSvcFacade = (*bankTransactionService)(nil)

func (s *bankTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.BankTransaction, error) {
	status := domain.TransactionStatus(params.Status)
	if params.Status == "" {
		status = domain.StatusPending
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	transactions, err := s.bankTxnRepo.ListTransactionsByStatus(ctx, status, limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list bank transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (s *bankTransactionService) ApproveTransaction(ctx context.Context, transactionID string, req dto.ApproveTransactionRequest, userID string) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.bankTxnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: transaction %s is %s", ErrNotReviewable, transactionID, txn.Status)
	}

	if req.AccountID != nil && *req.AccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID); err != nil {
			return nil, fmt.Errorf("approved account %s: %w", *req.AccountID, err)
		}
		txn.ApprovedAccountID = *req.AccountID
	}
	if req.Category != nil {
		txn.ApprovedCategory = *req.Category
	}
	if req.Memo != nil {
		txn.ApprovedMemo = *req.Memo
	}

	// Approval needs a category account from somewhere: the reviewer's
	// override or the advisor's suggestion. Personal transactions route
	// through equity and are exempt.
	if !txn.IsPersonal && txn.CategoryAccountID() == "" {
		return nil, fmt.Errorf("%w: transaction %s has no category account", apperrors.ErrValidation, transactionID)
	}

	txn.Status = domain.StatusApproved
	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID

	if err := s.bankTxnRepo.UpdateReview(ctx, *txn); err != nil {
		logger.Error("Failed to approve transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to approve transaction: %w", err)
	}

	logger.Info("Transaction approved", slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *bankTransactionService) RejectTransaction(ctx context.Context, transactionID string, userID string) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.bankTxnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: transaction %s is %s", ErrNotReviewable, transactionID, txn.Status)
	}

	txn.Status = domain.StatusRejected
	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID

	if err := s.bankTxnRepo.UpdateReview(ctx, *txn); err != nil {
		logger.Error("Failed to reject transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reject transaction: %w", err)
	}

	logger.Info("Transaction rejected", slog.String("transaction_id", transactionID))
	return txn, nil
}
