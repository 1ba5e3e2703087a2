package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/core/services"
	"github.com/finbooks/finbooks_app/internal/dto"
)

type BankTransactionServiceTestSuite struct {
	suite.Suite
	mockBankTxnRepo *MockBankTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.BankTransactionSvcFacade
	userID          string
}

func (s *BankTransactionServiceTestSuite) SetupTest() {
	s.mockBankTxnRepo = new(MockBankTransactionRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewBankTransactionService(s.mockBankTxnRepo, s.mockAccountRepo)
	s.userID = uuid.NewString()
}

func (s *BankTransactionServiceTestSuite) pendingTxn() *domain.BankTransaction {
	return &domain.BankTransaction{
		TransactionID:      uuid.NewString(),
		SourceAccountID:    uuid.NewString(),
		Description:        "COFFEE SHOP",
		SuggestedAccountID: uuid.NewString(),
		SuggestedCategory:  "Dining",
		Status:             domain.StatusPending,
	}
}

func (s *BankTransactionServiceTestSuite) TestListDefaultsToPending() {
	ctx := context.Background()
	s.mockBankTxnRepo.On("ListTransactionsByStatus", ctx, domain.StatusPending, 50, 0).
		Return([]domain.BankTransaction{}, nil).Once()

	_, err := s.service.ListTransactions(ctx, dto.ListTransactionsParams{})

	s.Require().NoError(err)
	s.mockBankTxnRepo.AssertExpectations(s.T())
}

func (s *BankTransactionServiceTestSuite) TestApproveAcceptsSuggestion() {
	ctx := context.Background()
	txn := s.pendingTxn()

	s.mockBankTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	var updated domain.BankTransaction
	s.mockBankTxnRepo.On("UpdateReview", ctx, mock.AnythingOfType("domain.BankTransaction")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.BankTransaction)
		}).Return(nil).Once()

	result, err := s.service.ApproveTransaction(ctx, txn.TransactionID, dto.ApproveTransactionRequest{}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, result.Status)
	s.Equal(domain.StatusApproved, updated.Status)
	s.Equal(s.userID, updated.LastUpdatedBy)
	// No override given: the suggestion stands.
	s.Empty(updated.ApprovedAccountID)
}

func (s *BankTransactionServiceTestSuite) TestApproveWithOverrideVerifiesAccount() {
	ctx := context.Background()
	txn := s.pendingTxn()
	override := domain.Account{AccountID: uuid.NewString(), Name: "Travel", AccountType: domain.Expense}

	s.mockBankTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, override.AccountID).Return(&override, nil).Once()
	s.mockBankTxnRepo.On("UpdateReview", ctx, mock.AnythingOfType("domain.BankTransaction")).Return(nil).Once()

	category := "Travel"
	result, err := s.service.ApproveTransaction(ctx, txn.TransactionID, dto.ApproveTransactionRequest{
		AccountID: &override.AccountID,
		Category:  &category,
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(override.AccountID, result.ApprovedAccountID)
	s.Equal("Travel", result.ApprovedCategory)
}

func (s *BankTransactionServiceTestSuite) TestApproveUnknownOverrideAccountFails() {
	ctx := context.Background()
	txn := s.pendingTxn()
	bogusID := uuid.NewString()

	s.mockBankTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, bogusID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ApproveTransaction(ctx, txn.TransactionID, dto.ApproveTransactionRequest{AccountID: &bogusID}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockBankTxnRepo.AssertNotCalled(s.T(), "UpdateReview", mock.Anything, mock.Anything)
}

func (s *BankTransactionServiceTestSuite) TestApproveBusinessWithoutCategoryFails() {
	ctx := context.Background()
	txn := s.pendingTxn()
	txn.SuggestedAccountID = ""

	s.mockBankTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := s.service.ApproveTransaction(ctx, txn.TransactionID, dto.ApproveTransactionRequest{}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BankTransactionServiceTestSuite) TestApprovePersonalWithoutCategorySucceeds() {
	ctx := context.Background()
	txn := s.pendingTxn()
	txn.SuggestedAccountID = ""
	txn.IsPersonal = true

	s.mockBankTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	s.mockBankTxnRepo.On("UpdateReview", ctx, mock.AnythingOfType("domain.BankTransaction")).Return(nil).Once()

	result, err := s.service.ApproveTransaction(ctx, txn.TransactionID, dto.ApproveTransactionRequest{}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, result.Status)
}

func (s *BankTransactionServiceTestSuite) TestApproveNonPendingFails() {
	ctx := context.Background()
	txn := s.pendingTxn()
	txn.Status = domain.StatusRejected

	s.mockBankTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := s.service.ApproveTransaction(ctx, txn.TransactionID, dto.ApproveTransactionRequest{}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrNotReviewable)
}

func (s *BankTransactionServiceTestSuite) TestRejectPendingTransaction() {
	ctx := context.Background()
	txn := s.pendingTxn()

	s.mockBankTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	s.mockBankTxnRepo.On("UpdateReview", ctx, mock.AnythingOfType("domain.BankTransaction")).Return(nil).Once()

	result, err := s.service.RejectTransaction(ctx, txn.TransactionID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusRejected, result.Status)
}

func (s *BankTransactionServiceTestSuite) TestRejectPostedTransactionFails() {
	ctx := context.Background()
	txn := s.pendingTxn()
	entryID := uuid.NewString()
	txn.Status = domain.StatusPosted
	txn.JournalEntryID = &entryID

	s.mockBankTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := s.service.RejectTransaction(ctx, txn.TransactionID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrNotReviewable)
}

func TestBankTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankTransactionServiceTestSuite))
}
