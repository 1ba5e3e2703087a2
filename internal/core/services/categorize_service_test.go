package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
)

// stubClassifier returns a canned result or error and records the request it
// received.
type stubClassifier struct {
	result  *portssvc.ClassifierResult
	err     error
	lastReq portssvc.ClassifierRequest
	calls   int
}

func (s *stubClassifier) Classify(ctx context.Context, req portssvc.ClassifierRequest) (*portssvc.ClassifierResult, error) {
	s.lastReq = req
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func rawTxn(description, category string, amount string) domain.RawTransaction {
	return domain.RawTransaction{
		SourceBank:         "Chase",
		SourceAccountLabel: "Credit Card",
		TransactionDate:    time.Now().UTC(),
		Amount:             decimal.RequireFromString(amount),
		Description:        description,
		OriginalCategory:   category,
	}
}

func TestCategorizeDeterministicPathAutoApproves(t *testing.T) {
	classifier := &stubClassifier{}
	advisor := newCategorizationAdvisor(classifier, time.Second)
	resolver := newTestResolver(nil)

	verdict, err := advisor.Categorize(context.Background(), rawTxn("COFFEE SHOP", "Dining", "-5.75"), resolver, domain.Account{Name: "Chase - Credit Card"}, nil)
	require.NoError(t, err)

	assert.True(t, verdict.AutoApprove)
	assert.Equal(t, 100, verdict.Confidence)
	assert.Equal(t, "Dining", verdict.Category)
	assert.NotEmpty(t, verdict.AccountID)
	// The dialect-supplied category bypasses the classifier entirely.
	assert.Equal(t, 0, classifier.calls)

	created, ok := resolver.Lookup("Dining")
	require.True(t, ok)
	assert.Equal(t, domain.Expense, created.AccountType)
}

func TestCategorizeWithoutClassifierStagesUncategorized(t *testing.T) {
	advisor := newCategorizationAdvisor(nil, time.Second)
	resolver := newTestResolver(nil)

	verdict, err := advisor.Categorize(context.Background(), rawTxn("MYSTERY VENDOR", "", "-10.00"), resolver, domain.Account{}, nil)
	require.NoError(t, err)

	assert.False(t, verdict.AutoApprove)
	assert.Equal(t, "Uncategorized", verdict.Category)
	assert.Equal(t, 0, verdict.Confidence)
	assert.Empty(t, verdict.AccountID)
}

func TestCategorizeClassifierErrorDegrades(t *testing.T) {
	classifier := &stubClassifier{err: errors.New("model unavailable")}
	advisor := newCategorizationAdvisor(classifier, time.Second)
	resolver := newTestResolver(nil)

	verdict, err := advisor.Categorize(context.Background(), rawTxn("MYSTERY VENDOR", "", "-10.00"), resolver, domain.Account{}, nil)
	require.NoError(t, err, "classifier failure must not fail the import")

	assert.Equal(t, "Uncategorized", verdict.Category)
	assert.False(t, verdict.AutoApprove)
	assert.Equal(t, 1, classifier.calls)
}

func TestCategorizeAdvisoryNeverAutoApprovesOrCreates(t *testing.T) {
	officeSupplies := domain.Account{AccountID: "acc-1", Name: "Office Supplies", AccountType: domain.Expense}
	classifier := &stubClassifier{result: &portssvc.ClassifierResult{
		AccountName: "Office Supplies",
		Category:    "Office Supplies",
		Memo:        "stapler restock",
		Confidence:  85,
	}}
	advisor := newCategorizationAdvisor(classifier, time.Second)
	resolver := newTestResolver([]domain.Account{officeSupplies})

	verdict, err := advisor.Categorize(context.Background(), rawTxn("STAPLES STORE 042", "", "-23.10"), resolver, domain.Account{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "acc-1", verdict.AccountID)
	assert.Equal(t, 85, verdict.Confidence)
	assert.False(t, verdict.AutoApprove, "advisory suggestions always require review")
	assert.Empty(t, resolver.Created(), "advisory suggestions never create accounts")
}

func TestCategorizeAdvisoryUnknownAccountNameLeavesIDEmpty(t *testing.T) {
	classifier := &stubClassifier{result: &portssvc.ClassifierResult{
		AccountName: "Invented Account",
		Category:    "Something",
		Confidence:  70,
	}}
	advisor := newCategorizationAdvisor(classifier, time.Second)
	resolver := newTestResolver(nil)

	verdict, err := advisor.Categorize(context.Background(), rawTxn("VENDOR", "", "-1.00"), resolver, domain.Account{}, nil)
	require.NoError(t, err)

	assert.Empty(t, verdict.AccountID, "hallucinated account names must not bind")
	assert.Equal(t, "Something", verdict.Category)
	assert.Empty(t, resolver.Created())
}

func TestCategorizePassesFewShotExamples(t *testing.T) {
	classifier := &stubClassifier{result: &portssvc.ClassifierResult{Category: "Dining", Confidence: 60}}
	advisor := newCategorizationAdvisor(classifier, time.Second)
	resolver := newTestResolver(nil)

	history := []domain.BankTransaction{
		{Description: "COFFEE SHOP DOWNTOWN", ApprovedCategory: "Dining", Status: domain.StatusPosted},
		{Description: "UNRELATED HARDWARE", ApprovedCategory: "Tools", Status: domain.StatusPosted},
		{Description: "COFFEE ROASTERS LLC", SuggestedCategory: "Uncategorized", Status: domain.StatusApproved},
	}

	_, err := advisor.Categorize(context.Background(), rawTxn("COFFEE SHOP AIRPORT", "", "-4.00"), resolver, domain.Account{}, history)
	require.NoError(t, err)

	require.Len(t, classifier.lastReq.Examples, 1)
	assert.Equal(t, "COFFEE SHOP DOWNTOWN", classifier.lastReq.Examples[0].Description)
	assert.Equal(t, "Dining", classifier.lastReq.Examples[0].Category)
}
