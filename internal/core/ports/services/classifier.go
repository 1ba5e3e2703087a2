package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// ClassifierExample is one historical description-to-category pairing given
// to the classifier as few-shot context.
type ClassifierExample struct {
	Description string
	Category    string
}

// ClassifierRequest describes one transaction to categorize.
type ClassifierRequest struct {
	Description       string
	Amount            decimal.Decimal // signed; polarity matters to the model
	SourceAccountName string
	CandidateAccounts []string // chart-of-accounts names the model may pick from
	Examples          []ClassifierExample
}

// ClassifierResult is the classifier's best guess. Confidence is 0-100.
// The result is advisory only; it never auto-approves a transaction.
type ClassifierResult struct {
	AccountName string
	Category    string
	Memo        string
	Confidence  int
}

// TransactionClassifier is the external categorization capability. Failures
// are expected and recoverable: the advisor degrades to Uncategorized rather
// than failing the import.
type TransactionClassifier interface {
	Classify(ctx context.Context, req ClassifierRequest) (*ClassifierResult, error)
}
