package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

const (
	uncategorizedLabel = "Uncategorized"

	// maxClassifierExamples bounds the few-shot context handed to the
	// external classifier.
	maxClassifierExamples = 5
)

// advisorResult is the advisor's verdict for one parsed transaction.
// AutoApprove is true only on the deterministic path, when the dialect
// supplied an explicit category that resolved to an account.
type advisorResult struct {
	AccountID   string
	AccountName string
	Category    string
	Memo        string
	Confidence  int
	AutoApprove bool
}

// categorizationAdvisor suggests a category account for each imported
// transaction. Dialect-supplied categories bypass the classifier entirely;
// otherwise the external classifier is consulted, bounded by a timeout, and
// any failure degrades to Uncategorized instead of failing the import.
type categorizationAdvisor struct {
	classifier portssvc.TransactionClassifier // nil when no backend is configured
	timeout    time.Duration
}

func newCategorizationAdvisor(classifier portssvc.TransactionClassifier, timeout time.Duration) *categorizationAdvisor {
	return &categorizationAdvisor{
		classifier: classifier,
		timeout:    timeout,
	}
}

// Categorize produces the suggested categorization for one raw transaction.
// The resolver is consulted (and may create accounts) only on the
// deterministic path; advisory suggestions never create accounts.
func (a *categorizationAdvisor) Categorize(
	ctx context.Context,
	raw domain.RawTransaction,
	resolver *accountResolver,
	sourceAccount domain.Account,
	history []domain.BankTransaction,
) (advisorResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Deterministic path: the dialect carried an explicit category.
	if !isPlaceholderCategory(raw.OriginalCategory) {
		categoryAccount, err := resolver.ResolveCategoryAccount(raw.OriginalCategory, raw.Amount.IsNegative())
		if err != nil {
			return advisorResult{}, err
		}
		if categoryAccount != nil {
			return advisorResult{
				AccountID:   categoryAccount.AccountID,
				AccountName: categoryAccount.Name,
				Category:    raw.OriginalCategory,
				Confidence:  100,
				AutoApprove: true,
			}, nil
		}
	}

	if a.classifier == nil {
		return uncategorized(), nil
	}

	classifyCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := a.classifier.Classify(classifyCtx, portssvc.ClassifierRequest{
		Description:       raw.Description,
		Amount:            raw.Amount,
		SourceAccountName: sourceAccount.Name,
		CandidateAccounts: candidateNames(resolver),
		Examples:          similarExamples(raw.Description, history),
	})
	if err != nil {
		logger.Warn("Classifier unavailable, staging transaction uncategorized",
			slog.String("description", raw.Description),
			slog.String("error", err.Error()))
		return uncategorized(), nil
	}

	res := advisorResult{
		AccountName: result.AccountName,
		Category:    result.Category,
		Memo:        result.Memo,
		Confidence:  result.Confidence,
	}
	if res.Category == "" {
		res.Category = uncategorizedLabel
	}
	// Advisory suggestions only map onto accounts that already exist; the
	// classifier's output never creates one and never auto-approves.
	if acc, ok := resolver.Lookup(result.AccountName); ok {
		res.AccountID = acc.AccountID
	}
	return res, nil
}

func uncategorized() advisorResult {
	return advisorResult{Category: uncategorizedLabel, Confidence: 0}
}

func isPlaceholderCategory(label string) bool {
	_, ok := placeholderCategories[strings.ToLower(strings.TrimSpace(label))]
	return ok
}

func candidateNames(resolver *accountResolver) []string {
	names := make([]string, 0, len(resolver.byName))
	for name := range resolver.byName {
		names = append(names, name)
	}
	return names
}

// similarExamples picks historical categorized transactions sharing a
// description token with the target, capped at maxClassifierExamples.
func similarExamples(description string, history []domain.BankTransaction) []portssvc.ClassifierExample {
	targetTokens := descriptionTokens(description)
	var examples []portssvc.ClassifierExample
	for _, txn := range history {
		if len(examples) >= maxClassifierExamples {
			break
		}
		category := txn.ApprovedCategory
		if category == "" {
			category = txn.SuggestedCategory
		}
		if category == "" || category == uncategorizedLabel {
			continue
		}
		if !sharesToken(targetTokens, descriptionTokens(txn.Description)) {
			continue
		}
		examples = append(examples, portssvc.ClassifierExample{
			Description: txn.Description,
			Category:    category,
		})
	}
	return examples
}

func descriptionTokens(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if len(tok) > 3 {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

func sharesToken(a, b map[string]struct{}) bool {
	for tok := range a {
		if _, ok := b[tok]; ok {
			return true
		}
	}
	return false
}
