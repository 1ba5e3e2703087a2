package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/utils"
)

// placeholder category labels that never resolve to an account.
var placeholderCategories = map[string]struct{}{
	"":              {},
	"unreviewed":    {},
	"uncategorized": {},
}

// accountResolver maps bank/category labels to chart-of-accounts entries for
// one import batch. It owns a batch-local snapshot keyed by account Name,
// loaded once per batch and updated in-process after each creation, so
// duplicate rows within a batch resolve to a single created account. The
// resolver is owned exclusively by the import call; it is never shared.
type accountResolver struct {
	byName  map[string]domain.Account
	created []domain.Account
	userID  string
	now     time.Time

	sourceCreated   int
	categoryCreated int
}

func newAccountResolver(existing []domain.Account, userID string, now time.Time) *accountResolver {
	byName := make(map[string]domain.Account, len(existing))
	for _, acc := range existing {
		byName[acc.Name] = acc
	}
	return &accountResolver{
		byName: byName,
		userID: userID,
		now:    now,
	}
}

// ResolveSourceAccount returns the account for a (bank, label) pair, creating
// it when absent. Source accounts are CreditCard liabilities when the label
// or bank carries a card marker, Bank assets otherwise.
func (r *accountResolver) ResolveSourceAccount(bank, accountLabel string) (domain.Account, error) {
	name := fmt.Sprintf("%s - %s", bank, accountLabel)
	if acc, ok := r.byName[name]; ok {
		return acc, nil
	}

	accountType := domain.Asset
	subtype := domain.SubtypeBank
	if hasCardMarker(bank) || hasCardMarker(accountLabel) {
		accountType = domain.Liability
		subtype = domain.SubtypeCreditCard
	}
	return r.create(name, accountType, subtype, true)
}

// ResolveNamedSourceAccount resolves an operator-named source account,
// honoring the operator's type hint instead of marker inference.
func (r *accountResolver) ResolveNamedSourceAccount(name, sourceType string) (domain.Account, error) {
	if acc, ok := r.byName[name]; ok {
		return acc, nil
	}

	accountType := domain.Asset
	subtype := domain.SubtypeBank
	if strings.EqualFold(sourceType, domain.SubtypeCreditCard) {
		accountType = domain.Liability
		subtype = domain.SubtypeCreditCard
	}
	return r.create(name, accountType, subtype, true)
}

// ResolveCategoryAccount returns the account for a category label, creating
// it when absent: Expense when the originating amount was an outflow, Revenue
// otherwise. Placeholder labels yield nil and the transaction stays
// uncategorized.
func (r *accountResolver) ResolveCategoryAccount(label string, isExpense bool) (*domain.Account, error) {
	label = strings.TrimSpace(label)
	if _, ok := placeholderCategories[strings.ToLower(label)]; ok {
		return nil, nil
	}

	if acc, ok := r.byName[label]; ok {
		return &acc, nil
	}

	accountType := domain.Revenue
	if isExpense {
		accountType = domain.Expense
	}
	acc, err := r.create(label, accountType, domain.SubtypeOperating, false)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// Lookup finds an existing account by exact name without creating one.
func (r *accountResolver) Lookup(name string) (domain.Account, bool) {
	acc, ok := r.byName[name]
	return acc, ok
}

// Created returns the accounts created during this batch, in creation order.
// The import batch persists them inside its own transaction.
func (r *accountResolver) Created() []domain.Account {
	return r.created
}

// CreatedCounts reports how many source and category accounts this batch
// created.
func (r *accountResolver) CreatedCounts() (source int, category int) {
	return r.sourceCreated, r.categoryCreated
}

func (r *accountResolver) create(name string, accountType domain.AccountType, subtype string, isSource bool) (domain.Account, error) {
	code, err := utils.GenerateAccountCode()
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to generate account code: %w", err)
	}

	acc := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        name,
		AccountType: accountType,
		Subtype:     subtype,
		Description: "Auto-created during bank statement import",
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     r.now,
			CreatedBy:     r.userID,
			LastUpdatedAt: r.now,
			LastUpdatedBy: r.userID,
		},
	}

	r.byName[name] = acc
	r.created = append(r.created, acc)
	if isSource {
		r.sourceCreated++
	} else {
		r.categoryCreated++
	}
	return acc, nil
}

func hasCardMarker(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "credit") || strings.Contains(lower, "card")
}
