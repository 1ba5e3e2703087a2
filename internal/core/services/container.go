package services

import (
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. classifier may be nil when no categorization
// backend is configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, classifier portssvc.TransactionClassifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Importer = NewImporterService(repos.AccountRepo, repos.BankTxnRepo, classifier, cfg.ClassifierTimeout)
	container.BankTransactions = NewBankTransactionService(repos.BankTxnRepo, repos.AccountRepo)
	container.Poster = NewPosterService(repos.BankTxnRepo, repos.JournalRepo, repos.AccountRepo)

	return container
}
