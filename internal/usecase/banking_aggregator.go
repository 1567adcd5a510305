package usecase

import (
	"context"
	"sort"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
	"FinBridge/pkg/logger"

	"github.com/shopspring/decimal"
)

// DefaultTransactionsLimit is used when the caller passes no positive limit.
const DefaultTransactionsLimit = 20

const (
	reasonDemo    = "instant payments via AANI with competitive fees"
	reasonAANI    = "Instant payment via AANI available"
	reasonPrimary = "Primary connected bank"
)

type routeHint struct {
	time string
	fees string
}

var routeHints = map[models.ProviderID]routeHint{
	models.ProviderRakbank:     {time: "Same day", fees: "AED 5.25"},
	models.ProviderMashreq:     {time: "Instant", fees: "AED 2.10"},
	models.ProviderWio:         {time: "Instant", fees: "Free"},
	models.ProviderEmiratesNBD: {time: "Instant", fees: "AED 1.05"},
}

// demoAlternatives is the fixed alternative list shown when no bank is connected.
var demoAlternatives = []models.ProviderID{models.ProviderMashreq, models.ProviderWio, models.ProviderRakbank}

// BankingAggregator merges the four banking adapters into one view.
type BankingAggregator struct {
	providers []repository.BankProvider
	router    *TransferRouter
	s         settings
}

func NewBankingAggregator(providers []repository.BankProvider, router *TransferRouter, opts ...Option) *BankingAggregator {
	return &BankingAggregator{providers: providers, router: router, s: newSettings(opts)}
}

// GetAllAccounts returns accounts of every adapter; failed adapters land in Errors.
func (a *BankingAggregator) GetAllAccounts(ctx context.Context) models.AccountsResult {
	res := models.AccountsResult{Accounts: []models.Account{}, Errors: []models.ProviderError{}}
	outs := fanOut(ctx, a.s, "accounts", a.providers, func(ctx context.Context, p repository.BankProvider) ([]models.Account, error) {
		return p.Accounts(ctx)
	})
	for _, o := range outs {
		if o.err != nil {
			res.Errors = append(res.Errors, a.providerError(o.provider, "accounts", o.err))
			continue
		}
		res.Accounts = append(res.Accounts, o.val...)
	}
	return res
}

// GetTotalBalance sums balances globally, per currency and per provider.
// Every registered provider appears in ByProvider, zero when it contributed nothing.
func (a *BankingAggregator) GetTotalBalance(ctx context.Context) models.TotalBalance {
	accts := a.GetAllAccounts(ctx)
	tb := models.TotalBalance{
		Total:      decimal.Zero,
		ByCurrency: map[string]decimal.Decimal{},
		ByProvider: make(map[models.ProviderID]decimal.Decimal, len(a.providers)),
		Errors:     accts.Errors,
	}
	for _, p := range a.providers {
		tb.ByProvider[p.ID()] = decimal.Zero
	}
	for _, acct := range accts.Accounts {
		tb.Total = tb.Total.Add(acct.Balance)
		tb.ByCurrency[acct.Currency] = tb.ByCurrency[acct.Currency].Add(acct.Balance)
		tb.ByProvider[acct.Provider] = tb.ByProvider[acct.Provider].Add(acct.Balance)
	}
	return tb
}

// GetRecentTransactions returns at most limit transactions across all banks,
// newest first. A provider that fails on any of its accounts contributes nothing.
func (a *BankingAggregator) GetRecentTransactions(ctx context.Context, limit int) models.TransactionsResult {
	if limit <= 0 {
		limit = DefaultTransactionsLimit
	}
	res := models.TransactionsResult{Transactions: []models.Transaction{}, Errors: []models.ProviderError{}}
	// Deadlines apply per adapter call, not per provider.
	outs := fanOutWithin(ctx, a.s, "transactions", 0, a.providers, func(ctx context.Context, p repository.BankProvider) ([]models.Transaction, error) {
		accts, err := callWithTimeout(ctx, a.s.timeout, p.Accounts)
		if err != nil {
			return nil, err
		}
		var txs []models.Transaction
		for _, acct := range accts {
			batch, err := callWithTimeout(ctx, a.s.timeout, func(cctx context.Context) ([]models.Transaction, error) {
				return p.Transactions(cctx, acct.ID, models.TransactionFilter{Limit: limit})
			})
			if err != nil {
				return nil, err
			}
			txs = append(txs, batch...)
		}
		return txs, nil
	})
	for _, o := range outs {
		if o.err != nil {
			res.Errors = append(res.Errors, a.providerError(o.provider, "transactions", o.err))
			continue
		}
		res.Transactions = append(res.Transactions, o.val...)
	}

	sort.SliceStable(res.Transactions, func(i, j int) bool {
		return res.Transactions[i].Date.After(res.Transactions[j].Date)
	})
	if len(res.Transactions) > limit {
		res.Transactions = res.Transactions[:limit]
	}
	return res
}

// GetAllBeneficiaries asks only the adapters that can list beneficiaries.
func (a *BankingAggregator) GetAllBeneficiaries(ctx context.Context) models.BeneficiariesResult {
	res := models.BeneficiariesResult{Beneficiaries: []models.Beneficiary{}, Errors: []models.ProviderError{}}
	capable := make([]repository.BankProvider, 0, len(a.providers))
	for _, p := range a.providers {
		if _, ok := p.(repository.BeneficiaryLister); ok {
			capable = append(capable, p)
		}
	}
	outs := fanOut(ctx, a.s, "beneficiaries", capable, func(ctx context.Context, p repository.BankProvider) ([]models.Beneficiary, error) {
		return p.(repository.BeneficiaryLister).Beneficiaries(ctx)
	})
	for _, o := range outs {
		if o.err != nil {
			res.Errors = append(res.Errors, a.providerError(o.provider, "beneficiaries", o.err))
			continue
		}
		res.Beneficiaries = append(res.Beneficiaries, o.val...)
	}
	return res
}

// FindBestPaymentRoute applies a fixed preference order, not a cost model:
// demo, then Emirates NBD, then Mashreq, then the first connected bank.
func (a *BankingAggregator) FindBestPaymentRoute(amount decimal.Decimal, currency string) models.PaymentRoute {
	if currency == "" {
		currency = "AED"
	}
	route := models.PaymentRoute{Amount: amount, Currency: currency, Alternatives: []models.RouteAlternative{}}

	var configured []models.ProviderID
	for _, p := range a.providers {
		if p.Configured() {
			configured = append(configured, p.ID())
		}
	}

	if len(configured) == 0 {
		route.RecommendedProvider = models.ProviderEmiratesNBD
		route.Reason = reasonDemo
		for _, id := range demoAlternatives {
			route.Alternatives = append(route.Alternatives, alternative(id))
		}
		return route
	}

	switch {
	case contains(configured, models.ProviderEmiratesNBD):
		route.RecommendedProvider = models.ProviderEmiratesNBD
		route.Reason = reasonAANI
	case contains(configured, models.ProviderMashreq):
		route.RecommendedProvider = models.ProviderMashreq
		route.Reason = reasonAANI
	default:
		route.RecommendedProvider = configured[0]
		route.Reason = reasonPrimary
	}
	for _, id := range configured {
		if id != route.RecommendedProvider {
			route.Alternatives = append(route.Alternatives, alternative(id))
		}
	}
	return route
}

// MakeTransfer routes req to its bank. It never returns an error.
func (a *BankingAggregator) MakeTransfer(ctx context.Context, req models.TransferRequest) models.TransferResponse {
	return a.router.Route(ctx, req)
}

func (a *BankingAggregator) providerError(id models.ProviderID, op string, err error) models.ProviderError {
	a.s.log.Warn("provider call failed",
		logger.String("provider", string(id)),
		logger.String("operation", op),
		logger.Error(err),
	)
	return models.ProviderError{Provider: id, Error: err.Error()}
}

func alternative(id models.ProviderID) models.RouteAlternative {
	h := routeHints[id]
	return models.RouteAlternative{Provider: id, EstimatedTime: h.time, Fees: h.fees}
}

func contains(ids []models.ProviderID, id models.ProviderID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
