package banking

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"
	"FinBridge/pkg/util"

	"github.com/shopspring/decimal"
)

type rakAccount struct {
	AccountID        string          `json:"accountId"`
	AccountNumber    string          `json:"accountNumber"`
	IBAN             string          `json:"iban"`
	AccountType      string          `json:"accountType"`
	Currency         string          `json:"currency"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	Status           string          `json:"status"`
}

type rakTransaction struct {
	TransactionID        string          `json:"transactionId"`
	CreditDebitIndicator string          `json:"creditDebitIndicator"` // Credit | Debit
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Narrative            string          `json:"narrative"`
	MerchantName         string          `json:"merchantName"`
	Category             string          `json:"category"`
	BookingDate          string          `json:"bookingDate"`
	Reference            string          `json:"reference"`
	Status               string          `json:"status"`
}

type rakBeneficiary struct {
	BeneficiaryID string `json:"beneficiaryId"`
	Name          string `json:"name"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban"`
	Country       string `json:"country"`
	Currency      string `json:"currency"`
	Verified      *bool  `json:"verified"`
}

type rakTransferRequest struct {
	SourceAccountID string `json:"sourceAccountId"`
	BeneficiaryID   string `json:"beneficiaryId"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Purpose         string `json:"purposeOfPayment"`
	Reference       string `json:"customerReference"`
}

type rakTransferResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Reference     string `json:"reference"`
}

// rakbankLive talks to the RAKBANK open API.
type rakbankLive struct {
	base
	client *liveClient
	now    func() time.Time
}

func newRakbankLive(cfg config.BankConfig, o options) *rakbankLive {
	headers := map[string]string{
		"X-API-Key":   cfg.APIKey,
		"X-Client-Id": cfg.ClientID,
	}
	return &rakbankLive{
		base:   newBase(models.ProviderRakbank, cfg),
		client: newLiveClient(cfg, headers, o.timeout, o.transport),
		now:    o.now,
	}
}

func (p *rakbankLive) Accounts(ctx context.Context) ([]models.Account, error) {
	var resp struct {
		Accounts []rakAccount `json:"accounts"`
	}
	if err := p.client.get(ctx, "/accounts", nil, &resp); err != nil {
		return nil, fmt.Errorf("rakbank accounts: %w", err)
	}
	synced := p.now()
	out := make([]models.Account, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		out = append(out, models.Account{
			ID:               a.AccountID,
			Provider:         models.ProviderRakbank,
			AccountNumber:    a.AccountNumber,
			IBAN:             a.IBAN,
			AccountType:      a.AccountType,
			Currency:         a.Currency,
			Balance:          a.CurrentBalance,
			AvailableBalance: a.AvailableBalance,
			Status:           a.Status,
			LastSync:         synced,
		})
	}
	return out, nil
}

func (p *rakbankLive) Transactions(ctx context.Context, accountID string, f models.TransactionFilter) ([]models.Transaction, error) {
	var resp struct {
		Transactions []rakTransaction `json:"transactions"`
	}
	q := rangeQuery("fromDate", "toDate", "limit", "2006-01-02", f.From, f.To, f.Limit)
	path := "/accounts/" + url.PathEscape(accountID) + "/transactions"
	if err := p.client.get(ctx, path, q, &resp); err != nil {
		return nil, fmt.Errorf("rakbank transactions: %w", err)
	}
	out := make([]models.Transaction, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		date, ok := util.ParseTime(t.BookingDate)
		if !ok {
			return nil, fmt.Errorf("rakbank transactions: bad bookingDate %q", t.BookingDate)
		}
		out = append(out, models.Transaction{
			ID:           t.TransactionID,
			Provider:     models.ProviderRakbank,
			AccountID:    accountID,
			Type:         strings.ToUpper(t.CreditDebitIndicator),
			Amount:       t.Amount,
			Currency:     t.Currency,
			Description:  t.Narrative,
			MerchantName: t.MerchantName,
			Category:     t.Category,
			Date:         date,
			Reference:    t.Reference,
			Status:       t.Status,
		})
	}
	return out, nil
}

func (p *rakbankLive) Beneficiaries(ctx context.Context) ([]models.Beneficiary, error) {
	var resp struct {
		Beneficiaries []rakBeneficiary `json:"beneficiaries"`
	}
	if err := p.client.get(ctx, "/beneficiaries", nil, &resp); err != nil {
		return nil, fmt.Errorf("rakbank beneficiaries: %w", err)
	}
	out := make([]models.Beneficiary, 0, len(resp.Beneficiaries))
	for _, b := range resp.Beneficiaries {
		out = append(out, models.Beneficiary{
			ID:            b.BeneficiaryID,
			Provider:      models.ProviderRakbank,
			Name:          b.Name,
			BankName:      b.BankName,
			AccountNumber: b.AccountNumber,
			IBAN:          b.IBAN,
			Country:       b.Country,
			Currency:      b.Currency,
			IsVerified:    b.Verified,
		})
	}
	return out, nil
}

func (p *rakbankLive) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	body := rakTransferRequest{
		SourceAccountID: req.FromAccountID,
		BeneficiaryID:   req.ToBeneficiaryID,
		Amount:          req.Amount.StringFixed(2),
		Currency:        req.Currency,
		Purpose:         req.Purpose,
		Reference:       req.Reference,
	}
	var resp rakTransferResponse
	if err := p.client.post(ctx, "/payments/transfers", body, &resp); err != nil {
		return nil, fmt.Errorf("rakbank transfer: %w", err)
	}
	return &models.TransferReceipt{
		TransactionID: resp.TransactionID,
		Status:        resp.Status,
		Reference:     resp.Reference,
	}, nil
}
