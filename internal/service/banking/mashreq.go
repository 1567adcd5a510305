package banking

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"

	"github.com/shopspring/decimal"
)

type mashreqMoney struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

type mashreqAccount struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	IBAN             string          `json:"iban"`
	Type             string          `json:"type"`
	Ccy              string          `json:"ccy"`
	LedgerBalance    decimal.Decimal `json:"ledgerBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	AccountStatus    string          `json:"accountStatus"`
}

type mashreqTransaction struct {
	ID          string       `json:"id"`
	Direction   string       `json:"direction"` // CR | DR
	Amount      mashreqMoney `json:"amount"`
	Description string       `json:"description"`
	Merchant    string       `json:"merchant"`
	Category    string       `json:"category"`
	ValueDate   time.Time    `json:"valueDate"`
	Ref         string       `json:"ref"`
	State       string       `json:"state"`
}

type mashreqBeneficiary struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Bank      string `json:"bank"`
	AccountNo string `json:"accountNo"`
	IBAN      string `json:"iban"`
	Country   string `json:"countryCode"`
	Ccy       string `json:"ccy"`
	Status    string `json:"status"` // ACTIVE once cooling-off ends
}

type mashreqPaymentRequest struct {
	DebitAccount string       `json:"debitAccount"`
	Beneficiary  string       `json:"beneficiaryId"`
	Amount       mashreqMoney `json:"amount"`
	Purpose      string       `json:"purposeCode"`
	EndToEndRef  string       `json:"endToEndReference"`
	Rail         string       `json:"rail"`
}

type mashreqPaymentResponse struct {
	PaymentID         string `json:"paymentId"`
	PaymentStatus     string `json:"paymentStatus"`
	EndToEndReference string `json:"endToEndReference"`
}

// mashreqLive talks to the Mashreq NEOBiz API.
type mashreqLive struct {
	base
	client *liveClient
	now    func() time.Time
}

func newMashreqLive(cfg config.BankConfig, o options) *mashreqLive {
	headers := map[string]string{
		"apikey":    cfg.APIKey,
		"client_id": cfg.ClientID,
	}
	return &mashreqLive{
		base:   newBase(models.ProviderMashreq, cfg),
		client: newLiveClient(cfg, headers, o.timeout, o.transport),
		now:    o.now,
	}
}

func (p *mashreqLive) Accounts(ctx context.Context) ([]models.Account, error) {
	var resp struct {
		Data struct {
			Accounts []mashreqAccount `json:"accounts"`
		} `json:"data"`
	}
	if err := p.client.get(ctx, "/v1/accounts", nil, &resp); err != nil {
		return nil, fmt.Errorf("mashreq accounts: %w", err)
	}
	synced := p.now()
	out := make([]models.Account, 0, len(resp.Data.Accounts))
	for _, a := range resp.Data.Accounts {
		out = append(out, models.Account{
			ID:               a.ID,
			Provider:         models.ProviderMashreq,
			AccountNumber:    a.Number,
			IBAN:             a.IBAN,
			AccountType:      a.Type,
			Currency:         a.Ccy,
			Balance:          a.LedgerBalance,
			AvailableBalance: a.AvailableBalance,
			Status:           a.AccountStatus,
			LastSync:         synced,
		})
	}
	return out, nil
}

func (p *mashreqLive) Transactions(ctx context.Context, accountID string, f models.TransactionFilter) ([]models.Transaction, error) {
	var resp struct {
		Data struct {
			Transactions []mashreqTransaction `json:"transactions"`
		} `json:"data"`
	}
	q := rangeQuery("from", "to", "pageSize", time.RFC3339, f.From, f.To, f.Limit)
	path := "/v1/accounts/" + url.PathEscape(accountID) + "/transactions"
	if err := p.client.get(ctx, path, q, &resp); err != nil {
		return nil, fmt.Errorf("mashreq transactions: %w", err)
	}
	out := make([]models.Transaction, 0, len(resp.Data.Transactions))
	for _, t := range resp.Data.Transactions {
		typ := models.TxDebit
		if t.Direction == "CR" {
			typ = models.TxCredit
		}
		out = append(out, models.Transaction{
			ID:           t.ID,
			Provider:     models.ProviderMashreq,
			AccountID:    accountID,
			Type:         typ,
			Amount:       t.Amount.Value,
			Currency:     t.Amount.Currency,
			Description:  t.Description,
			MerchantName: t.Merchant,
			Category:     t.Category,
			Date:         t.ValueDate,
			Reference:    t.Ref,
			Status:       t.State,
		})
	}
	return out, nil
}

func (p *mashreqLive) Beneficiaries(ctx context.Context) ([]models.Beneficiary, error) {
	var resp struct {
		Data struct {
			Beneficiaries []mashreqBeneficiary `json:"beneficiaries"`
		} `json:"data"`
	}
	if err := p.client.get(ctx, "/v1/beneficiaries", nil, &resp); err != nil {
		return nil, fmt.Errorf("mashreq beneficiaries: %w", err)
	}
	out := make([]models.Beneficiary, 0, len(resp.Data.Beneficiaries))
	for _, b := range resp.Data.Beneficiaries {
		verified := b.Status == "ACTIVE"
		out = append(out, models.Beneficiary{
			ID:            b.ID,
			Provider:      models.ProviderMashreq,
			Name:          b.Nickname,
			BankName:      b.Bank,
			AccountNumber: b.AccountNo,
			IBAN:          b.IBAN,
			Country:       b.Country,
			Currency:      b.Ccy,
			IsVerified:    &verified,
		})
	}
	return out, nil
}

func (p *mashreqLive) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	body := mashreqPaymentRequest{
		DebitAccount: req.FromAccountID,
		Beneficiary:  req.ToBeneficiaryID,
		Amount:       mashreqMoney{Value: req.Amount, Currency: req.Currency},
		Purpose:      req.Purpose,
		EndToEndRef:  req.Reference,
		Rail:         "AANI",
	}
	var resp mashreqPaymentResponse
	if err := p.client.post(ctx, "/v1/payments", body, &resp); err != nil {
		return nil, fmt.Errorf("mashreq transfer: %w", err)
	}
	return &models.TransferReceipt{
		PaymentID: resp.PaymentID,
		Status:    resp.PaymentStatus,
		Reference: resp.EndToEndReference,
	}, nil
}
