package banking

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"

	"github.com/shopspring/decimal"
)

type wioAccount struct {
	UUID          string `json:"uuid"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
	Product       string `json:"product"`
	Currency      string `json:"currency"`
	Balance       struct {
		Current   decimal.Decimal `json:"current"`
		Available decimal.Decimal `json:"available"`
	} `json:"balance"`
	Status string `json:"status"`
}

type wioTransaction struct {
	UUID         string          `json:"uuid"`
	Side         string          `json:"side"` // credit | debit
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty_name"`
	Category     string          `json:"category"`
	CreatedAtMs  int64           `json:"created_at_ms"`
	Reference    string          `json:"reference"`
	State        string          `json:"state"`
}

type wioTransferRequest struct {
	FromAccount     string          `json:"from_account_uuid"`
	ToBeneficiary   string          `json:"to_beneficiary_uuid"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Note            string          `json:"note,omitempty"`
	ClientReference string          `json:"client_reference,omitempty"`
}

type wioTransferResponse struct {
	TransferID      string `json:"transfer_id"`
	State           string `json:"state"`
	ClientReference string `json:"client_reference"`
}

// wioLive talks to the Wio Business API. Wio exposes no beneficiary listing.
type wioLive struct {
	base
	client *liveClient
	now    func() time.Time
}

func newWioLive(cfg config.BankConfig, o options) *wioLive {
	headers := map[string]string{
		"Authorization": "Bearer " + cfg.APIKey,
		"X-Wio-Client":  cfg.ClientID,
	}
	return &wioLive{
		base:   newBase(models.ProviderWio, cfg),
		client: newLiveClient(cfg, headers, o.timeout, o.transport),
		now:    o.now,
	}
}

func (p *wioLive) Accounts(ctx context.Context) ([]models.Account, error) {
	var resp []wioAccount
	if err := p.client.get(ctx, "/api/accounts", nil, &resp); err != nil {
		return nil, fmt.Errorf("wio accounts: %w", err)
	}
	synced := p.now()
	out := make([]models.Account, 0, len(resp))
	for _, a := range resp {
		out = append(out, models.Account{
			ID:               a.UUID,
			Provider:         models.ProviderWio,
			AccountNumber:    a.AccountNumber,
			IBAN:             a.IBAN,
			AccountType:      a.Product,
			Currency:         a.Currency,
			Balance:          a.Balance.Current,
			AvailableBalance: a.Balance.Available,
			Status:           a.Status,
			LastSync:         synced,
		})
	}
	return out, nil
}

func (p *wioLive) Transactions(ctx context.Context, accountID string, f models.TransactionFilter) ([]models.Transaction, error) {
	var resp struct {
		Items []wioTransaction `json:"items"`
	}
	q := url.Values{}
	if f.From != nil {
		q.Set("since_ms", strconv.FormatInt(f.From.UnixMilli(), 10))
	}
	if f.To != nil {
		q.Set("until_ms", strconv.FormatInt(f.To.UnixMilli(), 10))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	path := "/api/accounts/" + url.PathEscape(accountID) + "/transactions"
	if err := p.client.get(ctx, path, q, &resp); err != nil {
		return nil, fmt.Errorf("wio transactions: %w", err)
	}
	out := make([]models.Transaction, 0, len(resp.Items))
	for _, t := range resp.Items {
		out = append(out, models.Transaction{
			ID:           t.UUID,
			Provider:     models.ProviderWio,
			AccountID:    accountID,
			Type:         strings.ToUpper(t.Side),
			Amount:       t.Amount,
			Currency:     t.Currency,
			Description:  t.Description,
			MerchantName: t.Counterparty,
			Category:     t.Category,
			Date:         time.UnixMilli(t.CreatedAtMs).UTC(),
			Reference:    t.Reference,
			Status:       t.State,
		})
	}
	return out, nil
}

func (p *wioLive) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	body := wioTransferRequest{
		FromAccount:     req.FromAccountID,
		ToBeneficiary:   req.ToBeneficiaryID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Note:            req.Purpose,
		ClientReference: req.Reference,
	}
	var resp wioTransferResponse
	if err := p.client.post(ctx, "/api/transfers", body, &resp); err != nil {
		return nil, fmt.Errorf("wio transfer: %w", err)
	}
	return &models.TransferReceipt{
		TransferID: resp.TransferID,
		Status:     resp.State,
		Reference:  resp.ClientReference,
	}, nil
}
