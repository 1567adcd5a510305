package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
	irepo "FinBridge/internal/repository"
	"FinBridge/internal/service/banking"
	"FinBridge/internal/service/ratelimit"
	"FinBridge/internal/usecase"
	"FinBridge/pkg/config"
	"FinBridge/pkg/lock"
	xlogger "FinBridge/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name   string
	prices []models.RawPrice
	err    error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchPrices(context.Context) ([]models.RawPrice, error) {
	return s.prices, s.err
}

func (s *stubSource) Quote(_ context.Context, symbol string) (*models.RawPrice, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.prices {
		if s.prices[i].Symbol == symbol {
			return &s.prices[i], nil
		}
	}
	return nil, errors.New("no quote")
}

var _ repository.PriceSource = (*stubSource)(nil)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, rl *ratelimit.Limiter) *echo.Echo {
	t.Helper()
	providers := banking.NewRegistry(&config.Config{}, banking.WithIDGenerator(func() string { return "demo-tx-1" }))
	locker := lock.NewMemoryLocker()
	t.Cleanup(func() { _ = locker.Close() })

	router := usecase.NewTransferRouter(providers, locker, irepo.NoopPublisher{}, time.Minute)
	bank := usecase.NewBankingAggregator(providers, router)
	primary := &stubSource{name: "binance", prices: []models.RawPrice{{Symbol: "BTC", Name: "Bitcoin", Price: 100, PriceAED: 367.25, Volume24h: 10}}}
	fallback := &stubSource{name: "coingecko", err: errors.New("down")}
	crypto := usecase.NewCryptoAggregator(primary, fallback)
	reporter := usecase.NewStatusReporter(providers, crypto)

	e := echo.New()
	NewBankingHandler(xlogger.Nop(), bank, reporter, rl).RegisterRoutes(e)
	NewCryptoHandler(xlogger.Nop(), crypto).RegisterRoutes(e)
	NewStatusHandler(reporter).RegisterRoutes(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestBankingHandler_Accounts(t *testing.T) {
	e := newTestServer(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/banking/accounts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Rows  []models.Account `json:"rows"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 7, list.Total)
	assert.Len(t, list.Rows, 7)
}

func TestBankingHandler_Balance(t *testing.T) {
	e := newTestServer(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/banking/balance", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var bal models.TotalBalance
	require.NoError(t, json.Unmarshal(env.Data, &bal))
	assert.Equal(t, "790000", bal.Total.String())
	assert.Len(t, bal.ByProvider, 4)
}

func TestBankingHandler_TransactionsLimit(t *testing.T) {
	e := newTestServer(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/banking/transactions?limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Rows []models.Transaction `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Rows, 3)
	assert.Equal(t, "wio-tx-0a1", list.Rows[0].ID)

	rec, _ = do(t, e, http.MethodGet, "/api/banking/transactions?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBankingHandler_Beneficiaries(t *testing.T) {
	e := newTestServer(t, nil)
	_, env := do(t, e, http.MethodGet, "/api/banking/beneficiaries", "")

	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 6, list.Total)
}

func TestBankingHandler_Route(t *testing.T) {
	e := newTestServer(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/banking/route?amount=500", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var route models.PaymentRoute
	require.NoError(t, json.Unmarshal(env.Data, &route))
	assert.Equal(t, models.ProviderEmiratesNBD, route.RecommendedProvider)

	rec, _ = do(t, e, http.MethodGet, "/api/banking/route?amount=-5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/banking/route", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBankingHandler_Transfer(t *testing.T) {
	e := newTestServer(t, nil)

	body := `{"provider":"mashreq","fromAccountId":"MSQ-CA-1001","toBeneficiaryId":"MSQ-BEN-11","amount":250.5,"reference":"INV-1"}`
	rec, env := do(t, e, http.MethodPost, "/api/banking/transfers", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.TransferResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "demo-tx-1", resp.TransactionID)
	assert.Equal(t, "INV-1", resp.Reference)
}

func TestBankingHandler_TransferUnknownProvider(t *testing.T) {
	e := newTestServer(t, nil)

	body := `{"provider":"hsbc","fromAccountId":"A","toBeneficiaryId":"B","amount":10}`
	rec, env := do(t, e, http.MethodPost, "/api/banking/transfers", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.TransferResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Unknown provider", resp.Error)
}

func TestBankingHandler_TransferValidation(t *testing.T) {
	e := newTestServer(t, nil)

	rec, _ := do(t, e, http.MethodPost, "/api/banking/transfers", `{"provider":"wio","amount":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := `{"provider":"wio","fromAccountId":"A","toBeneficiaryId":"B","amount":0}`
	rec, _ = do(t, e, http.MethodPost, "/api/banking/transfers", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBankingHandler_TransferRateLimited(t *testing.T) {
	e := newTestServer(t, ratelimit.New(0.001, 1, time.Minute))

	body := `{"provider":"wio","fromAccountId":"wio-acc-7f3a","toBeneficiaryId":"B","amount":10}`
	rec, _ := do(t, e, http.MethodPost, "/api/banking/transfers", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/api/banking/transfers", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestBankingHandler_Providers(t *testing.T) {
	e := newTestServer(t, nil)
	_, env := do(t, e, http.MethodGet, "/api/banking/providers", "")

	var list struct {
		Rows []models.ProviderStatus `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Rows, 4)
	assert.Equal(t, models.ProviderRakbank, list.Rows[0].Name)
}

func TestCryptoHandler_Prices(t *testing.T) {
	e := newTestServer(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/crypto/prices", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.CryptoPrices
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.Prices, 1)
	assert.Equal(t, "BTC", res.Prices[0].Symbol)
	require.Len(t, res.Sources, 2)
	assert.Equal(t, models.SourceError, res.Sources[1].Status)
}

func TestCryptoHandler_Convert(t *testing.T) {
	e := newTestServer(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/crypto/convert?symbol=btc&amount=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var conv models.Conversion
	require.NoError(t, json.Unmarshal(env.Data, &conv))
	assert.InDelta(t, 734.5, conv.AEDAmount, 1e-9)
	assert.Equal(t, "binance", conv.Source)

	rec, env = do(t, e, http.MethodGet, "/api/crypto/convert?symbol=DOGE&amount=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(env.Data))

	rec, _ = do(t, e, http.MethodGet, "/api/crypto/convert?symbol=BTC", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusHandler(t *testing.T) {
	e := newTestServer(t, nil)
	rec, env := do(t, e, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st models.SystemStatus
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 0, st.Health.Score)
	assert.Equal(t, models.HealthDemo, st.Health.Status)
	assert.Equal(t, 4, st.Banking.Total)
	assert.Equal(t, 1, st.Crypto.Online)
}
