package api

import (
	"net/http"
	"strings"

	models "FinBridge/internal/domain/models"
	"FinBridge/internal/service/ratelimit"
	"FinBridge/internal/usecase"
	xhttp "FinBridge/pkg/http"
	xlogger "FinBridge/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BankingHandler exposes the banking aggregator over HTTP.
type BankingHandler struct {
	logger   *xlogger.Logger
	agg      *usecase.BankingAggregator
	reporter *usecase.StatusReporter
	rl       *ratelimit.Limiter
}

func NewBankingHandler(logger *xlogger.Logger, agg *usecase.BankingAggregator, reporter *usecase.StatusReporter, rl *ratelimit.Limiter) *BankingHandler {
	return &BankingHandler{logger: logger, agg: agg, reporter: reporter, rl: rl}
}

func (h *BankingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/banking")
	g.GET("/accounts", h.Accounts)
	g.GET("/balance", h.Balance)
	g.GET("/transactions", h.Transactions)
	g.GET("/beneficiaries", h.Beneficiaries)
	g.GET("/route", h.Route)
	g.GET("/providers", h.Providers)
	g.POST("/transfers", h.Transfer)
}

func (h *BankingHandler) Accounts(c echo.Context) error {
	res := h.agg.GetAllAccounts(c.Request().Context())
	return xhttp.ListResponse(c, res.Accounts, len(res.Accounts), res.Errors)
}

func (h *BankingHandler) Balance(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.agg.GetTotalBalance(c.Request().Context()))
}

func (h *BankingHandler) Transactions(c echo.Context) error {
	req := &models.TransactionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := h.agg.GetRecentTransactions(c.Request().Context(), req.Limit)
	return xhttp.ListResponse(c, res.Transactions, len(res.Transactions), res.Errors)
}

func (h *BankingHandler) Beneficiaries(c echo.Context) error {
	res := h.agg.GetAllBeneficiaries(c.Request().Context())
	return xhttp.ListResponse(c, res.Beneficiaries, len(res.Beneficiaries), res.Errors)
}

func (h *BankingHandler) Route(c echo.Context) error {
	req := &models.RouteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	amount, err := xhttp.ParseAmount(req.Amount)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	route := h.agg.FindBestPaymentRoute(amount, xhttp.NormalizeCurrency(req.Currency, "AED"))
	return xhttp.SuccessResponse(c, route)
}

func (h *BankingHandler) Providers(c echo.Context) error {
	rows := h.reporter.GetProvidersStatus()
	return xhttp.ListResponse(c, rows, len(rows), nil)
}

func (h *BankingHandler) Transfer(c echo.Context) error {
	if h.rl != nil && !h.rl.Allow(c.RealIP()) {
		h.logger.Warn("banking.transfer rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, nil)
	}
	req := &models.TransferHTTPRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	amount, err := xhttp.ParseAmount(req.Amount.String())
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	resp := h.agg.MakeTransfer(c.Request().Context(), models.TransferRequest{
		Provider:        models.ProviderID(strings.ToLower(strings.TrimSpace(req.Provider))),
		FromAccountID:   req.FromAccountID,
		ToBeneficiaryID: req.ToBeneficiaryID,
		Amount:          amount,
		Currency:        xhttp.NormalizeCurrency(req.Currency, "AED"),
		Purpose:         req.Purpose,
		Reference:       req.Reference,
	})
	return xhttp.DataResponse(c, transferStatus(resp), resp)
}

func transferStatus(resp models.TransferResponse) int {
	switch usecase.TransferResult(resp) {
	case usecase.ResultSuccess:
		return http.StatusCreated
	case usecase.ResultUnknownProvider:
		return http.StatusBadRequest
	case usecase.ResultDuplicate:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
