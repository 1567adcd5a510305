package api

import (
	"strings"

	models "FinBridge/internal/domain/models"
	"FinBridge/internal/usecase"
	xhttp "FinBridge/pkg/http"
	xlogger "FinBridge/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CryptoHandler serves unified prices and AED conversion.
type CryptoHandler struct {
	logger *xlogger.Logger
	agg    *usecase.CryptoAggregator
}

func NewCryptoHandler(logger *xlogger.Logger, agg *usecase.CryptoAggregator) *CryptoHandler {
	return &CryptoHandler{logger: logger, agg: agg}
}

func (h *CryptoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/crypto")
	g.GET("/prices", h.Prices)
	g.GET("/convert", h.Convert)
	g.GET("/sources", h.Sources)
}

func (h *CryptoHandler) Prices(c echo.Context) error {
	res := h.agg.GetUnifiedCryptoPrices(c.Request().Context())
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, res)
}

// Convert answers 200 with null data when no source could price the symbol.
func (h *CryptoHandler) Convert(c echo.Context) error {
	req := &models.ConvertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	conv := h.agg.ConvertToAED(c.Request().Context(), strings.ToUpper(req.Symbol), req.Amount)
	if conv == nil {
		h.logger.Warn("crypto.convert no price", xlogger.String("symbol", req.Symbol))
	}
	return xhttp.SuccessResponse(c, conv)
}

func (h *CryptoHandler) Sources(c echo.Context) error {
	rows := h.agg.GetPriceSourcesStatus(c.Request().Context())
	return xhttp.ListResponse(c, rows, len(rows), nil)
}
