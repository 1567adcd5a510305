package api

import (
	"FinBridge/internal/usecase"
	xhttp "FinBridge/pkg/http"

	"github.com/labstack/echo/v4"
)

type StatusHandler struct {
	reporter *usecase.StatusReporter
}

func NewStatusHandler(reporter *usecase.StatusReporter) *StatusHandler {
	return &StatusHandler{reporter: reporter}
}

func (h *StatusHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/status", h.Status)
}

func (h *StatusHandler) Status(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.reporter.BuildSystemStatus(c.Request().Context()))
}
