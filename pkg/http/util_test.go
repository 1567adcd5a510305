package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 125.50 ")
	require.NoError(t, err)
	assert.Equal(t, "125.5", d.String())

	for _, in := range []string{"", "abc", "0", "-3"} {
		_, err := ParseAmount(in)
		var appErr *AppError
		require.True(t, errors.As(err, &appErr), in)
		assert.Equal(t, http.StatusBadRequest, appErr.Status, in)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "USD", NormalizeCurrency(" usd ", "AED"))
	assert.Equal(t, "AED", NormalizeCurrency("", "AED"))
}

type sampleRequest struct {
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency" default:"AED" validate:"len=3"`
}

func TestReadAndValidateRequest(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	dst := &sampleRequest{}
	assert.Nil(t, ReadAndValidateRequest(c, dst))
	assert.Equal(t, "AED", dst.Currency)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c = e.NewContext(req, httptest.NewRecorder())
	verr := ReadAndValidateRequest(c, &sampleRequest{})
	require.NotNil(t, verr)
	errs, ok := verr.([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}
