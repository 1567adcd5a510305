package banking

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"FinBridge/pkg/config"
	xhttp "FinBridge/pkg/http"

	"golang.org/x/time/rate"
)

// authTransport stamps bank credentials onto every outgoing request.
type authTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

// liveClient is the rate-limited HTTP client shared by all live adapters.
type liveClient struct {
	baseURL string
	http    *xhttp.Client
	limiter *rate.Limiter
}

func newLiveClient(cfg config.BankConfig, headers map[string]string, timeout time.Duration, rt http.RoundTripper) *liveClient {
	if rt == nil {
		rt = http.DefaultTransport
	}
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 5
	}
	burst := int(math.Max(1, math.Ceil(rps)))
	return &liveClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithUserAgent("finbridge/1.0"),
			xhttp.WithTransport(&authTransport{headers: headers, base: rt}),
		),
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *liveClient) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	return c.do(ctx, xhttp.MethodGet, path, query, nil, dest)
}

func (c *liveClient) post(ctx context.Context, path string, body, dest interface{}) error {
	return c.do(ctx, xhttp.MethodPost, path, nil, body, dest)
}

func (c *liveClient) do(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      method,
		URL:         c.baseURL + path,
		QueryParams: query,
		Body:        body,
	}, dest)
}

// rangeQuery renders a transaction filter using the bank's parameter names.
func rangeQuery(fromKey, toKey, limitKey, layout string, from, to *time.Time, limit int) url.Values {
	q := url.Values{}
	if from != nil {
		q.Set(fromKey, from.UTC().Format(layout))
	}
	if to != nil {
		q.Set(toKey, to.UTC().Format(layout))
	}
	if limit > 0 && limitKey != "" {
		q.Set(limitKey, fmt.Sprint(limit))
	}
	return q
}
