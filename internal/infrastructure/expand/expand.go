package expand

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/vitos/vault_scanner/internal/domain"
)

const (
	ExpandBaseURL  = "https://api.expand.network"
	GetVaultsPath  = "/yieldaggregator/getvaults"
	APIKeyHeader   = "x-api-key"
	RequestTimeout = 30 * time.Second
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

type ExpandAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewExpandAdapter(apiKey, baseURL string, log *zap.Logger) *ExpandAdapter {
	if baseURL == "" {
		baseURL = ExpandBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExpandAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: RequestTimeout},
		log:     log,
	}
}

var _ domain.VaultSource = (*ExpandAdapter)(nil)

func (a *ExpandAdapter) VaultsURL(q domain.VaultQuery) (string, error) {
	u, err := url.Parse(a.baseURL + GetVaultsPath)
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}

	params := url.Values{}
	params.Set("yieldAggregatorId", q.YieldAggregatorID)
	params.Set("tokenAddress", q.TokenAddress)
	u.RawQuery = params.Encode()

	return u.String(), nil
}

func (a *ExpandAdapter) GetVaults(ctx context.Context, q domain.VaultQuery) (*domain.VaultsResponse, error) {
	endpoint, err := a.VaultsURL(q)
	if err != nil {
		return nil, err
	}

	body, err := a.sendRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, errors.Errorf("decode response: invalid JSON body: %.200s", string(body))
	}

	return &domain.VaultsResponse{URL: endpoint, Body: body}, nil
}

func (a *ExpandAdapter) sendRequest(ctx context.Context, method, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set(APIKeyHeader, a.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	a.log.Debug("Sending request", zap.String("method", method), zap.String("url", endpoint))

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	a.log.Debug("Received response",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respBody)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
