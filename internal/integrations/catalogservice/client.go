package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
)

// Logger is the logging interface consumed by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client is an HTTP client for the external catalog service. The catalog is
// small and finite: both listing calls return the full set, unpaginated, and
// callers treat the result as static for the duration of one operation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a catalog service client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListActiveServices fetches all active services from the catalog.
func (c *Client) ListActiveServices(ctx context.Context) ([]domain.Service, error) {
	url := fmt.Sprintf("%s/internal/catalog/services?active=true", c.baseURL)

	var dtos []serviceDTO
	if err := c.getJSON(ctx, url, &dtos); err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(dtos))
	for _, dto := range dtos {
		if !dto.Active {
			continue
		}
		services = append(services, dto.toDomain())
	}
	return services, nil
}

// ListProviders fetches all providers from the catalog.
func (c *Client) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	url := fmt.Sprintf("%s/internal/catalog/providers", c.baseURL)

	var dtos []providerDTO
	if err := c.getJSON(ctx, url, &dtos); err != nil {
		return nil, err
	}

	providers := make([]domain.Provider, 0, len(dtos))
	for _, dto := range dtos {
		provider, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return providers, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
