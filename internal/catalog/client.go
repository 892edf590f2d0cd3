package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/datallboy/otmget/internal/domain"
	"github.com/datallboy/otmget/internal/infra/logger"
)

type Client struct {
	BaseURL string
	Timeout time.Duration

	http *http.Client
	log  *logger.Logger
}

func New(baseURL string, timeout time.Duration, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: timeout,
		http:    httpClient,
		log:     log,
	}
}

// Fetch downloads the catalog page and returns its records in page order.
// Nothing is returned unless the whole page could be read and parsed.
func (c *Client) Fetch(ctx context.Context) ([]domain.Record, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	catalogURL := c.BaseURL + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, catalogURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: creating catalog request: %w", domain.ErrNetwork, err)
	}

	c.log.Debug("Fetching catalog from %s", catalogURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: catalog returned status: %d", domain.ErrNetwork, resp.StatusCode)
	}

	records, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Info("Catalog lists %d maps", len(records))
	return records, nil
}
