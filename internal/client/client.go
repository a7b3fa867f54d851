package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/fittrackapp/fittrack/internal/telemetry/metrics"
	"github.com/fittrackapp/fittrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// TokenSource provides the current bearer credential, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Client is the single HTTP adapter in front of the backend REST API.
// It attaches the bearer credential, tags each request with an X-Request-Id,
// and normalizes non-2xx responses into *APIError. It does no retries and
// no caching - that is the job of the calling stores.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
	metrics     *metrics.Manager
}

func NewClient(
	baseURL string,
	httpClient *http.Client,
	tokenSource TokenSource,
	metricsManager *metrics.Manager,
) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		tokenSource: tokenSource,
		metrics:     metricsManager,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "client.request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokenSource.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Tracef("-> %s %s", method, path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.HistogramRequestDuration.
			WithLabelValues(method).
			Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.CounterAPIRequests.WithLabelValues(method, "0").Inc()
			c.metrics.CounterAPIErrors.Inc()
		}
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.CounterAPIRequests.
			WithLabelValues(method, strconv.Itoa(resp.StatusCode)).
			Inc()
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response bytes: %w", err)
	}

	log.Tracef("<- %s %s: %d [%d bytes]", method, path, resp.StatusCode, len(respBytes))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if c.metrics != nil {
			c.metrics.CounterAPIErrors.Inc()
		}
		return newAPIError(resp.StatusCode, respBytes)
	}

	if out != nil && len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("unmarshal response bytes: %w", err)
		}
	}

	return nil
}
