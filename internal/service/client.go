package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/InQaaaaGit/snipscan.git/internal/config"
	"github.com/InQaaaaGit/snipscan.git/internal/models"
	"go.uber.org/zap"
)

const (
	shortenPath     = "/api/short"
	contentTypeJSON = "application/json"
	maxResponseSize = 1 << 20
)

// APIClient реализует Shortener поверх HTTP API сервиса сокращения
type APIClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption настраивает APIClient
type ClientOption func(*APIClient)

// WithHTTPClient подменяет http.Client, используемый для запросов
func WithHTTPClient(c *http.Client) ClientOption {
	return func(a *APIClient) {
		a.httpClient = c
	}
}

// NewAPIClient создает клиент для сервиса, расположенного по cfg.APIBaseURL
func NewAPIClient(cfg *config.Config, logger *zap.Logger, opts ...ClientOption) (*APIClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &APIClient{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		timeout:    cfg.RequestTimeout,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint возвращает полный адрес метода сокращения
func (c *APIClient) Endpoint() string {
	return c.baseURL + shortenPath
}

// Shorten отправляет originalURL в сервис и возвращает короткую ссылку и QR-код.
// Любая ошибка транспорта, статус вне 2xx и некорректное тело ответа приводят к ошибке.
func (c *APIClient) Shorten(ctx context.Context, originalURL string) (models.ShortenResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(models.ShortenRequest{OriginalURL: originalURL})
	if err != nil {
		return models.ShortenResult{}, fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return models.ShortenResult{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ShortenResult{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("Error closing response body", zap.Error(err))
		}
	}()

	c.logger.Debug("Shorten request completed",
		zap.String("endpoint", c.Endpoint()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return models.ShortenResult{}, fmt.Errorf("%w: error reading body: %w", ErrRequestFailed, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return models.ShortenResult{}, fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	var out models.ShortenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return models.ShortenResult{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(out.MyURL) == "" {
		return models.ShortenResult{}, fmt.Errorf("%w: empty myUrl", ErrMalformedResponse)
	}

	return out.Result(), nil
}
