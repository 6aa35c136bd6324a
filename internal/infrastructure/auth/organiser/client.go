package organiser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/kickaround/pickup-league/internal/platform/logging"
	"github.com/kickaround/pickup-league/internal/platform/resilience"
	"github.com/kickaround/pickup-league/internal/usecase"
)

var errVerifyTransient = crerr.New("organiser pin service transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	VerifyPath     string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client verifies organiser PINs against an external service. Transient
// upstream failures trip a circuit breaker and surface as
// ErrDependencyUnavailable rather than unauthorized.
type Client struct {
	httpClient     *http.Client
	verifyURL      string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		verifyURL:      buildURL(cfg.BaseURL, cfg.VerifyPath),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) Verify(ctx context.Context, pin string) error {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return fmt.Errorf("%w: organiser pin is required", usecase.ErrUnauthorized)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "organiser pin circuit breaker rejected request",
				"state", c.breaker.State(),
			)
			return fmt.Errorf("%w: pin service circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	err := c.verify(ctx, pin)
	if c.circuitEnabled {
		if errors.Is(err, errVerifyTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	if errors.Is(err, errVerifyTransient) {
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}
	return err
}

func (c *Client) verify(ctx context.Context, pin string) error {
	encoded, err := json.Marshal(verifyRequest{Pin: pin})
	if err != nil {
		return fmt.Errorf("marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %v", errVerifyTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: wrong organiser pin", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read verify response: %v", errVerifyTransient, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "organiser pin verify non-200",
			"status_code", resp.StatusCode,
		)
		return fmt.Errorf("%w: status=%d", errVerifyTransient, resp.StatusCode)
	}

	var decoded verifyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("unmarshal verify response: %w", err)
	}
	if !decoded.Valid {
		return fmt.Errorf("%w: wrong organiser pin", usecase.ErrUnauthorized)
	}
	return nil
}

type verifyRequest struct {
	Pin string `json:"pin"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}
