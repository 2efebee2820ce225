package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cashflow-tracker/internal/config"
	"cashflow-tracker/internal/projection"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	// RatesSourceName is reported alongside converted totals.
	RatesSourceName = "exchangerate-api.com"

	rateBreakerService  = "exchange_rates"
	defaultRatesTimeout = 10 * time.Second
)

// rateTable is one fetched quote: one unit of the base currency is worth
// rates[cur] units of cur.
type rateTable struct {
	base  string
	asOf  time.Time
	rates map[string]decimal.Decimal
}

type rateResponse struct {
	Base            string                     `json:"base"`
	Date            string                     `json:"date"`
	TimeLastUpdated int64                      `json:"time_last_updated"`
	Rates           map[string]decimal.Decimal `json:"rates"`
}

// ExchangeRateProvider quotes conversions into the reporting currency from
// an exchangerate-api.com style endpoint, GET {base}/{CURRENCY}.
type ExchangeRateProvider struct {
	baseURL     string
	reporting   string
	client      *http.Client
	cache       *cache.Cache
	group       singleflight.Group
	breaker     CircuitBreakerInterface
	auditLogger AuditLoggerInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewExchangeRateProvider creates a cached, circuit-broken rate provider
func NewExchangeRateProvider(
	cfg *config.RatesConfig,
	breaker CircuitBreakerInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) RateProviderInterface {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	reporting := strings.ToUpper(cfg.ReportingCurrency)
	if reporting == "" {
		reporting = projection.ReportingCurrency
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRatesTimeout
	}

	return &ExchangeRateProvider{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		reporting:   reporting,
		client:      &http.Client{Timeout: timeout},
		cache:       cache.New(ttl, 2*ttl),
		breaker:     breaker,
		auditLogger: auditLogger,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Source names the upstream quoting service
func (p *ExchangeRateProvider) Source() string {
	return RatesSourceName
}

// GetConversionRate returns how many units of to one unit of from is worth.
// Every failure wraps projection.ErrRateUnavailable.
func (p *ExchangeRateProvider) GetConversionRate(ctx context.Context, from, to string) (projection.Conversion, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	if from == to {
		return projection.Conversion{From: from, To: to, Rate: decimal.NewFromInt(1), AsOf: p.now().UTC()}, nil
	}
	if to != p.reporting {
		return projection.Conversion{}, p.fail(ctx, from, to, fmt.Errorf("provider only quotes into %s", p.reporting))
	}

	table, err := p.table(ctx)
	if err != nil {
		return projection.Conversion{}, p.fail(ctx, from, to, err)
	}

	quoted, ok := table.rates[from]
	if !ok || !quoted.IsPositive() {
		return projection.Conversion{}, p.fail(ctx, from, to, fmt.Errorf("no quote for %s", from))
	}

	p.metrics.IncrementCounter(MetricRateLookup, map[string]string{"currency": from, "status": "success"})

	// The table quotes base into from; invert it to convert from into base.
	return projection.Conversion{
		From: from,
		To:   to,
		Rate: decimal.NewFromInt(1).Div(quoted),
		AsOf: table.asOf,
	}, nil
}

func (p *ExchangeRateProvider) fail(ctx context.Context, from, to string, err error) error {
	p.metrics.IncrementCounter(MetricRateLookup, map[string]string{"currency": from, "status": "failed"})
	p.auditLogger.LogRateLookupFailed(ctx, from, to, err)
	return fmt.Errorf("%w: %s to %s: %w", projection.ErrRateUnavailable, from, to, err)
}

// table returns the cached quote for the reporting currency, fetching it at
// most once at a time when the cache is cold.
func (p *ExchangeRateProvider) table(ctx context.Context) (*rateTable, error) {
	key := "rates:" + p.reporting
	if cached, found := p.cache.Get(key); found {
		p.metrics.IncrementCounter(MetricRateCacheHit, nil)
		return cached.(*rateTable), nil
	}

	// The shared fetch is bounded by the client timeout, not by any one
	// caller's context.
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (interface{}, error) {
		if p.breaker.IsOpen() {
			return nil, ErrCircuitBreakerOpen
		}

		start := time.Now()
		table, err := p.fetch(fetchCtx)
		p.metrics.RecordProcessingTime(MetricRateFetchDuration, time.Since(start))

		before := p.breaker.GetState()
		if err != nil {
			p.breaker.RecordFailure()
		} else {
			p.breaker.RecordSuccess()
		}
		p.observeBreaker(fetchCtx, before)

		if err != nil {
			p.logger.Error("failed to fetch exchange rates",
				"error", err,
				"base", p.reporting)
			return nil, err
		}

		p.cache.Set(key, table, cache.DefaultExpiration)
		return table, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*rateTable), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("rates lookup abandoned: %w", ctx.Err())
	}
}

func (p *ExchangeRateProvider) fetch(ctx context.Context) (*rateTable, error) {
	url := p.baseURL + "/" + p.reporting

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned %s", resp.Status)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rates: %w", err)
	}

	if !strings.EqualFold(body.Base, p.reporting) {
		return nil, fmt.Errorf("rates quoted in %q, want %s", body.Base, p.reporting)
	}
	if len(body.Rates) == 0 {
		return nil, errors.New("rates response is empty")
	}

	return &rateTable{
		base:  p.reporting,
		asOf:  p.quoteTime(body),
		rates: body.Rates,
	}, nil
}

func (p *ExchangeRateProvider) quoteTime(body rateResponse) time.Time {
	if t, err := time.Parse("2006-01-02", body.Date); err == nil {
		return t
	}
	if body.TimeLastUpdated > 0 {
		return time.Unix(body.TimeLastUpdated, 0).UTC()
	}
	return p.now().UTC()
}

func (p *ExchangeRateProvider) observeBreaker(ctx context.Context, before CircuitBreakerState) {
	after := p.breaker.GetState()
	p.metrics.RecordGauge(MetricCircuitBreakerState, float64(after), map[string]string{"service": rateBreakerService})
	if after != before {
		p.auditLogger.LogCircuitBreakerStateChange(ctx, rateBreakerService, before.String(), after.String())
	}
}
