package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/projection"
	"cashflow-tracker/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentRateLookups bounds the parallel rate requests of one projection.
const maxConcurrentRateLookups = 4

type projectionService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	rateProvider    RateProviderInterface
	reporting       string
	auditLogger     AuditLoggerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewProjectionService creates the service that snapshots a user's ledger
// and runs the projection engine over it.
func NewProjectionService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	rateProvider RateProviderInterface,
	reportingCurrency string,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ProjectionServiceInterface {
	if reportingCurrency == "" {
		reportingCurrency = projection.ReportingCurrency
	}
	return &projectionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		rateProvider:    rateProvider,
		reporting:       reportingCurrency,
		auditLogger:     auditLogger,
		metrics:         metrics,
		logger:          logger,
	}
}

// Project projects every account of the user over the six months after
// asOf's month. Accounts whose currency cannot be converted are still
// projected but left out of the grand totals.
func (s *projectionService) Project(ctx context.Context, userID uuid.UUID, asOf time.Time) (*projection.Result, error) {
	start := time.Now()

	input, err := s.snapshot(userID, asOf)
	if err != nil {
		s.metrics.IncrementCounter(MetricProjectionFailed, map[string]string{"reason": "storage"})
		return nil, err
	}

	if err := projection.Validate(input); err != nil {
		s.metrics.IncrementCounter(MetricProjectionFailed, map[string]string{"reason": "invalid_input"})
		s.logger.Warn("projection input rejected",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	rates, err := s.resolveRates(ctx, input.Accounts)
	if err != nil {
		s.metrics.IncrementCounter(MetricProjectionFailed, map[string]string{"reason": "canceled"})
		return nil, err
	}

	result := projection.Project(input, rates)
	elapsed := time.Since(start)

	s.metrics.IncrementCounter(MetricProjectionComputed, nil)
	s.metrics.RecordProcessingTime(MetricProjectionDuration, elapsed)
	s.metrics.RecordGauge(MetricProjectionOmitted, float64(len(result.OmittedAccounts)), nil)
	s.auditLogger.LogProjectionComputed(ctx, userID, input.AsOf, len(input.Accounts), len(result.OmittedAccounts), elapsed)
	s.writeAudit(userID, input.AsOf, len(input.Accounts), len(result.OmittedAccounts))

	return &result, nil
}

func (s *projectionService) snapshot(userID uuid.UUID, asOf time.Time) (projection.Input, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return projection.Input{}, fmt.Errorf("failed to get accounts: %w", err)
	}

	transactions, err := s.transactionRepo.GetByUserID(userID)
	if err != nil {
		return projection.Input{}, fmt.Errorf("failed to get transactions: %w", err)
	}

	input := projection.Input{
		Accounts:     make([]projection.Account, 0, len(accounts)),
		Transactions: make([]projection.Transaction, 0, len(transactions)),
		AsOf:         asOf,
	}
	for i := range accounts {
		input.Accounts = append(input.Accounts, accounts[i].ToProjection())
	}
	for i := range transactions {
		input.Transactions = append(input.Transactions, transactions[i].ToProjection())
	}
	return input, nil
}

// resolveRates looks up every foreign currency held by accounts in
// parallel. A failed lookup leaves the currency out of the table; only
// cancellation of ctx is an error.
func (s *projectionService) resolveRates(ctx context.Context, accounts []projection.Account) (projection.Rates, error) {
	rates := projection.NewRates(s.reporting)

	seen := make(map[string]struct{})
	var currencies []string
	for _, a := range accounts {
		if a.Currency == s.reporting {
			continue
		}
		if _, ok := seen[a.Currency]; ok {
			continue
		}
		seen[a.Currency] = struct{}{}
		currencies = append(currencies, a.Currency)
	}
	sort.Strings(currencies)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRateLookups)

	for _, currency := range currencies {
		g.Go(func() error {
			conv, err := s.rateProvider.GetConversionRate(gctx, currency, s.reporting)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("omitting currency from projection totals",
					"currency", currency,
					"error", err)
				return nil
			}

			mu.Lock()
			rates.Add(conv)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return projection.Rates{}, fmt.Errorf("rate resolution interrupted: %w", err)
	}
	return rates, nil
}

func (s *projectionService) writeAudit(userID uuid.UUID, asOf time.Time, accounts, omitted int) {
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionProject,
		Resource:   models.AuditResourceProjection,
		ResourceID: asOf.Format("2006-01-02"),
	}
	log.SetMetadata("accounts", accounts)
	log.SetMetadata("omitted_accounts", omitted)

	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Error("failed to write audit log",
			"error", err,
			"action", log.Action)
	}
}
