package report

import (
	"context"
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/report"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTopLimit = 10

// Cache stores rendered dashboard payloads. A failed cache read or
// write never fails the request, the queries run against the database
// instead.
type Cache interface {
	Get(ctx context.Context, key string, value interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ReportService builds the sales dashboard from read-model queries
type ReportService struct {
	reportRepo report.SalesReportRepository
	cache      Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewReportService creates a new ReportService. cache may be nil to
// disable caching.
func NewReportService(
	reportRepo report.SalesReportRepository,
	cache Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Dashboard returns the sales summary, top products and daily series
// for the requested period
func (s *ReportService) Dashboard(ctx context.Context, query DashboardQuery) (*DashboardResponse, error) {
	if query.To.Before(query.From) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Report period end must not precede its start")
	}
	if query.TopLimit <= 0 {
		query.TopLimit = defaultTopLimit
	}

	cacheKey := s.cacheKey(query)
	if s.cache != nil {
		var cached DashboardResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("Report cache read failed", zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	summary, err := s.reportRepo.Summary(ctx, query.From, query.To, query.BranchID)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.reportRepo.TopProducts(ctx, query.From, query.To, query.BranchID, query.TopLimit)
	if err != nil {
		return nil, err
	}
	dailySales, err := s.reportRepo.DailySeries(ctx, query.From, query.To, query.BranchID)
	if err != nil {
		return nil, err
	}

	response := &DashboardResponse{
		Summary:     *summary,
		TopProducts: topProducts,
		DailySales:  dailySales,
		GeneratedAt: time.Now(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, s.cacheTTL); err != nil {
			s.logger.Warn("Report cache write failed", zap.Error(err))
		}
	}

	return response, nil
}

// Summary returns only the aggregate figures for the period
func (s *ReportService) Summary(ctx context.Context, from, to time.Time, branchID *uuid.UUID) (*report.SalesSummary, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Report period end must not precede its start")
	}
	return s.reportRepo.Summary(ctx, from, to, branchID)
}

func (s *ReportService) cacheKey(query DashboardQuery) string {
	branch := "all"
	if query.BranchID != nil {
		branch = query.BranchID.String()
	}
	return fmt.Sprintf("report:dashboard:%s:%s:%s:%d",
		query.From.Format("2006-01-02"),
		query.To.Format("2006-01-02"),
		branch,
		query.TopLimit)
}
