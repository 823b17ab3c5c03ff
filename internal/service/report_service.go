package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"mindwell/internal/cache"
	"mindwell/internal/logger"
	"mindwell/internal/model"
	"mindwell/internal/repository"
)

const (
	defaultCaseLimit  = 20
	defaultTrendWeeks = 4
	maxTrendWeeks     = 52
)

// ReportService builds the aggregate views staff use for triage
type ReportService struct {
	assessments repository.AssessmentRepo
	users       repository.UserRepo
	cache       cache.ReportCache
	log         *logger.Logger
	now         func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	assessments repository.AssessmentRepo,
	users repository.UserRepo,
	reportCache cache.ReportCache,
	log *logger.Logger,
) *ReportService {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportService{
		assessments: assessments,
		users:       users,
		cache:       reportCache,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RiskDistribution counts assessments per risk level, served from cache when fresh
func (s *ReportService) RiskDistribution(ctx context.Context) (*model.RiskDistribution, error) {
	cached, err := s.cache.GetDistribution(ctx)
	if err != nil {
		s.log.Warn("report cache read failed", "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	counts, err := s.assessments.CountByRiskLevel(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to count risk levels: %w", err)
	}
	d := &model.RiskDistribution{GeneratedAt: s.now()}
	for _, rc := range counts {
		d.Add(rc)
	}

	if err := s.cache.SetDistribution(ctx, d); err != nil {
		s.log.Warn("report cache write failed", "error", err)
	}
	return d, nil
}

// RiskTrends counts assessments per risk level for each of the last weeks
// seven-day windows ending now, oldest first.
func (s *ReportService) RiskTrends(ctx context.Context, weeks int) ([]model.RiskTrendWeek, error) {
	if weeks <= 0 {
		weeks = defaultTrendWeeks
	}
	if weeks > maxTrendWeeks {
		weeks = maxTrendWeeks
	}

	now := s.now()
	trend := make([]model.RiskTrendWeek, weeks)
	g, gctx := errgroup.WithContext(ctx)
	for i := range trend {
		start := now.AddDate(0, 0, -7*(weeks-i))
		trend[i] = model.RiskTrendWeek{Week: i + 1, Start: start, End: start.AddDate(0, 0, 7)}
		w := &trend[i]
		g.Go(func() error {
			counts, err := s.assessments.CountByRiskLevel(gctx, w.Start, w.End)
			if err != nil {
				return err
			}
			for _, rc := range counts {
				w.Add(rc)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count weekly risk levels: %w", err)
	}
	return trend, nil
}

// CriticalCases lists the most recent high and critical assessments
func (s *ReportService) CriticalCases(ctx context.Context, limit int) ([]model.CaseSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultCaseLimit
	}
	list, err := s.assessments.ListByRiskLevels(ctx, []model.RiskLevel{model.RiskHigh, model.RiskCritical}, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	ids := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, a := range list {
		if !seen[a.StudentID] {
			seen[a.StudentID] = true
			ids = append(ids, a.StudentID)
		}
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("failed to load student names", "error", err)
		users = nil
	}

	cases := make([]model.CaseSummary, 0, len(list))
	for _, a := range list {
		c := model.CaseSummary{
			AssessmentID:    a.ID,
			StudentID:       a.StudentID,
			RiskLevel:       a.RiskLevel,
			AnxietyScore:    a.AnxietyScore,
			DepressionScore: a.DepressionScore,
			StressScore:     a.StressScore,
			CreatedAt:       a.CreatedAt,
		}
		if u, ok := users[a.StudentID]; ok {
			c.StudentName = u.FullName
		}
		cases = append(cases, c)
	}
	return cases, nil
}
