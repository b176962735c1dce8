package services

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/cache"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
)

const (
	overviewCacheKey = "analytics:overview"
	overviewCacheTTL = 60 * time.Second
	topInsights      = 5
)

type analyticsService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *ServiceLogger
}

func NewAnalyticsService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) AnalyticsService {
	if cacheService == nil {
		cacheService = cache.NewNoopCache()
	}
	return &analyticsService{
		repo:   repo,
		cache:  cacheService,
		logger: NewServiceLogger(logger, "analytics"),
	}
}

// ===== ADMIN OVERVIEW =====

func (s *analyticsService) Overview(ctx context.Context) (*models.AnalyticsOverview, error) {
	var cached models.AnalyticsOverview
	err := s.cache.Get(ctx, overviewCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn(ctx, "Failed to read analytics cache", "error", err)
	}

	totalUsers, err := s.repo.Users().Count(ctx)
	if err != nil {
		return nil, repoError(err, nil, "count users")
	}
	interviewStats, err := s.repo.Interviews().GetStats(ctx)
	if err != nil {
		return nil, repoError(err, nil, "get interview stats")
	}
	evaluationStats, err := s.repo.Evaluations().GetStats(ctx)
	if err != nil {
		return nil, repoError(err, nil, "get evaluation stats")
	}

	overview := &models.AnalyticsOverview{
		TotalUsers:          totalUsers,
		TotalInterviews:     interviewStats.Total,
		CompletedInterviews: interviewStats.Completed,
		TotalEvaluations:    evaluationStats.Total,
		AverageDuration:     roundTo(interviewStats.AverageDuration, 1),
		AverageScore:        roundTo(evaluationStats.AverageScore, 1),
		RoleDistribution:    interviewStats.RoleDistribution,
		Performance:         evaluationStats.Performance,
	}
	if interviewStats.Total > 0 {
		overview.CompletionRate = roundTo(float64(interviewStats.Completed)/float64(interviewStats.Total)*100, 1)
	}
	if overview.RoleDistribution == nil {
		overview.RoleDistribution = []models.RoleCount{}
	}
	if len(overview.Performance) == 0 {
		overview.Performance = repositories.EmptyBuckets()
	}

	if err := s.cache.Set(ctx, overviewCacheKey, overview, overviewCacheTTL); err != nil {
		s.logger.Warn(ctx, "Failed to cache analytics overview", "error", err)
	}
	return overview, nil
}

// ===== USER PERFORMANCE =====

func (s *analyticsService) UserPerformance(ctx context.Context, userID uint) (*models.PerformanceStats, error) {
	exists, err := s.repo.Users().ExistsByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, nil, "check user")
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	// Newest first
	evaluations, _, err := s.repo.Evaluations().List(ctx, repositories.EvaluationFilters{UserID: &userID})
	if err != nil {
		return nil, repoError(err, nil, "list evaluations")
	}

	stats := &models.PerformanceStats{
		UserID:          userID,
		Count:           len(evaluations),
		Trend:           models.TrendStable,
		TopStrengths:    []string{},
		TopWeaknesses:   []string{},
		RolePerformance: []models.RolePerformance{},
	}
	if len(evaluations) == 0 {
		return stats, nil
	}

	stats.Averages = averageScores(evaluations)
	stats.Trend, stats.TrendValue = scoreTrend(evaluations)

	var strengths, weaknesses []string
	for _, e := range evaluations {
		strengths = append(strengths, e.StrengthList()...)
		weaknesses = append(weaknesses, e.WeaknessList()...)
	}
	stats.TopStrengths = topByFrequency(strengths, topInsights)
	stats.TopWeaknesses = topByFrequency(weaknesses, topInsights)

	rolePerformance, err := s.rolePerformance(ctx, userID, evaluations)
	if err != nil {
		return nil, err
	}
	stats.RolePerformance = rolePerformance
	return stats, nil
}

func (s *analyticsService) rolePerformance(ctx context.Context, userID uint, evaluations []*models.Evaluation) ([]models.RolePerformance, error) {
	completed := models.InterviewCompleted
	interviews, _, err := s.repo.Interviews().List(ctx, repositories.InterviewFilters{UserID: &userID, Status: &completed})
	if err != nil {
		return nil, repoError(err, nil, "list interviews")
	}

	byInterview := make(map[uint]*models.Evaluation, len(evaluations))
	for _, e := range evaluations {
		byInterview[e.InterviewID] = e
	}

	type roleTotal struct {
		count int
		total int
	}
	totals := map[string]*roleTotal{}
	var order []string
	for _, interview := range interviews {
		evaluation, ok := byInterview[interview.ID]
		if !ok {
			continue
		}
		t, ok := totals[interview.Role]
		if !ok {
			t = &roleTotal{}
			totals[interview.Role] = t
			order = append(order, interview.Role)
		}
		t.count++
		t.total += evaluation.OverallScore
	}

	out := make([]models.RolePerformance, 0, len(order))
	for _, role := range order {
		t := totals[role]
		out = append(out, models.RolePerformance{
			Role:       role,
			AvgScore:   roundAverage(t.total, t.count),
			Interviews: t.count,
		})
	}
	slices.SortStableFunc(out, func(a, b models.RolePerformance) int {
		return cmp.Compare(b.AvgScore, a.AvgScore)
	})
	return out, nil
}

func averageScores(evaluations []*models.Evaluation) models.ScoreAverages {
	var sum models.ScoreAverages
	for _, e := range evaluations {
		sum.Communication += e.CommunicationScore
		sum.Confidence += e.ConfidenceScore
		sum.Technical += e.TechnicalAccuracyScore
		sum.ResumeAlignment += e.ResumeAlignmentScore
		sum.Personality += e.PersonalityFitScore
		sum.Overall += e.OverallScore
	}
	n := len(evaluations)
	return models.ScoreAverages{
		Communication:   roundAverage(sum.Communication, n),
		Confidence:      roundAverage(sum.Confidence, n),
		Technical:       roundAverage(sum.Technical, n),
		ResumeAlignment: roundAverage(sum.ResumeAlignment, n),
		Personality:     roundAverage(sum.Personality, n),
		Overall:         roundAverage(sum.Overall, n),
	}
}

// scoreTrend compares the newer half (ceil(n/2), newest first) with the rest.
// A single evaluation has nothing to compare against and is stable.
func scoreTrend(evaluations []*models.Evaluation) (models.Trend, int) {
	if len(evaluations) < 2 {
		return models.TrendStable, 0
	}
	split := (len(evaluations) + 1) / 2
	recent := meanOverall(evaluations[:split])
	older := meanOverall(evaluations[split:])

	value := int(math.Abs(math.Round(recent - older)))
	switch {
	case recent > older:
		return models.TrendUp, value
	case recent < older:
		return models.TrendDown, value
	default:
		return models.TrendStable, 0
	}
}

func meanOverall(evaluations []*models.Evaluation) float64 {
	total := 0
	for _, e := range evaluations {
		total += e.OverallScore
	}
	return float64(total) / float64(len(evaluations))
}

// topByFrequency ranks items by count. Ties keep first-seen order.
func topByFrequency(items []string, limit int) []string {
	counts := map[string]int{}
	var order []string
	for _, item := range items {
		if _, ok := counts[item]; !ok {
			order = append(order, item)
		}
		counts[item]++
	}
	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}

func roundAverage(total, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(n)))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
