package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/models"
	"github.com/mycoscan/mycoscan-admin/pkg/repositories"
)

// DashboardService computes the console's usage statistics.
//
// Day boundaries are local-time calendar days: a user is "active today" when
// their last login falls in [local midnight, next local midnight), inclusive
// start, exclusive end. The monthly series buckets the current local calendar
// month the same way, zero-filling days with no activity.
type DashboardService interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
	MonthlySeries(ctx context.Context) ([]*models.SeriesPoint, error)
}

type dashboardService struct {
	statsRepo repositories.StatsRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(statsRepo repositories.StatsRepository, logger *zap.Logger) DashboardService {
	return &dashboardService{
		statsRepo: statsRepo,
		logger:    logger,
		now:       time.Now,
	}
}

var _ DashboardService = (*dashboardService)(nil)

func (s *dashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	posts, err := s.statsRepo.Count(ctx, models.CollectionPosts)
	if err != nil {
		return nil, err
	}

	users, err := s.statsRepo.Count(ctx, models.CollectionUsers)
	if err != nil {
		return nil, err
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	active, err := s.statsRepo.CountBetween(ctx,
		models.CollectionUsers, models.FieldLastLogin,
		midnight, midnight.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		Posts:       posts,
		Users:       users,
		ActiveUsers: active,
	}, nil
}

func (s *dashboardService) MonthlySeries(ctx context.Context) ([]*models.SeriesPoint, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	daysInMonth := nextMonth.AddDate(0, 0, -1).Day()

	postStamps, err := s.statsRepo.TimestampsBetween(ctx,
		models.CollectionPosts, "timestamp", monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	userStamps, err := s.statsRepo.TimestampsBetween(ctx,
		models.CollectionUsers, models.FieldCreatedAt, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	postsByDay := bucketByDay(postStamps, now.Location())
	usersByDay := bucketByDay(userStamps, now.Location())

	series := make([]*models.SeriesPoint, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		series = append(series, &models.SeriesPoint{
			Date:  fmt.Sprintf("%04d-%02d-%02d", now.Year(), int(now.Month()), day),
			Posts: postsByDay[day],
			Users: usersByDay[day],
		})
	}
	return series, nil
}

func bucketByDay(stamps []time.Time, loc *time.Location) map[int]int {
	counts := make(map[int]int)
	for _, ts := range stamps {
		counts[ts.In(loc).Day()]++
	}
	return counts
}
