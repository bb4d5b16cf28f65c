package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSummary_ActiveTodayUsesLocalMidnightBoundaries(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2025, 8, 15, 10, 30, 0, 0, loc)
	midnight := time.Date(2025, 8, 15, 0, 0, 0, 0, loc)

	statsRepo := &mockStatsRepo{
		counts: map[string]int{
			models.CollectionPosts: 120,
			models.CollectionUsers: 40,
		},
		stamps: map[string][]time.Time{
			models.CollectionUsers + "/" + models.FieldLastLogin: {
				midnight,                         // inclusive lower bound
				midnight.Add(23*time.Hour + 59*time.Minute), // just inside
				midnight.Add(-time.Second),                  // yesterday
				midnight.AddDate(0, 0, 1),                   // exclusive upper bound
			},
		},
	}

	service := &dashboardService{
		statsRepo: statsRepo,
		logger:    zap.NewNop(),
		now:       fixedClock(now),
	}

	summary, err := service.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.Posts != 120 || summary.Users != 40 {
		t.Errorf("wrong totals: %+v", summary)
	}
	if summary.ActiveUsers != 2 {
		t.Errorf("expected 2 active users, got %d", summary.ActiveUsers)
	}
	if !statsRepo.countBetweenFrom.Equal(midnight) {
		t.Errorf("wrong window start: %v", statsRepo.countBetweenFrom)
	}
	if !statsRepo.countBetweenTo.Equal(midnight.AddDate(0, 0, 1)) {
		t.Errorf("wrong window end: %v", statsRepo.countBetweenTo)
	}
}

func TestMonthlySeries_OnePointPerDayZeroFilled(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

	// One post on every day of August.
	var postStamps []time.Time
	for day := 1; day <= 31; day++ {
		postStamps = append(postStamps, time.Date(2025, 8, day, 9, 0, 0, 0, time.UTC))
	}

	statsRepo := &mockStatsRepo{
		counts: map[string]int{},
		stamps: map[string][]time.Time{
			models.CollectionPosts + "/timestamp": postStamps,
			models.CollectionUsers + "/" + models.FieldCreatedAt: {
				time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),   // first instant of the month
				time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC), // last instant
				time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC), // previous month
			},
		},
	}

	service := &dashboardService{
		statsRepo: statsRepo,
		logger:    zap.NewNop(),
		now:       fixedClock(now),
	}

	series, err := service.MonthlySeries(context.Background())
	if err != nil {
		t.Fatalf("series failed: %v", err)
	}

	if len(series) != 31 {
		t.Fatalf("expected 31 points for August, got %d", len(series))
	}
	if series[0].Date != "2025-08-01" || series[30].Date != "2025-08-31" {
		t.Errorf("wrong date range: %s .. %s", series[0].Date, series[30].Date)
	}
	for i, point := range series {
		if point.Posts != 1 {
			t.Errorf("day %d: expected 1 post, got %d", i+1, point.Posts)
		}
	}
	if series[0].Users != 1 || series[30].Users != 1 {
		t.Errorf("boundary signups miscounted: first=%d last=%d", series[0].Users, series[30].Users)
	}
	for i := 1; i < 30; i++ {
		if series[i].Users != 0 {
			t.Errorf("day %d: expected 0 signups, got %d", i+1, series[i].Users)
		}
	}
}

func TestMonthlySeries_FebruaryHas28Days(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	service := &dashboardService{
		statsRepo: &mockStatsRepo{counts: map[string]int{}, stamps: map[string][]time.Time{}},
		logger:    zap.NewNop(),
		now:       fixedClock(now),
	}

	series, err := service.MonthlySeries(context.Background())
	if err != nil {
		t.Fatalf("series failed: %v", err)
	}
	if len(series) != 28 {
		t.Fatalf("expected 28 points for February 2025, got %d", len(series))
	}
	for _, point := range series {
		if point.Posts != 0 || point.Users != 0 {
			t.Errorf("expected zero-filled point, got %+v", point)
		}
	}
}
