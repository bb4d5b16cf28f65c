package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mycoscan/mycoscan-admin/pkg/models"
	"github.com/mycoscan/mycoscan-admin/pkg/testhelpers"
)

// Historic app data stores timestamps both as RFC3339 strings and as epoch
// milliseconds; the stats queries must see through both.
func TestStatsRepository_MixedTimestampEncodings(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	docRepo := NewDocumentRepository(testDB.DB)
	statsRepo := NewStatsRepository(testDB.DB)
	ctx := context.Background()

	collection := "test-stats-" + uuid.NewString()
	inWindow := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	seed := []models.Fields{
		{"lastLogin": inWindow.Format(time.RFC3339)},    // string, in window
		{"lastLogin": float64(inWindow.UnixMilli())},    // millis, in window
		{"lastLogin": outOfWindow.Format(time.RFC3339)}, // string, outside
		{"someOtherField": "no timestamp at all"},       // excluded
		{"lastLogin": "yesterday-ish"},                  // malformed, excluded
	}
	for _, fields := range seed {
		if _, err := docRepo.Create(ctx, collection, fields); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	total, err := statsRepo.Count(ctx, collection)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if total != 5 {
		t.Errorf("expected 5 documents, got %d", total)
	}

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	count, err := statsRepo.CountBetween(ctx, collection, "lastLogin", from, to)
	if err != nil {
		t.Fatalf("count between failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 documents in window, got %d", count)
	}

	stamps, err := statsRepo.TimestampsBetween(ctx, collection, "lastLogin", from, to)
	if err != nil {
		t.Fatalf("timestamps between failed: %v", err)
	}
	if len(stamps) != 2 {
		t.Fatalf("expected 2 timestamps, got %d", len(stamps))
	}
	for _, ts := range stamps {
		if !ts.Equal(inWindow) {
			t.Errorf("decoded timestamp drifted: got %v, want %v", ts, inWindow)
		}
	}
}

func TestStatsRepository_WindowBoundaries(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	docRepo := NewDocumentRepository(testDB.DB)
	statsRepo := NewStatsRepository(testDB.DB)
	ctx := context.Background()

	collection := "test-bounds-" + uuid.NewString()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	seed := []time.Time{
		from,                  // inclusive lower bound
		to.Add(-time.Second),  // just inside
		from.Add(-time.Second), // just before
		to,                    // exclusive upper bound
	}
	for _, ts := range seed {
		if _, err := docRepo.Create(ctx, collection, models.Fields{"lastLogin": ts.Format(time.RFC3339)}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	count, err := statsRepo.CountBetween(ctx, collection, "lastLogin", from, to)
	if err != nil {
		t.Fatalf("count between failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected [from, to) to contain 2 documents, got %d", count)
	}
}
