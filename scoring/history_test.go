package scoring

import (
	"testing"
	"time"

	"text-recitation/domain"
)

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	if got.CurrentScore != nil {
		t.Errorf("CurrentScore = %v, want nil", *got.CurrentScore)
	}
	if got.BestScore != nil {
		t.Errorf("BestScore = %v, want nil", *got.BestScore)
	}
	if got.History == nil || len(got.History) != 0 {
		t.Errorf("History = %v, want empty non-nil slice", got.History)
	}
}

func TestAggregate(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	// Scores 70, 95, 80 in chronological order, listed most recent first.
	practices := []domain.Practice{
		{Score: 80, CreatedAt: base.Add(2 * time.Hour)},
		{Score: 95, CreatedAt: base.Add(time.Hour)},
		{Score: 70, CreatedAt: base},
	}

	got := Aggregate(practices)
	if got.CurrentScore == nil || *got.CurrentScore != 80 {
		t.Errorf("CurrentScore = %v, want 80", got.CurrentScore)
	}
	if got.BestScore == nil || *got.BestScore != 95 {
		t.Errorf("BestScore = %v, want 95", got.BestScore)
	}
	if len(got.History) != 3 {
		t.Fatalf("History length = %d, want 3", len(got.History))
	}
	for i, want := range []int{80, 95, 70} {
		if got.History[i].Score != want {
			t.Errorf("History[%d].Score = %d, want %d", i, got.History[i].Score, want)
		}
	}
	if got.History[2].Date != "2026-03-14 09:26:53" {
		t.Errorf("History[2].Date = %q, want %q", got.History[2].Date, "2026-03-14 09:26:53")
	}
}

func TestAggregateSingleAttempt(t *testing.T) {
	got := Aggregate([]domain.Practice{{Score: 0, CreatedAt: time.Now()}})
	if got.CurrentScore == nil || *got.CurrentScore != 0 {
		t.Errorf("CurrentScore = %v, want 0", got.CurrentScore)
	}
	if got.BestScore == nil || *got.BestScore != 0 {
		t.Errorf("BestScore = %v, want 0", got.BestScore)
	}
	if len(got.History) != 1 {
		t.Errorf("History length = %d, want 1", len(got.History))
	}
}
