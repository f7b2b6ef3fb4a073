package scoring

import "text-recitation/domain"

const dateFormat = "2006-01-02 15:04:05"

type Entry struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// Summary is the aggregated score view for one (user, passage) pair.
// Pointers distinguish "no attempts yet" (null) from a legitimate zero score.
type Summary struct {
	CurrentScore *int    `json:"current_score"`
	BestScore    *int    `json:"best_score"`
	History      []Entry `json:"history"`
}

// Aggregate folds attempts, ordered most recent first, into a Summary:
// current is the newest score, best the maximum, and history keeps the input
// order. Pure function of its input.
func Aggregate(practices []domain.Practice) Summary {
	summary := Summary{History: []Entry{}}
	if len(practices) == 0 {
		return summary
	}

	current := practices[0].Score
	best := current
	for _, p := range practices {
		if p.Score > best {
			best = p.Score
		}
		summary.History = append(summary.History, Entry{
			Score: p.Score,
			Date:  p.CreatedAt.Format(dateFormat),
		})
	}
	summary.CurrentScore = &current
	summary.BestScore = &best
	return summary
}
