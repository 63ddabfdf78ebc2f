// Package stats derives streak and completion statistics from a goal's
// marks. Everything here is pure: no I/O, no clocks, no shared state.
package stats

import (
	"sort"
	"time"

	"github.com/kevxviikw/noted/internal/model"
)

// Month identifies a calendar month for the completion-rate calculation.
type Month struct {
	Year  int
	Month time.Month
}

// Result holds the derived statistics for one goal.
type Result struct {
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	CompletionRate float64 `json:"completion_rate"`
}

// Compute runs all three calculations over one goal's marks. The completion
// rate is only computed when month is non-nil; otherwise it is 0.
func Compute(marks model.MarkSet, today model.Day, month *Month) Result {
	res := Result{
		CurrentStreak: CurrentStreak(marks, today),
		LongestStreak: LongestStreak(marks),
	}
	if month != nil {
		res.CompletionRate = MonthCompletionRate(marks, month.Year, month.Month)
	}
	return res
}

// CurrentStreak counts consecutive true-marked days walking backward from
// today inclusive. The walk is calendar arithmetic, so a day that was never
// marked breaks the streak exactly like a day marked false.
func CurrentStreak(marks model.MarkSet, today model.Day) int {
	streak := 0
	for d := today; marks[d]; d = d.AddDays(-1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive true-marked calendar
// days anywhere in the goal's history, unbounded by any reference date.
func LongestStreak(marks model.MarkSet) int {
	days := make([]model.Day, 0, len(marks))
	for day, done := range marks {
		if done {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	var prev model.Day
	for i, day := range days {
		if i > 0 && day == prev.AddDays(1) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}
	return longest
}

// MonthCompletionRate returns the percentage of days in the given month
// marked true, in [0, 100]. Month validity is the caller's concern.
func MonthCompletionRate(marks model.MarkSet, year int, month time.Month) float64 {
	last := model.DaysIn(year, month)
	if last == 0 {
		return 0
	}
	done := 0
	for d := 1; d <= last; d++ {
		if marks[model.NewDay(year, month, d)] {
			done++
		}
	}
	return float64(done) / float64(last) * 100
}
