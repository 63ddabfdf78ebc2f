package service

import (
	"fmt"

	"github.com/kevxviikw/noted/internal/model"
	"github.com/kevxviikw/noted/internal/repository"
	"github.com/kevxviikw/noted/internal/stats"
)

type StatsService struct {
	goalRepo repository.GoalRepository
	markRepo repository.MarkRepository
}

func NewStatsService(goalRepo repository.GoalRepository, markRepo repository.MarkRepository) *StatsService {
	return &StatsService{
		goalRepo: goalRepo,
		markRepo: markRepo,
	}
}

// Stats loads the goal's full mark set once and runs the statistics engine
// over it. The month is optional; without it the completion rate is 0.
func (s *StatsService) Stats(goalID int64, today model.Day, month *stats.Month) (stats.Result, error) {
	exists, err := s.goalRepo.Exists(goalID)
	if err != nil {
		return stats.Result{}, err
	}
	if !exists {
		return stats.Result{}, repository.ErrGoalNotFound
	}

	// Unfiltered read: the longest streak spans all history, not just the
	// month or anything bounded by today.
	marks, err := s.markRepo.Marks(goalID, nil, nil)
	if err != nil {
		return stats.Result{}, fmt.Errorf("failed to load marks: %w", err)
	}

	return stats.Compute(marks, today, month), nil
}
