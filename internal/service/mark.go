package service

import (
	"github.com/kevxviikw/noted/internal/model"
	"github.com/kevxviikw/noted/internal/repository"
)

type MarkService struct {
	goalRepo repository.GoalRepository
	markRepo repository.MarkRepository
}

func NewMarkService(goalRepo repository.GoalRepository, markRepo repository.MarkRepository) *MarkService {
	return &MarkService{
		goalRepo: goalRepo,
		markRepo: markRepo,
	}
}

// Marks returns the goal's marks, optionally limited to [from, to]. A single
// bound without its pair is ignored.
func (s *MarkService) Marks(goalID int64, from, to *model.Day) (model.MarkSet, error) {
	err := s.requireGoal(goalID)
	if err != nil {
		return nil, err
	}

	if from == nil || to == nil {
		from, to = nil, nil
	}

	return s.markRepo.Marks(goalID, from, to)
}

// SetMark records one day's flag for the goal, overwriting any earlier mark.
func (s *MarkService) SetMark(goalID int64, day model.Day, done bool) error {
	err := s.requireGoal(goalID)
	if err != nil {
		return err
	}

	return s.markRepo.SetMark(goalID, day, done)
}

func (s *MarkService) requireGoal(goalID int64) error {
	exists, err := s.goalRepo.Exists(goalID)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrGoalNotFound
	}
	return nil
}
