package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kevxviikw/noted/internal/model"
	"github.com/kevxviikw/noted/internal/repository"
)

var (
	ErrInvalidGoalName = errors.New("goal name must be 1-120 characters")
	ErrGoalNameTaken   = errors.New("goal name already exists")
)

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

func (s *GoalService) Create(name string) (*model.Goal, error) {
	name, err := s.validateName(name)
	if err != nil {
		return nil, err
	}

	err = s.checkNameFree(name, 0)
	if err != nil {
		return nil, err
	}

	goal := &model.Goal{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(goalID int64) (*model.Goal, error) {
	return s.repo.ByID(goalID)
}

func (s *GoalService) Goals() ([]*model.Goal, error) {
	goals, err := s.repo.Goals()
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []*model.Goal{}
	}
	return goals, nil
}

func (s *GoalService) Rename(goalID int64, name string) (*model.Goal, error) {
	name, err := s.validateName(name)
	if err != nil {
		return nil, err
	}

	err = s.checkNameFree(name, goalID)
	if err != nil {
		return nil, err
	}

	err = s.repo.Rename(goalID, name)
	if err != nil {
		return nil, err
	}

	return s.repo.ByID(goalID)
}

// Delete removes a goal; its marks go with it via the store's cascade.
func (s *GoalService) Delete(goalID int64) error {
	return s.repo.Delete(goalID)
}

func (s *GoalService) validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < model.GoalNameMinLen || len(name) > model.GoalNameMaxLen {
		return "", ErrInvalidGoalName
	}
	return name, nil
}

// checkNameFree enforces name uniqueness up front. The unique index remains
// the backstop for concurrent writers.
func (s *GoalService) checkNameFree(name string, selfID int64) error {
	existing, err := s.repo.ByName(name)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrGoalNameTaken
	}
	return nil
}
