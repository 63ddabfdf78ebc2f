package service

import (
	"github.com/kevxviikw/noted/internal/model"
	"github.com/kevxviikw/noted/internal/repository"
)

// mockGoalRepository implements repository.GoalRepository for testing.
type mockGoalRepository struct {
	goals     map[int64]*model.Goal
	nextID    int64
	createErr error
	listErr   error
}

func newMockGoalRepository() *mockGoalRepository {
	return &mockGoalRepository{
		goals:  make(map[int64]*model.Goal),
		nextID: 1,
	}
}

func (m *mockGoalRepository) Create(goal *model.Goal) error {
	if m.createErr != nil {
		return m.createErr
	}
	goal.ID = m.nextID
	m.nextID++
	copied := *goal
	m.goals[goal.ID] = &copied
	return nil
}

func (m *mockGoalRepository) ByID(goalID int64) (*model.Goal, error) {
	if goal, ok := m.goals[goalID]; ok {
		copied := *goal
		return &copied, nil
	}
	return nil, repository.ErrGoalNotFound
}

func (m *mockGoalRepository) ByName(name string) (*model.Goal, error) {
	for _, goal := range m.goals {
		if goal.Name == name {
			copied := *goal
			return &copied, nil
		}
	}
	return nil, repository.ErrGoalNotFound
}

func (m *mockGoalRepository) Goals() ([]*model.Goal, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var goals []*model.Goal
	for id := int64(1); id < m.nextID; id++ {
		if goal, ok := m.goals[id]; ok {
			copied := *goal
			goals = append(goals, &copied)
		}
	}
	return goals, nil
}

func (m *mockGoalRepository) Rename(goalID int64, name string) error {
	goal, ok := m.goals[goalID]
	if !ok {
		return repository.ErrGoalNotFound
	}
	goal.Name = name
	return nil
}

func (m *mockGoalRepository) Delete(goalID int64) error {
	if _, ok := m.goals[goalID]; !ok {
		return repository.ErrGoalNotFound
	}
	delete(m.goals, goalID)
	return nil
}

func (m *mockGoalRepository) Exists(goalID int64) (bool, error) {
	_, ok := m.goals[goalID]
	return ok, nil
}

// mockMarkRepository implements repository.MarkRepository for testing.
type mockMarkRepository struct {
	marks    map[int64]model.MarkSet
	setErr   error
	lastFrom *model.Day
	lastTo   *model.Day
}

func newMockMarkRepository() *mockMarkRepository {
	return &mockMarkRepository{
		marks: make(map[int64]model.MarkSet),
	}
}

func (m *mockMarkRepository) Marks(goalID int64, from, to *model.Day) (model.MarkSet, error) {
	m.lastFrom, m.lastTo = from, to

	all := m.marks[goalID]
	out := make(model.MarkSet, len(all))
	for day, done := range all {
		if from != nil && to != nil && (day.Before(*from) || day.After(*to)) {
			continue
		}
		out[day] = done
	}
	return out, nil
}

func (m *mockMarkRepository) SetMark(goalID int64, day model.Day, done bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.marks[goalID] == nil {
		m.marks[goalID] = model.MarkSet{}
	}
	m.marks[goalID][day] = done
	return nil
}
