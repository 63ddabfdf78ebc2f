package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/kevxviikw/noted/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID int64) (*model.Goal, error)
	ByName(name string) (*model.Goal, error)
	Goals() ([]*model.Goal, error)
	Rename(goalID int64, name string) error
	Delete(goalID int64) error
	Exists(goalID int64) (bool, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (name, created_at) VALUES ($1, $2)`

	result, err := r.db.Exec(query, goal.Name, goal.CreatedAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	goal.ID = id
	return nil
}

func (r *goalRepository) ByID(goalID int64) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) ByName(name string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE name = $1`

	err := r.db.Get(goal, query, name)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals() ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals ORDER BY created_at ASC`

	err := r.db.Select(&goals, query)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Rename(goalID int64, name string) error {
	query := `UPDATE goals SET name = $1 WHERE id = $2`

	result, err := r.db.Exec(query, name, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(goalID int64) error {
	query := `DELETE FROM goals WHERE id = $1`

	result, err := r.db.Exec(query, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Exists(goalID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM goals WHERE id = $1)`

	err := r.db.Get(&exists, query, goalID)
	return exists, err
}
