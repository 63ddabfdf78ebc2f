package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/kevxviikw/noted/internal/model"
)

type MarkRepository interface {
	// Marks returns a goal's marks keyed by day, optionally limited to the
	// inclusive [from, to] range when both bounds are given.
	Marks(goalID int64, from, to *model.Day) (model.MarkSet, error)
	// SetMark upserts one day's flag; the last write wins.
	SetMark(goalID int64, day model.Day, done bool) error
}

type markRepository struct {
	db *sqlx.DB
}

func NewMarkRepository(db *sqlx.DB) MarkRepository {
	return &markRepository{db: db}
}

func (r *markRepository) Marks(goalID int64, from, to *model.Day) (model.MarkSet, error) {
	var rows []model.Mark

	query := `SELECT goal_id, day, done FROM marks WHERE goal_id = $1`
	args := []any{goalID}
	if from != nil && to != nil {
		query += ` AND day BETWEEN $2 AND $3`
		args = append(args, *from, *to)
	}

	err := r.db.Select(&rows, query, args...)
	if err != nil {
		return nil, err
	}

	marks := make(model.MarkSet, len(rows))
	for _, row := range rows {
		marks[row.Day] = row.Done
	}

	return marks, nil
}

func (r *markRepository) SetMark(goalID int64, day model.Day, done bool) error {
	query := `INSERT INTO marks (goal_id, day, done) VALUES ($1, $2, $3)
	          ON CONFLICT (goal_id, day) DO UPDATE SET done = excluded.done`

	_, err := r.db.Exec(query, goalID, day, done)
	return err
}
