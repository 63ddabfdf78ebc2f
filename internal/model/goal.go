package model

import (
	"time"
)

const (
	GoalNameMinLen = 1
	GoalNameMaxLen = 120
)

type Goal struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
