package model

// Mark is one goal's boolean completion flag for one calendar day.
// At most one mark exists per (goal, day); writes are upserts.
type Mark struct {
	GoalID int64 `db:"goal_id" json:"goal_id"`
	Day    Day   `db:"day" json:"day"`
	Done   bool  `db:"done" json:"done"`
}

// MarkSet is the full collection of marks for one goal, keyed by day.
// A day absent from the set is treated the same as one marked false.
type MarkSet map[Day]bool
