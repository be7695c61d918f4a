package entity

import "time"

// Todo is a single task owned by exactly one user. OwnerID is set at
// creation and never changes. CompletedAt holds epoch milliseconds and is
// non-nil if and only if Completed is true.
type Todo struct {
	ID          string
	OwnerID     string
	Text        string
	Completed   bool
	CompletedAt *int64
	CreatedAt   time.Time
}
