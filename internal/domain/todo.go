package domain

import "time"

// Todo is an owner-scoped task. Only requests authenticated as UserID may
// see or change it.
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Completed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoPatch is a partial update. Nil fields are left unchanged.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Empty reports whether the patch changes nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}
