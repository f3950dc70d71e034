package model

import "time"

// Task status values offered by the UI. Status itself is free form and is
// not validated against this list.
const (
	TaskStatusToDo       = "To Do"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// Task is a unit of work belonging to exactly one board.
type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;not null"`
	Status    string    `json:"status" gorm:"size:50;not null;default:'To Do'"`
	BoardID   uint      `json:"board_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Board Board `json:"-" gorm:"foreignKey:BoardID"`
}
