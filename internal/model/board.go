package model

import "time"

// Board is a named collection of tasks owned by exactly one user.
type Board struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:BoardID"`
}
