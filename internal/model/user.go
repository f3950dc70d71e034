package model

import "time"

// User represents an authenticated user of the task board.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	// Binary collation keeps email lookups and the unique index byte-wise;
	// the MySQL default CI collation would merge A@x.com and a@x.com.
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255) COLLATE utf8mb4_bin;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Boards []Board `json:"boards,omitempty" gorm:"foreignKey:UserID"`
}
