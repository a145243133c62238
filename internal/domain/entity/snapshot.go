package entity

import "time"

// Snapshot is one versioned key holding a whole serialized collection
type Snapshot struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for the Snapshot model
func (Snapshot) TableName() string {
	return "snapshots"
}
