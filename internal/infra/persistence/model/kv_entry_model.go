package model

import "time"

// KVEntryModel is the GORM-specific struct for the 'kv_entries' table.
type KVEntryModel struct {
	Key       string    `gorm:"type:varchar(255);primary_key"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (KVEntryModel) TableName() string {
	return "kv_entries"
}
