package storage

import "time"

// Keys of the rows that make up a persisted session
const (
	keyCredential = "credential"
	keyPrincipal  = "principal"
)

// KVModel is the GORM model for the kv table
type KVModel struct {
	Name      string `gorm:"primaryKey"`
	UpdatedAt time.Time
	Value     string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (KVModel) TableName() string { return "kv" }
