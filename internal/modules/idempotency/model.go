package idempotency

import (
	"time"

	"gorm.io/datatypes"
)

// Key marks one logical execution of an operation triggered by an external
// event. The unique (request_path, idempotency_key) pair is the only guard
// against a duplicate execution; a second insert for the same pair fails at
// the database and rolls the duplicate attempt back.
type Key struct {
	ID             string         `gorm:"type:char(36);primaryKey"`
	RequestPath    string         `gorm:"type:varchar(255);not null;uniqueIndex:ux_idempotency_keys_path_key,priority:1"`
	IdempotencyKey string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_idempotency_keys_path_key,priority:2"`
	ResponseCode   int            `gorm:"not null;default:0"`
	ResponseBody   datatypes.JSON `gorm:"type:json"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Key) TableName() string { return "idempotency_keys" }
