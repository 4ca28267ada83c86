package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FindInTx looks up a key by its (path, key) pair. Absence is an expected
// outcome, reported through the bool rather than an error.
func FindInTx(ctx context.Context, tx *gorm.DB, requestPath, idempotencyKey string) (Key, bool, error) {
	var k Key
	err := tx.WithContext(ctx).
		First(&k, "request_path = ? AND idempotency_key = ?", requestPath, idempotencyKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Key{}, false, nil
	}
	if err != nil {
		return Key{}, false, err
	}
	return k, true, nil
}

// CreateInTx inserts a new key inside the caller's transaction so that a
// failed operation rolls the key back with it. A duplicate-key error here
// means a concurrent attempt won the race.
func CreateInTx(ctx context.Context, tx *gorm.DB, requestPath, idempotencyKey string) (Key, error) {
	k := Key{
		ID:             uuid.NewString(),
		RequestPath:    requestPath,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now(),
	}
	err := tx.WithContext(ctx).Create(&k).Error
	return k, err
}

// RecordResponseInTx stores the completion outcome on the key so replays
// can short-circuit with the original response.
func RecordResponseInTx(ctx context.Context, tx *gorm.DB, keyID string, code int, body map[string]any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return tx.WithContext(ctx).Model(&Key{}).
		Where("id = ?", keyID).
		Updates(map[string]any{
			"response_code": code,
			"response_body": datatypes.JSON(raw),
		}).Error
}
