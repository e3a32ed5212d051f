package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// LoadJSON reads the document under key into a value of type T.
// A missing key yields fallback. A read or parse failure also yields fallback,
// with a logged warning: stored state is never fatal to the caller.
func LoadJSON[T any](ctx context.Context, store Store, key string, fallback T) T {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Warnf("load [%s] failed, using default: %s", key, err)
		}
		return fallback
	}
	if len(raw) == 0 {
		return fallback
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warnf("parse [%s] failed, using default: %s", key, err)
		return fallback
	}
	return value
}

// LoadJSONForUpdate reads the document under key for a read-modify-write cycle.
// Only a missing key (or an empty or unparsable document) yields fallback. Any
// other read failure is returned, so the caller never writes back a value built
// from a fallback over data it could not see. Read caches are bypassed.
func LoadJSONForUpdate[T any](ctx context.Context, store Store, key string, fallback T) (T, error) {
	raw, err := getFresh(ctx, store, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("load [%s]: %w", key, err)
	}
	if len(raw) == 0 {
		return fallback, nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warnf("parse [%s] failed, overwriting with default: %s", key, err)
		return fallback, nil
	}
	return value, nil
}

// SaveJSON writes value as the whole document under key.
func SaveJSON(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal [%s]: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		log.Errorf("save [%s] failed: %s", key, err)
		return fmt.Errorf("save [%s]: %w", key, err)
	}
	return nil
}
