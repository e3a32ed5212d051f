package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrInvalidKey  = errors.New("invalid key")
)

// Fixed document keys. Every piece of tracker state lives under exactly one of them.
const (
	KeyProfile      = "fitnessProfile"
	KeyWorkouts     = "fitnessWorkouts"
	KeyGoals        = "fitnessGoals"
	KeyTheme        = "fitnessTheme"
	KeyOnboarded    = "fitnessOnboarded"
	KeyAchievements = "fitnessAchievements"
)

var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// Store holds whole JSON documents under string keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// FreshGetter is implemented by stores that keep a read cache. GetFresh always
// reads the backing store.
type FreshGetter interface {
	GetFresh(ctx context.Context, key string) ([]byte, error)
}

// getFresh reads key past any read cache the store keeps.
func getFresh(ctx context.Context, store Store, key string) ([]byte, error) {
	if fresh, ok := store.(FreshGetter); ok {
		return fresh.GetFresh(ctx, key)
	}
	return store.Get(ctx, key)
}

func validateKey(key string) error {
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("%w: [%s]", ErrInvalidKey, key)
	}
	return nil
}
