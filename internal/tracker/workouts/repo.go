package workouts

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
)

// Repo keeps the workout list as one stored document. Every mutation rewrites the whole list.
type Repo struct {
	store storage.Store
	mutex sync.Mutex
}

func NewRepo(store storage.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func (r *Repo) load(ctx context.Context) []Workout {
	return storage.LoadJSON(ctx, r.store, storage.KeyWorkouts, []Workout{})
}

func (r *Repo) loadForUpdate(ctx context.Context) ([]Workout, error) {
	list, err := storage.LoadJSONForUpdate(ctx, r.store, storage.KeyWorkouts, []Workout{})
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}
	return list, nil
}

func (r *Repo) save(ctx context.Context, list []Workout) error {
	if list == nil {
		list = []Workout{}
	}
	return storage.SaveJSON(ctx, r.store, storage.KeyWorkouts, list)
}

func (r *Repo) All(ctx context.Context) []Workout {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.load(ctx)
}

func (r *Repo) Get(ctx context.Context, id string) (Workout, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	list, err := r.loadForUpdate(ctx)
	if err != nil {
		return Workout{}, err
	}
	for _, w := range list {
		if w.ID == id {
			return w, nil
		}
	}
	return Workout{}, ErrWorkoutNotFound
}

// Add assigns an id from createdAt in unix milliseconds, bumped until unique, and appends.
func (r *Repo) Add(ctx context.Context, w Workout, createdAt time.Time) (Workout, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list, err := r.loadForUpdate(ctx)
	if err != nil {
		return Workout{}, err
	}
	taken := make(map[string]bool, len(list))
	for _, existing := range list {
		taken[existing.ID] = true
	}
	id := createdAt.UnixMilli()
	for taken[strconv.FormatInt(id, 10)] {
		id++
	}
	w.ID = strconv.FormatInt(id, 10)

	list = append(list, w)
	if err := r.save(ctx, list); err != nil {
		return Workout{}, fmt.Errorf("save workouts: %w", err)
	}
	return w, nil
}

func (r *Repo) Update(ctx context.Context, w Workout) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list, err := r.loadForUpdate(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == w.ID {
			list[i] = w
			if err := r.save(ctx, list); err != nil {
				return fmt.Errorf("save workouts: %w", err)
			}
			return nil
		}
	}
	return ErrWorkoutNotFound
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list, err := r.loadForUpdate(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			if err := r.save(ctx, list); err != nil {
				return fmt.Errorf("save workouts: %w", err)
			}
			return nil
		}
	}
	return ErrWorkoutNotFound
}

// ReplaceAll swaps the stored list for list, as a backup import does.
func (r *Repo) ReplaceAll(ctx context.Context, list []Workout) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if err := r.save(ctx, list); err != nil {
		return fmt.Errorf("replace workouts: %w", err)
	}
	return nil
}
