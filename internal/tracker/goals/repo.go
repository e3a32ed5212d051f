package goals

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
)

type Repo struct {
	store storage.Store
	mutex sync.Mutex
}

func NewRepo(store storage.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func (r *Repo) load(ctx context.Context) []Goal {
	return storage.LoadJSON(ctx, r.store, storage.KeyGoals, []Goal{})
}

func (r *Repo) loadForUpdate(ctx context.Context) ([]Goal, error) {
	list, err := storage.LoadJSONForUpdate(ctx, r.store, storage.KeyGoals, []Goal{})
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	return list, nil
}

func (r *Repo) save(ctx context.Context, list []Goal) error {
	if list == nil {
		list = []Goal{}
	}
	return storage.SaveJSON(ctx, r.store, storage.KeyGoals, list)
}

func (r *Repo) All(ctx context.Context) []Goal {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.load(ctx)
}

func (r *Repo) Add(ctx context.Context, g Goal, createdAt time.Time) (Goal, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list, err := r.loadForUpdate(ctx)
	if err != nil {
		return Goal{}, err
	}
	taken := make(map[string]bool, len(list))
	for _, existing := range list {
		taken[existing.ID] = true
	}
	id := createdAt.UnixMilli()
	for taken[strconv.FormatInt(id, 10)] {
		id++
	}
	g.ID = strconv.FormatInt(id, 10)

	list = append(list, g)
	if err := r.save(ctx, list); err != nil {
		return Goal{}, fmt.Errorf("save goals: %w", err)
	}
	return g, nil
}

// Modify applies change to the goal with the given id and persists the list.
func (r *Repo) Modify(ctx context.Context, id string, change func(g *Goal)) (Goal, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list, err := r.loadForUpdate(ctx)
	if err != nil {
		return Goal{}, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		change(&list[i])
		if err := r.save(ctx, list); err != nil {
			return Goal{}, fmt.Errorf("save goals: %w", err)
		}
		return list[i], nil
	}
	return Goal{}, ErrGoalNotFound
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
				return fmt.Errorf("save goals: %w", err)
			}
			return nil
		}
	}
	return ErrGoalNotFound
}

func (r *Repo) ReplaceAll(ctx context.Context, list []Goal) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if err := r.save(ctx, list); err != nil {
		return fmt.Errorf("replace goals: %w", err)
	}
	return nil
}
