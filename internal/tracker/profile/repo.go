package profile

import (
	"context"

	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
)

type Repo struct {
	store storage.Store
}

func NewRepo(store storage.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func (r *Repo) Get(ctx context.Context) Profile {
	return storage.LoadJSON(ctx, r.store, storage.KeyProfile, Profile{})
}

// Stored returns the saved profile, nil when none was ever saved.
func (r *Repo) Stored(ctx context.Context) *Profile {
	return storage.LoadJSON[*Profile](ctx, r.store, storage.KeyProfile, nil)
}

// GetForUpdate is Get for callers that write the profile back; read failures are returned.
func (r *Repo) GetForUpdate(ctx context.Context) (Profile, error) {
	return storage.LoadJSONForUpdate(ctx, r.store, storage.KeyProfile, Profile{})
}

func (r *Repo) Save(ctx context.Context, p Profile) error {
	return storage.SaveJSON(ctx, r.store, storage.KeyProfile, p)
}

func (r *Repo) Onboarded(ctx context.Context) bool {
	return storage.LoadJSON(ctx, r.store, storage.KeyOnboarded, false)
}

func (r *Repo) SetOnboarded(ctx context.Context) error {
	return storage.SaveJSON(ctx, r.store, storage.KeyOnboarded, true)
}
