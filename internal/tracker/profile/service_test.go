package profile

import (
	"context"
	"testing"

	"github.com/purav-khanna/Fitness-Tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewService(NewRepo(store)), store
}

func TestService_GetDefault(t *testing.T) {
	svc, _ := newTestService()
	view := svc.Get(context.Background())
	assert.Equal(t, Profile{}, view.Profile)
	assert.Equal(t, "Welcome, Athlete!", view.Greeting)
}

func TestService_SaveOverwritesWholeProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Save(ctx, Profile{Name: "  Sam ", Age: "30", Weight: "80"})
	require.NoError(t, err)

	view, err := svc.Save(ctx, Profile{Name: "Sam", Height: "180"})
	require.NoError(t, err)
	assert.Equal(t, "Sam", view.Name)
	assert.Empty(t, view.Age)
	assert.Empty(t, view.Weight)

	assert.Equal(t, Profile{Name: "Sam", Height: "180"}, svc.Get(ctx).Profile)
}

func TestService_OnboardingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh store requires onboarding", func(t *testing.T) {
		svc, _ := newTestService()
		status, err := svc.OnboardingStatus(ctx)
		require.NoError(t, err)
		assert.True(t, status.Required)
	})

	t.Run("named profile marks onboarding done", func(t *testing.T) {
		svc, store := newTestService()
		require.NoError(t, storage.SaveJSON(ctx, store, storage.KeyProfile, Profile{Name: "Kim"}))

		status, err := svc.OnboardingStatus(ctx)
		require.NoError(t, err)
		assert.False(t, status.Required)
		assert.True(t, storage.LoadJSON(ctx, store, storage.KeyOnboarded, false))
	})

	t.Run("skip sets the flag only", func(t *testing.T) {
		svc, store := newTestService()
		require.NoError(t, svc.SkipOnboarding(ctx))

		status, err := svc.OnboardingStatus(ctx)
		require.NoError(t, err)
		assert.False(t, status.Required)
		_, err = store.Get(ctx, storage.KeyProfile)
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})
}

func TestService_CompleteOnboarding(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Save(ctx, Profile{Name: "Existing", Weight: "70", Focus: "Cardio"})
	require.NoError(t, err)

	view, err := svc.CompleteOnboarding(ctx, OnboardingRequest{Name: "  ", Focus: "Strength"})
	require.NoError(t, err)
	assert.Equal(t, "Existing", view.Name)
	assert.Equal(t, "Strength", view.Focus)
	assert.Equal(t, "70", view.Weight)

	view, err = svc.CompleteOnboarding(ctx, OnboardingRequest{Name: " New Name ", Focus: ""})
	require.NoError(t, err)
	assert.Equal(t, "New Name", view.Name)
	assert.Empty(t, view.Focus)

	status, err := svc.OnboardingStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Required)
}

func TestService_CompleteOnboarding_FailedReadKeepsProfile(t *testing.T) {
	ctx := context.Background()
	store := storage.NewFlakyStore(storage.NewMemoryStore())
	svc := NewService(NewRepo(store))

	_, err := svc.Save(ctx, Profile{Name: "Existing", Height: "180", Weight: "81"})
	require.NoError(t, err)

	store.FailNextReads(1)
	_, err = svc.CompleteOnboarding(ctx, OnboardingRequest{Focus: "Cardio"})
	assert.ErrorIs(t, err, storage.ErrFlakyRead)

	view := svc.Get(ctx)
	assert.Equal(t, "Existing", view.Name)
	assert.Equal(t, "81", view.Weight)
	assert.Empty(t, view.Focus)
}
