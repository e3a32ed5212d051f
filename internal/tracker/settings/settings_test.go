package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Theme(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewService(store)

	assert.Equal(t, ThemeLight, svc.Theme(ctx))

	require.NoError(t, svc.SetTheme(ctx, ThemeDark))
	assert.Equal(t, ThemeDark, svc.Theme(ctx))

	err := svc.SetTheme(ctx, "solarized")
	_, isValidation := tracker.AsValidationError(err)
	assert.True(t, isValidation)
	assert.Equal(t, ThemeDark, svc.Theme(ctx))

	theme, err := svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
	theme, err = svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	// unknown stored values read as light
	require.NoError(t, store.Set(ctx, storage.KeyTheme, []byte(`"neon"`)))
	assert.Equal(t, ThemeLight, svc.Theme(ctx))
}

func TestService_ToggleTheme_FailedRead(t *testing.T) {
	ctx := context.Background()
	store := storage.NewFlakyStore(storage.NewMemoryStore())
	svc := NewService(store)
	require.NoError(t, svc.SetTheme(ctx, ThemeDark))

	store.FailNextReads(1)
	_, err := svc.ToggleTheme(ctx)
	assert.ErrorIs(t, err, storage.ErrFlakyRead)
	assert.Equal(t, ThemeDark, svc.Theme(ctx))
}

func TestHandler_Theme(t *testing.T) {
	handler := NewHandler(NewService(storage.NewMemoryStore()))

	rr := httptest.NewRecorder()
	handler.HandleGetTheme(rr, httptest.NewRequest(http.MethodGet, "/settings/theme", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"theme":"light"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	handler.HandleSetTheme(rr, httptest.NewRequest(http.MethodPut, "/settings/theme", strings.NewReader(`{"theme":"blue"}`)))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Theme must be light or dark."}`, rr.Body.String())

	rr = httptest.NewRecorder()
	handler.HandleSetTheme(rr, httptest.NewRequest(http.MethodPut, "/settings/theme", strings.NewReader(`{"theme":"dark"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.HandleToggleTheme(rr, httptest.NewRequest(http.MethodPost, "/settings/theme/toggle", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"theme":"light"}`, rr.Body.String())
}
