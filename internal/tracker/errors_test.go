package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsValidationError(t *testing.T) {
	wrapped := fmt.Errorf("add workout: %w", NewValidationError("Please fill in all required fields."))
	validationErr, ok := AsValidationError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Please fill in all required fields.", validationErr.Message)

	_, ok = AsValidationError(errors.New("boom"))
	assert.False(t, ok)
}

func TestWriteValidationError(t *testing.T) {
	rr := httptest.NewRecorder()
	assert.True(t, WriteValidationError(rr, NewValidationError("Values must be positive numbers.")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Values must be positive numbers.", resp["message"])

	rr = httptest.NewRecorder()
	assert.False(t, WriteValidationError(rr, errors.New("storage down")))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}
