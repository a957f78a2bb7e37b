package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondSuccess(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, map[string]interface{}{"id": "abc"}, body["data"])
}

func TestRespondErrorWithCause(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusConflict, "SKU already exists", errors.New("duplicate key"))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SKU already exists", body.Msg)
	assert.Equal(t, "duplicate key", body.Error)
}

func TestRespondErrorWithoutCause(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "No products found", nil)

	raw := rec.Body.String()
	assert.NotContains(t, raw, `"error"`)

	var body ErrorBody
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, "No products found", body.Msg)
}
