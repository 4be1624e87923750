package response

import (
	"encoding/json/v2"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, body []byte) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]string{"title": "Dune"}, nil)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.NotNil(t, env.Data)
}

func TestSuccess_EmptyListKeepsDataField(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, []string{}, nil)

	assert.JSONEq(t, `{"data":[],"success":true}`, w.Body.String())
}

func TestJSON_ErrorStatusFlipsSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, 422, nil, nil)

	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, "item not found", nil)

	assert.Equal(t, 404, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "item not found", env.Error)
}

func TestBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	BadRequest(w, "missing kind", nil)

	assert.Equal(t, 400, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "missing kind", env.Error)
}

func TestInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	InternalError(w, "internal server error", nil)

	assert.Equal(t, 500, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
}
