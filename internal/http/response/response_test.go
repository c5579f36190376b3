package response

import (
	"encoding/json/v2"
	"net/http/httptest"
	"testing"

	domainerrors "github.com/globaldefense/index-server/internal/errors"
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
	Success(w, map[string]string{"status": "healthy"}, nil)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	BadRequest(w, "missing field", nil)

	assert.Equal(t, 400, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "missing field", env.Error)
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, domainerrors.NotFound("entity missing"), nil)

	assert.Equal(t, 404, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "entity missing", env.Error)
	assert.Equal(t, string(domainerrors.CodeNotFound), env.Code)
}

func TestHandleError_UnknownError(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, assert.AnError, nil)

	assert.Equal(t, 500, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)
	assert.Equal(t, 204, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
