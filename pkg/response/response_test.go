package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/users-api/pkg/apperror"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(apperror.New(apperror.CodeInvalid, "bad")))
	assert.Equal(t, http.StatusNotFound, StatusOf(apperror.NotFound("user not found")))
	assert.Equal(t, http.StatusConflict, StatusOf(apperror.Conflict("user already exists")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(apperror.Internal(errors.New("x"), "failed")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestFailWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Fail(c, apperror.Internal(errors.New("pq: password authentication failed"), "failed to fetch users"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "failed to fetch users", body["message"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, w.Body.String(), "password authentication")
}
