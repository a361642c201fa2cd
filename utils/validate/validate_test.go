package validate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cErr "pms/internal/pkg/error"
	"pms/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusBody struct {
	Status string `json:"status" binding:"required,oneof=pending paid overdue"`
}

type messagedBody struct {
	Status string `json:"status" binding:"required"`
}

func (messagedBody) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{"Status.required": "status is required"}
}

func newContext(method, target, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindAndValidate(t *testing.T) {
	var ok statusBody
	cause, responseErr := BindAndValidate(newContext(http.MethodPut, "/", `{"status":"paid"}`), &ok)
	assert.NoError(t, cause)
	assert.Nil(t, responseErr)
	assert.Equal(t, "paid", ok.Status)

	var bad statusBody
	cause, responseErr = BindAndValidate(newContext(http.MethodPut, "/", `{"status":"lost"}`), &bad)
	require.Error(t, cause)
	require.Error(t, responseErr)
	assert.Contains(t, ValidationErrorResponse(&bad, cause), `Field "status"`)
}

func TestBindAndValidate_CustomMessage(t *testing.T) {
	var body messagedBody
	_, responseErr := BindAndValidate(newContext(http.MethodPut, "/", `{}`), &body)
	require.Error(t, responseErr)
	appErr, ok := responseErr.(*cErr.Error)
	require.True(t, ok)
	assert.Equal(t, "status is required", appErr.ErrorDesc())
}

func TestParseObjectID(t *testing.T) {
	c := newContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: "not-an-id"}}
	_, cause, responseErr := ParseObjectID(c, "id")
	assert.Error(t, cause)
	assert.Error(t, responseErr)

	c.Params = gin.Params{{Key: "id", Value: "64b7f0c2a1b2c3d4e5f60718"}}
	id, cause, responseErr := ParseObjectID(c, "id")
	assert.NoError(t, cause)
	assert.Nil(t, responseErr)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", id.Hex())
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, IsValidRole("finance"))
	assert.False(t, IsValidRole("tenant"))
	assert.True(t, IsValidRentStatus("overdue"))
	assert.False(t, IsValidRentStatus("void"))
}
