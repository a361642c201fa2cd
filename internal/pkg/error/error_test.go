package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	busy := SchedulerBusy("daily run in progress")
	wrapped := fmt.Errorf("trigger: %w", busy)

	assert.Same(t, busy, From(wrapped))

	plain := From(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.HttpCode())
	assert.Equal(t, INTERNAL_ERROR, plain.ErrorCode())
	assert.Equal(t, "boom", plain.ErrorDesc())
}

func TestMapHttpStatusToError(t *testing.T) {
	assert.Equal(t, SCHEDULER_BUSY, MapHttpStatusToError(http.StatusConflict, "").ErrorCode())
	assert.Equal(t, FORBIDDEN, MapHttpStatusToError(http.StatusForbidden, "").ErrorCode())
	assert.Equal(t, INTERNAL_ERROR, MapHttpStatusToError(http.StatusTeapot, "").ErrorCode())
}
