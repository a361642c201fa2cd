package response

import (
	"errors"
	"net/http"

	cErr "pms/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// gin context keys，由 response middleware 讀取
const (
	ContextDataKey    = "data"
	ContextMessageKey = "message"
	ContextStatusKey  = "status"
)

type Response struct {
	RequestID   string `json:"requestID"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Create 201；data 為 gin.H 且帶 "message" 時取出作為回應訊息
func Create(c *gin.Context, data any) {
	c.Set(ContextStatusKey, http.StatusCreated)
	setPayload(c, data, "Create Success")
}

func Success(c *gin.Context, data any) {
	setPayload(c, data, "Request Success")
}

func setPayload(c *gin.Context, data any, message string) {
	if msg, ok := data.(gin.H); ok {
		if custom, ok := msg["message"].(string); ok && custom != "" {
			message = custom
			delete(msg, "message")
		}
	}
	c.Set(ContextDataKey, data)
	c.Set(ContextMessageKey, message)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// AbortWithErrorData 錯誤回應仍帶出部分結果（例如排程 pass 失敗前的計數）
func AbortWithErrorData(c *gin.Context, err error, data any) {
	c.Set(ContextDataKey, data)
	AbortWithError(c, err)
}

func Fail(c *gin.Context, RequestID string, httpCode int, errorCode int, msg string, desc string) {
	data, _ := c.Get(ContextDataKey)
	c.JSON(httpCode, Response{
		RequestID:   RequestID,
		Code:        errorCode,
		Data:        data,
		Message:     msg,
		Description: desc,
	})
	c.Abort()
}

func FailByErr(c *gin.Context, RequestID string, err error) {
	var v *cErr.Error
	if errors.As(err, &v) {
		Fail(c, RequestID, v.HttpCode(), v.ErrorCode(), v.Error(), v.ErrorDesc())
	} else {
		Fail(c, RequestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, err.Error(), "internal error")
	}
}
