package handler

import (
	"pms/config"
	"pms/internal/middleware"
	cErr "pms/internal/pkg/error"
	"pms/internal/pkg/response"
	"pms/internal/realtime"
	"pms/internal/telemetry"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RealtimeHandler struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	config *config.Configuration
	hub    *realtime.Hub
}

func NewRealtimeHandler(logger *zap.Logger, trace *telemetry.Trace, config *config.Configuration, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{logger: logger, trace: trace, config: config, hub: hub}
}

// Stream 通知即時推播
// @Summary 建立通知 websocket（token 以 query 傳入）
// @Tags Realtime
// @Param token query string true "JWT"
// @Success 101
// @Failure 401 {object} response.Response
// @Router /api/realtime/ws [get]
func (h *RealtimeHandler) Stream(c *gin.Context) {
	_, _, end := h.trace.WithSpan(c)
	user, ok := middleware.CurrentUser(c)
	if !ok {
		cause := cErr.Unauthorized("missing user context")
		end(cause)
		response.AbortWithError(c, cause)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.config.Auth.OriginPatterns,
	})
	if err != nil {
		// Accept 已自行回寫錯誤
		h.logger.Warn("websocket accept failed", zap.Error(err))
		end(err)
		c.Abort()
		return
	}
	end(nil)

	userID := user.ID.Hex()
	if err := h.hub.Serve(c.Request.Context(), conn, userID); err != nil {
		h.logger.Debug("websocket closed", zap.String("user_id", userID), zap.Error(err))
	}
	c.Abort()
}
