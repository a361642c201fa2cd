package handler

import (
	"pms/internal/dto"
	"pms/internal/middleware"
	cErr "pms/internal/pkg/error"
	"pms/internal/pkg/response"
	"pms/internal/service"
	"pms/internal/telemetry"
	"pms/utils/validate"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	trace               *telemetry.Trace
	notificationService *service.NotificationService
}

func NewNotificationHandler(trace *telemetry.Trace, notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{trace: trace, notificationService: notificationService}
}

// List 通知列表
// @Summary 取得通知（新到舊）
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼（從 1 開始）"
// @Param limit query int false "每頁筆數"
// @Success 200 {object} dto.NotificationListResponse
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/notification [get]
func (h *NotificationHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	user, ok := middleware.CurrentUser(c)
	if !ok {
		cause := cErr.Unauthorized("missing user context")
		end(cause)
		response.AbortWithError(c, cause)
		return
	}
	var req dto.PageQueryDto
	if cause, respErr := validate.BindQuery(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	viewer := service.Viewer{ID: user.ID.Hex(), Role: user.Role}
	res, err := h.notificationService.List(ctx, viewer, req.Page, req.Limit)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, res)
}

// MarkRead 標記已讀
// @Summary 標記單則通知為已讀
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/notification/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	id, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	if err := h.notificationService.MarkRead(ctx, id); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead 全部已讀
// @Summary 標記所有通知為已讀
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MarkAllReadResponse
// @Failure 500 {object} response.Response
// @Router /api/notification/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	res, err := h.notificationService.MarkAllRead(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, res)
}

// Delete 軟刪除
// @Summary 刪除通知（軟刪除）
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/notification/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	id, cause, respErr := validate.ParseObjectID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	if err := h.notificationService.Delete(ctx, id); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, gin.H{"message": "Notification deleted"})
}
