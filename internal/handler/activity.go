package handler

import (
	"pms/internal/dto"
	"pms/internal/pkg/response"
	"pms/internal/service"
	"pms/internal/telemetry"
	"pms/utils/validate"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	trace           *telemetry.Trace
	activityService *service.ActivityService
}

func NewActivityHandler(trace *telemetry.Trace, activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{trace: trace, activityService: activityService}
}

// List 活動紀錄
// @Summary 取得活動紀錄（新到舊）
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼（從 1 開始）"
// @Param perpage query int false "每頁筆數"
// @Success 200 {object} dto.ActivityListResponse
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var req dto.ActivityQueryDto
	if cause, respErr := validate.BindQuery(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	res, err := h.activityService.List(ctx, req.Page, req.PerPage)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, res)
}

// Get 單筆活動
// @Summary 取得單筆活動紀錄
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param uuid path string true "Activity UUID"
// @Success 200 {object} model.ActivityLog
// @Failure 404 {object} response.Response
// @Router /api/activity/{uuid} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	activity, err := h.activityService.GetByUUID(ctx, c.Param("uuid"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, activity)
}
