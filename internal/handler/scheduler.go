package handler

import (
	"context"
	"errors"

	"pms/internal/dto"
	cErr "pms/internal/pkg/error"
	"pms/internal/pkg/response"
	"pms/internal/service"
	"pms/internal/telemetry"
	"pms/utils/validate"

	"github.com/gin-gonic/gin"
)

type SchedulerHandler struct {
	trace            *telemetry.Trace
	schedulerService *service.SchedulerService
}

func NewSchedulerHandler(trace *telemetry.Trace, schedulerService *service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{trace: trace, schedulerService: schedulerService}
}

// Run 立即執行排程
// @Summary 立即執行每日排程（租金產生與租約到期通知）
// @Tags Scheduler
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.RunSchedulerDto false "指定 pass；空值兩個都跑"
// @Success 200 {object} service.RunReport
// @Failure 409 {object} response.Response
// @Failure 500 {object} response.Response "data 為失敗前的 RunReport"
// @Router /api/scheduler/run [post]
func (h *SchedulerHandler) Run(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var req dto.RunSchedulerDto
	if c.Request.ContentLength > 0 {
		if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
			end(cause)
			response.AbortWithError(c, respErr)
			return
		}
	}
	var passes []service.Pass
	if req.Pass != "" {
		passes = append(passes, service.Pass(req.Pass))
	}

	// 用戶端斷線不中斷執行；逾時仍由 SCHEDULER__TIMEOUT 控制
	report, err := h.schedulerService.Run(context.WithoutCancel(ctx), passes...)
	if err != nil {
		end(err)
		if errors.Is(err, service.ErrSchedulerBusy) {
			response.AbortWithError(c, cErr.SchedulerBusy("scheduler is already running"))
			return
		}
		if report != nil {
			response.AbortWithErrorData(c, cErr.From(err), report)
			return
		}
		response.AbortWithError(c, cErr.From(err))
		return
	}
	end(nil)
	response.Success(c, report)
}
