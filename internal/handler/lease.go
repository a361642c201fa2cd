package handler

import (
	"pms/internal/pkg/response"
	"pms/internal/service"
	"pms/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type LeaseHandler struct {
	trace         *telemetry.Trace
	reportService *service.ReportService
}

func NewLeaseHandler(trace *telemetry.Trace, reportService *service.ReportService) *LeaseHandler {
	return &LeaseHandler{trace: trace, reportService: reportService}
}

// Stats 租約統計
// @Summary 取得租約統計與租約清單
// @Tags Lease
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.LeaseStatsResponse
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/lease/stats [get]
func (h *LeaseHandler) Stats(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	stats, err := h.reportService.LeaseStats(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, stats)
}
