package handler

import (
	"pms/internal/core"
	"pms/internal/dto"
	"pms/internal/pkg/response"
	"pms/internal/service"
	"pms/internal/telemetry"
	"pms/utils/validate"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	trace         *telemetry.Trace
	reportService *service.ReportService
}

func NewDashboardHandler(trace *telemetry.Trace, reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{trace: trace, reportService: reportService}
}

// Report 儀表板總覽
// @Summary 取得儀表板報表
// @Description 物業、租客、營收、入住率、付款狀態、維修支出與月度營收/支出
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DashboardReport
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/dashboard/report [get]
func (h *DashboardHandler) Report(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	report, err := h.reportService.Dashboard(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	h.trace.ApplyTraceAttributes(span, core.TraceReportMeta{Report: "dashboard"})
	end(nil)
	response.Success(c, report)
}

// Occupancy 入住率
// @Summary 取得入住率與 12 個月趨勢
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.OccupancyReport
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/dashboard/occupancy [get]
func (h *DashboardHandler) Occupancy(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	report, err := h.reportService.Occupancy(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, report)
}

// Search 全域搜尋
// @Summary 搜尋土地、物業、租客（各最多 5 筆）
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param query query string true "關鍵字"
// @Success 200 {object} model.SearchResults
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/dashboard/search [get]
func (h *DashboardHandler) Search(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	var req dto.SearchQueryDto
	if cause, respErr := validate.BindQuery(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	h.trace.ApplyTraceAttributes(span, core.TraceReportMeta{Report: "search", Query: req.Query})

	results, err := h.reportService.GlobalSearch(ctx, req.Query)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, results)
}
