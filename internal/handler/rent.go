package handler

import (
	"pms/internal/core"
	"pms/internal/dto"
	"pms/internal/middleware"
	cErr "pms/internal/pkg/error"
	"pms/internal/pkg/response"
	"pms/internal/service"
	"pms/internal/telemetry"
	"pms/utils/validate"

	"github.com/gin-gonic/gin"
)

type RentHandler struct {
	trace       *telemetry.Trace
	rentService *service.RentService
}

func NewRentHandler(trace *telemetry.Trace, rentService *service.RentService) *RentHandler {
	return &RentHandler{trace: trace, rentService: rentService}
}

// List 當月租金
// @Summary 取得指定月份到期的租金與合計
// @Tags Rent
// @Security BearerAuth
// @Produce json
// @Param month query int false "月份 1-12（預設本月）"
// @Param year query int false "年份（預設今年）"
// @Success 200 {object} dto.RentListResponse
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/rent [get]
func (h *RentHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var req dto.RentQueryDto
	if cause, respErr := validate.BindQuery(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	res, err := h.rentService.ListRents(ctx, req.Month, req.Year)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, res)
}

// UpdateStatus 更新租金狀態
// @Summary 更新租金狀態
// @Tags Rent
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param uuid path string true "Rent UUID"
// @Param body body dto.UpdateRentStatusDto true "狀態"
// @Success 200 {object} model.Rent
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/rent/{uuid}/status [put]
func (h *RentHandler) UpdateStatus(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	user, ok := middleware.CurrentUser(c)
	if !ok {
		cause := cErr.Unauthorized("missing user context")
		end(cause)
		response.AbortWithError(c, cause)
		return
	}
	var req dto.UpdateRentStatusDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	rentUUID := c.Param("uuid")
	h.trace.ApplyTraceAttributes(span, core.TraceRentMeta{Op: "update_status", RentUUID: rentUUID, Status: string(req.Status)})

	rent, err := h.rentService.UpdateStatus(ctx, user.ID.Hex(), rentUUID, req.Status)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, rent)
}

// NextReceipt 取號
// @Summary 取得下一個收據編號
// @Tags Rent
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} response.Response
// @Router /api/rent/receipt/next [get]
func (h *RentHandler) NextReceipt(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	receiptID, err := h.rentService.NextReceiptID(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)
	response.Success(c, gin.H{"receiptId": receiptID})
}
