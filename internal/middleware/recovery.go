package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"pms/config"
	"pms/internal/core"
	"pms/internal/database/fluentd/model"
	"pms/internal/database/fluentd/repository"
	cErr "pms/internal/pkg/error"
	res "pms/internal/pkg/response"
	"pms/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// ErrorHandler 統一輸出 panic 與 c.Errors
func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now()
		if startTime, exists := c.Get(requestStartKey); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}
		requestID, err := uuid.NewV7()
		if err != nil {
			requestID = uuid.New()
		}

		// panic recover 必須在 c.Next() 之前註冊
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			duration := time.Since(requestTime)
			ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
			traceID := span.SpanContext().TraceID()

			meta := core.TracePanicMeta{
				Path:       c.Request.URL.Path,
				Method:     c.Request.Method,
				ClientIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				DurationMs: float64(duration.Milliseconds()),
				Message:    toSafeString(fmt.Sprint(rec)),
				Stack:      toSafeStack(debug.Stack()),
				Status:     http.StatusInternalServerError,
			}
			middleware.trace.ApplyTraceAttributes(span, meta)

			middleware.logger.Error("[PANIC] Recovered",
				zap.String("path", meta.Path),
				zap.String("method", meta.Method),
				zap.String("client_ip", meta.ClientIP),
				zap.String("user_agent", meta.UserAgent),
				zap.Duration("duration", duration),
				zap.String("panic", meta.Message),
				zap.String("stacktrace", meta.Stack),
				zap.String("requestId", requestID.String()),
				zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
			)

			appErr := cErr.InternalServer("unexpected panic")
			end(appErr)
			if !c.Writer.Written() {
				res.FailByErr(c, requestID.String(), appErr)
			}
			middleware.report(ctx, requestID.String(), cErr.INTERNAL_ERROR, http.StatusInternalServerError, meta.Message, "panic", duration)
			c.Abort()
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
		defer end(nil)
		traceID := span.SpanContext().TraceID()

		// 第一個 *cErr.Error 優先
		for _, e := range c.Errors {
			appErr, ok := e.Err.(*cErr.Error)
			if !ok {
				continue
			}
			middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
				Code:       appErr.ErrorCode(),
				Message:    appErr.Error(),
				Detail:     appErr.ErrorDesc(),
				DurationMs: float64(duration.Milliseconds()),
				Status:     appErr.HttpCode(),
			})
			middleware.logger.Warn(appErr.Error(),
				zap.Int("code", appErr.ErrorCode()),
				zap.String("data", appErr.ErrorDesc()),
				zap.Duration("duration", duration),
				zap.String("requestId", requestID.String()),
				zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
			)
			res.FailByErr(c, requestID.String(), appErr)
			middleware.report(ctx, requestID.String(), appErr.ErrorCode(), appErr.HttpCode(), appErr.Error(), appErr.Error(), duration)
			c.Abort()
			return
		}

		unknown := c.Errors.String()
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       cErr.INTERNAL_ERROR,
			Message:    "unknown-error",
			Detail:     toSafeString(unknown),
			DurationMs: float64(duration.Milliseconds()),
			Status:     http.StatusInternalServerError,
		})
		middleware.logger.Warn("[ERROR] unknown",
			zap.String("error", unknown),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID.String()),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)
		res.Fail(c, requestID.String(), http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", unknown)
		middleware.report(ctx, requestID.String(), cErr.INTERNAL_ERROR, http.StatusInternalServerError, toSafeString(unknown), "unknown", duration)
		c.Abort()
	}
}

// report 送 fluentd 並累計失敗指標
func (middleware *Recovery) report(ctx context.Context, requestID string, code, status int, errMsg, reason string, duration time.Duration) {
	if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:  requestID,
		Code:       code,
		StatusCode: status,
		Error:      errMsg,
		LatencyMs:  float64(duration.Microseconds()) / 1000,
		ResponseTS: time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
		Version:    middleware.config.App.Version,
	}); err != nil {
		middleware.logger.Warn("fluentd response log failed", zap.Error(err))
	}
	if middleware.metric != nil && middleware.metric.ResponseFailTotal != nil {
		middleware.metric.ResponseFailTotal.WithLabelValues(reason).Inc()
	}
}

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
