package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pms/config"
	"pms/internal/core"
	"pms/internal/database/fluentd/model"
	"pms/internal/database/fluentd/repository"
	"pms/internal/pkg/encoding"
	cErr "pms/internal/pkg/error"
	"pms/internal/pkg/response"
	"pms/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// FormatHandler 把 handler 以 c.Set 放入的 data/message 包成統一回應
func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if skipObservability(endpoint) {
			c.Next()
			return
		}

		requestTime := time.Now()
		if startTime, exists := c.Get(requestStartKey); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		} else {
			c.Set(requestStartKey, requestTime)
		}

		c.Next()

		// 有錯誤交由 Recovery；已寫出（例如 websocket upgrade）不再處理
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}

		statusCode := c.Writer.Status()
		if custom, ok := c.Get(response.ContextStatusKey); ok {
			if code, ok := custom.(int); ok {
				statusCode = code
			}
		}
		if statusCode >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, "request error"))
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		data, _ := c.Get(response.ContextDataKey)
		if data == nil {
			data = map[string]any{}
		}
		message := "Request Success"
		if s, ok := c.Get(response.ContextMessageKey); ok {
			if msg, ok := s.(string); ok && msg != "" {
				message = msg
			}
		}

		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		jsonBytes, err := json.Marshal(response.Response{
			RequestID:   fmt.Sprintf("%x", traceID[:]),
			Code:        0,
			Data:        data,
			Message:     "OK",
			Description: message,
		})
		if err != nil {
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}

		// 大於 MinSize 且 client 接受才壓縮
		contentEncoding := ""
		if len(jsonBytes) >= encoding.MinSize {
			if enc := encoding.Negotiate(c.GetHeader("Accept-Encoding")); enc != encoding.Identity {
				if compressed, cerr := encoding.Compress(enc, jsonBytes); cerr == nil {
					jsonBytes = compressed
					contentEncoding = enc
				} else {
					middleware.logger.Warn("response compression failed", zap.String("encoding", enc), zap.Error(cerr))
				}
			}
		}

		duration := time.Since(requestTime)
		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			Message:    message,
			Code:       0,
			DurationMs: float64(duration.Milliseconds()),
			Encoding:   contentEncoding,
			Data:       safePreviewJSON(data, 2000),
		})

		middleware.logger.Info("[Response] "+message,
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)

		if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
			RequestID:  fmt.Sprintf("%x", traceID[:]),
			Code:       0,
			StatusCode: statusCode,
			LatencyMs:  float64(duration.Microseconds()) / 1000,
			Encoding:   contentEncoding,
			ResponseTS: time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
			Version:    middleware.config.App.Version,
		}); err != nil {
			middleware.logger.Warn("fluentd response log failed", zap.Error(err))
		}
		if middleware.metric != nil && middleware.metric.ResponseSuccessTotal != nil {
			middleware.metric.ResponseSuccessTotal.
				WithLabelValues(endpoint, strconv.Itoa(statusCode)).
				Inc()
		}

		header := c.Writer.Header()
		header.Set("Content-Type", "application/json; charset=utf-8")
		header.Add("Vary", "Accept-Encoding")
		if contentEncoding != "" {
			header.Set("Content-Encoding", contentEncoding)
		}
		header.Set("Content-Length", strconv.Itoa(len(jsonBytes)))
		c.Writer.WriteHeader(statusCode)
		if _, werr := c.Writer.Write(jsonBytes); werr != nil {
			middleware.logger.Warn("write response failed", zap.Error(werr))
		}
	}
}

// safePreviewJSON 序列化為 JSON 字串並限制長度
func safePreviewJSON(data any, max int) string {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("[marshal error: %v]", err)
	}
	out := string(b)
	if len(out) > max {
		return out[:max] + "…"
	}
	return out
}
