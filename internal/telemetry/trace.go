package telemetry

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"pms/config"
	"pms/internal/core"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Trace 包裝 TracerProvider；未啟用時所有 span 皆為 noop
type Trace struct {
	TracerProvider *sdktrace.TracerProvider
	ServiceName    string
}

func NewTrace(conf *config.Configuration) (*Trace, func(), error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return &Trace{}, func() {}, nil
	}
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(conf.Telemetry.Trace.EndpointUrl),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  60 * time.Second,
		}),
		otlptracehttp.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.App.Name),
			semconv.ServiceVersion(conf.App.Version),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}
	return &Trace{TracerProvider: tp, ServiceName: conf.App.Name}, cleanup, nil
}

// NewTraceWithProvider 測試用：注入 in-memory provider
func NewTraceWithProvider(tp *sdktrace.TracerProvider, serviceName string) *Trace {
	return &Trace{TracerProvider: tp, ServiceName: serviceName}
}

func (t *Trace) tracer() trace.Tracer {
	if t == nil || t.TracerProvider == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t.TracerProvider.Tracer(t.ServiceName)
}

func (t *Trace) StartSpanForLayer(
	ctx context.Context,
	spanName core.TraceSpanName,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	return t.tracer().Start(ctx, string(spanName), opts...)
}

// WithSpan 開 span 並回傳結束函式。
//   - handler / middleware：傳 *gin.Context，span 名稱取 handler 名
//   - service / repository：傳 context.Context，span 名稱取呼叫者方法名
func (t *Trace) WithSpan(parent any, name ...string) (context.Context, trace.Span, func(error)) {
	var (
		ctx  context.Context
		span trace.Span
	)
	switch p := parent.(type) {
	case *gin.Context:
		ctx, span = t.startFromGin(p, pickName(spanNameFromGin(p), name))
	case context.Context:
		ctx, span = t.StartSpanForLayer(p, core.TraceSpanName(pickName(prettifyFuncName(callerFuncName(2)), name)))
	default:
		ctx, span = t.StartSpanForLayer(context.Background(), core.TraceSpanName(pickName("", name)))
	}
	return ctx, span, func(err error) { t.EndSpan(span, err) }
}

func (t *Trace) startFromGin(c *gin.Context, name string) (context.Context, trace.Span) {
	ctx, span := t.StartSpanForLayer(t.GetTraceContext(c), core.TraceSpanName(name))
	c.Set(core.ContextTraceKey, ctx)
	return ctx, span
}

func pickName(fallback string, override []string) string {
	if len(override) > 0 && strings.TrimSpace(override[0]) != "" {
		return override[0]
	}
	if fallback == "" {
		return "unknown"
	}
	return fallback
}

// EndSpan 結束 span，有錯誤時標註
func (t *Trace) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetTraceContext 下游 middleware/handler 取得最新 ctx
func (t *Trace) GetTraceContext(c *gin.Context) context.Context {
	if ctx, ok := c.Get(core.ContextTraceKey); ok {
		if traceCtx, ok := ctx.(context.Context); ok {
			return traceCtx
		}
	}
	return c.Request.Context()
}

// ApplyTraceAttributes 依 `trace:"name[,omitempty]"` 標籤寫入 span attributes
func (t *Trace) ApplyTraceAttributes(span trace.Span, obj any) {
	if span == nil || obj == nil || !span.IsRecording() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("ApplyTraceAttributes panic: %v", r))
		}
	}()
	span.SetAttributes(TraceAttributes(obj)...)
}

// TraceAttributes 將 trace meta struct 轉為 attributes
func TraceAttributes(obj any) []attribute.KeyValue {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}
	typ := val.Type()

	var attrs []attribute.KeyValue
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("trace")
		if tag == "" {
			continue
		}
		key, opts, _ := strings.Cut(tag, ",")
		fieldVal := val.Field(i)
		if !fieldVal.IsValid() || !fieldVal.CanInterface() {
			continue
		}
		if opts == "omitempty" && fieldVal.IsZero() {
			continue
		}
		attrs = append(attrs, fieldAttributes(key, fieldVal)...)
	}
	return attrs
}

func fieldAttributes(key string, fieldVal reflect.Value) []attribute.KeyValue {
	if tm, ok := fieldVal.Interface().(time.Time); ok {
		return []attribute.KeyValue{attribute.String(key, tm.Format(time.RFC3339))}
	}
	switch fieldVal.Kind() {
	case reflect.String:
		return []attribute.KeyValue{attribute.String(key, fieldVal.String())}
	case reflect.Bool:
		return []attribute.KeyValue{attribute.Bool(key, fieldVal.Bool())}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []attribute.KeyValue{attribute.Int64(key, fieldVal.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []attribute.KeyValue{attribute.Int64(key, int64(fieldVal.Uint()))}
	case reflect.Float32, reflect.Float64:
		return []attribute.KeyValue{attribute.Float64(key, fieldVal.Float())}
	case reflect.Slice, reflect.Array:
		if fieldVal.Type().Elem().Kind() != reflect.String {
			return nil
		}
		strs := make([]string, 0, fieldVal.Len())
		for j := 0; j < fieldVal.Len(); j++ {
			strs = append(strs, fieldVal.Index(j).String())
		}
		return []attribute.KeyValue{attribute.StringSlice(key, strs)}
	case reflect.Struct, reflect.Ptr:
		return TraceAttributes(fieldVal.Interface())
	case reflect.Map:
		if fieldVal.Type().Key().Kind() != reflect.String {
			return nil
		}
		var attrs []attribute.KeyValue
		iter := fieldVal.MapRange()
		for iter.Next() {
			mapKey := key + "." + iter.Key().String()
			mapVal := iter.Value()
			switch mapVal.Kind() {
			case reflect.String:
				attrs = append(attrs, attribute.String(mapKey, mapVal.String()))
			case reflect.Int, reflect.Int64:
				attrs = append(attrs, attribute.Int64(mapKey, mapVal.Int()))
			case reflect.Float32, reflect.Float64:
				attrs = append(attrs, attribute.Float64(mapKey, mapVal.Float()))
			case reflect.Bool:
				attrs = append(attrs, attribute.Bool(mapKey, mapVal.Bool()))
			}
		}
		return attrs
	}
	return nil
}

// ==== 名稱處理 ====

// prettifyFuncName "pms/internal/service.(*RentService).ListRents-fm" → "RentService.ListRents"
func prettifyFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	full = strings.NewReplacer("(*", "", "(", "", ")", "").Replace(full)
	if i := strings.Index(full, "["); i >= 0 {
		if j := strings.Index(full, "]"); j > i {
			full = full[:i] + full[j+1:]
		}
	}
	return full
}

func spanNameFromGin(c *gin.Context) string {
	if hn := c.HandlerName(); hn != "" && !strings.HasPrefix(hn, "github.com/gin-gonic") {
		return prettifyFuncName(hn)
	}
	route := c.FullPath()
	if route == "" && c.Request != nil {
		route = c.Request.URL.Path
	}
	method := ""
	if c.Request != nil {
		method = c.Request.Method
	}
	return method + " " + route
}

func callerFuncName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return ""
}
