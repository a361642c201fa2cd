package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanAuthMiddleware     TraceSpanName = "auth_middleware"
	SpanSchedulerRun       TraceSpanName = "scheduler_run"
	SpanRentPass           TraceSpanName = "scheduler_rent_pass"
	SpanLeasePass          TraceSpanName = "scheduler_lease_pass"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal      MetricName = "requests_total"
	MetricHttpRequestDuration    MetricName = "request_duration_seconds"
	MetricResponseSuccessTotal   MetricName = "response_success_total"
	MetricResponseFailTotal      MetricName = "response_fail_total"
	MetricSchedulerRunsTotal     MetricName = "scheduler_runs_total"
	MetricSchedulerRunDuration   MetricName = "scheduler_run_duration_seconds"
	MetricRentsGeneratedTotal    MetricName = "rents_generated_total"
	MetricNotificationsSentTotal MetricName = "notifications_sent_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelJob      MetricLabelName = "job"
	MetricLabelType     MetricLabelName = "type"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Encoding   string  `trace:"response.content_encoding,omitempty"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

type TraceAuthMiddlewareMeta struct {
	Where   string   `trace:"auth.where"`
	UserID  string   `trace:"auth.user_id,omitempty"`
	Role    string   `trace:"auth.role,omitempty"`
	Allowed []string `trace:"auth.allowed_roles"`
	Status  string   `trace:"auth.status,omitempty"`
}

type TraceSchedulerMeta struct {
	Job       string `trace:"scheduler.job"`
	Today     string `trace:"scheduler.today"`
	Scanned   int    `trace:"scheduler.scanned"`
	Created   int    `trace:"scheduler.created"`
	Notified  int    `trace:"scheduler.notified"`
	Skipped   int    `trace:"scheduler.skipped"`
	Aborted   bool   `trace:"scheduler.aborted"`
	LockOwner string `trace:"scheduler.lock_owner,omitempty"`
}

type TraceReportMeta struct {
	Report string `trace:"report.name"`
	Query  string `trace:"report.query,omitempty"`
	Month  int    `trace:"report.month,omitempty"`
	Year   int    `trace:"report.year,omitempty"`
	Rows   int    `trace:"report.rows,omitempty"`
}

type TraceNotificationMeta struct {
	Op         string `trace:"op"`
	NotifyType string `trace:"notification.type,omitempty"`
	Recipients int    `trace:"notification.recipients,omitempty"`
	Online     int    `trace:"notification.online,omitempty"`
	Page       int64  `trace:"list.page,omitempty"`
	Size       int64  `trace:"list.size,omitempty"`
	Count      int    `trace:"result.count,omitempty"`
}

type TraceActivityMeta struct {
	Op           string `trace:"op"`
	ActivityType string `trace:"activity.type,omitempty"`
	Sequence     int64  `trace:"activity.id,omitempty"`
	Page         int64  `trace:"list.page,omitempty"`
	Size         int64  `trace:"list.size,omitempty"`
}

type TraceRentMeta struct {
	Op        string `trace:"op"`
	RentUUID  string `trace:"rent.uuid,omitempty"`
	Status    string `trace:"rent.status,omitempty"`
	ReceiptID string `trace:"rent.receipt_id,omitempty"`
	Month     int    `trace:"rent.month,omitempty"`
	Year      int    `trace:"rent.year,omitempty"`
}
