package telemetry

import (
	"time"

	"pms/config"
	"pms/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric 未啟用時所有欄位為 nil，呼叫端以 Observe*/Inc* 方法存取
type Metric struct {
	HttpRequestsTotal      *prometheus.CounterVec
	HttpRequestDuration    *prometheus.HistogramVec
	ResponseSuccessTotal   *prometheus.CounterVec
	ResponseFailTotal      *prometheus.CounterVec
	SchedulerRunsTotal     *prometheus.CounterVec
	SchedulerRunDuration   *prometheus.HistogramVec
	RentsGeneratedTotal    prometheus.Counter
	NotificationsSentTotal *prometheus.CounterVec
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	return newMetric(promauto.With(prometheus.DefaultRegisterer), config)
}

// NewMetricWithRegistry 測試用：獨立 registry 避免重複註冊
func NewMetricWithRegistry(registry *prometheus.Registry, config *config.Configuration) *Metric {
	return newMetric(promauto.With(registry), config)
}

func newMetric(factory promauto.Factory, config *config.Configuration) *Metric {
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	name := func(metric core.MetricName) string {
		if config.App.Name == "" {
			return string(metric)
		}
		return config.App.Name + "_" + string(metric)
	}
	return &Metric{
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{Name: name(core.MetricHttpRequestsTotal), Help: "Total received API requests"},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{Name: name(core.MetricHttpRequestDuration), Help: "API request duration (seconds)", Buckets: buckets},
			labelNames(core.MetricLabelEndpoint),
		),
		ResponseSuccessTotal: factory.NewCounterVec(
			prometheus.CounterOpts{Name: name(core.MetricResponseSuccessTotal), Help: "Successful API responses"},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ResponseFailTotal: factory.NewCounterVec(
			prometheus.CounterOpts{Name: name(core.MetricResponseFailTotal), Help: "Failed API responses"},
			labelNames(core.MetricLabelReason),
		),
		SchedulerRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{Name: name(core.MetricSchedulerRunsTotal), Help: "Scheduler passes by outcome"},
			labelNames(core.MetricLabelJob, core.MetricLabelStatus),
		),
		SchedulerRunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{Name: name(core.MetricSchedulerRunDuration), Help: "Scheduler pass duration (seconds)", Buckets: buckets},
			labelNames(core.MetricLabelJob),
		),
		RentsGeneratedTotal: factory.NewCounter(
			prometheus.CounterOpts{Name: name(core.MetricRentsGeneratedTotal), Help: "Rent records created by the scheduler"},
		),
		NotificationsSentTotal: factory.NewCounterVec(
			prometheus.CounterOpts{Name: name(core.MetricNotificationsSentTotal), Help: "Notifications persisted by type"},
			labelNames(core.MetricLabelType),
		),
	}
}

// ObserveSchedulerPass 記錄單次 pass 結果
func (m *Metric) ObserveSchedulerPass(job, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if m.SchedulerRunsTotal != nil {
		m.SchedulerRunsTotal.WithLabelValues(job, status).Inc()
	}
	if m.SchedulerRunDuration != nil {
		m.SchedulerRunDuration.WithLabelValues(job).Observe(elapsed.Seconds())
	}
}

func (m *Metric) IncRentsGenerated() {
	if m != nil && m.RentsGeneratedTotal != nil {
		m.RentsGeneratedTotal.Inc()
	}
}

func (m *Metric) IncNotificationsSent(notifyType core.NotifyType) {
	if m != nil && m.NotificationsSentTotal != nil {
		m.NotificationsSentTotal.WithLabelValues(string(notifyType)).Inc()
	}
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
