package client

import (
	"context"
	"pms/config"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// Poster 讓 repository 可在測試中替換
type Poster interface {
	Post(ctx context.Context, tag string, message any) error
	Close() error
}

// FluentdClient implements Poster using fluent-logger-golang.
type FluentdClient struct {
	client    *fluent.Fluent
	tagPrefix string
}

// NewFluentdClient 未設定 host 時回傳 nil client，Post 直接略過
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (*FluentdClient, func(), error) {
	prefix := "pms"
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	if config.Fluentd.Host == "" {
		logger.Info("fluentd disabled: FLUENTD__HOST not set")
		return &FluentdClient{tagPrefix: prefix}, func() {}, nil
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	fluentClient, err := fluent.New(fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		Timeout:    timeout,
		TagPrefix:  prefix,
		Async:      true,
	})
	if err != nil {
		return nil, nil, err
	}
	c := &FluentdClient{client: fluentClient, tagPrefix: prefix}
	cleanup := func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close fluentd client", zap.Error(err))
		}
	}
	return c, cleanup, nil
}

func (c *FluentdClient) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Tag builds a tag using the configured TagPrefix and provided suffix.
// e.g. suffix="activity_log" => "pms.activity_log"
func (c *FluentdClient) Tag(suffix string) string {
	if c.tagPrefix == "" {
		return suffix
	}
	return c.tagPrefix + "." + suffix
}

// Post sends a record to Fluentd; the forward client has no context support.
func (c *FluentdClient) Post(ctx context.Context, tag string, message any) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Post(tag, message)
}

// NoopClient (disabled mode / tests)
type NoopClient struct{}

func (n *NoopClient) Post(ctx context.Context, tag string, message any) error { return nil }
func (n *NoopClient) Close() error                                              { return nil }
