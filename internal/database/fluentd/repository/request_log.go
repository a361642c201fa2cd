package repository

import (
	"context"
	"encoding/json"
	"time"

	"pms/config"
	"pms/internal/core"
	"pms/internal/database/client"
	"pms/internal/database/fluentd/model"
)

const loggedAtLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository 送出 request / response / activity 紀錄到 Fluentd
type LogRepository struct {
	poster  client.Poster
	version string
	now     func() time.Time
}

func NewLogRepository(config *config.Configuration, fluentdClient *client.FluentdClient) *LogRepository {
	return NewLogRepositoryWithPoster(config, fluentdClient)
}

// NewLogRepositoryWithPoster 測試用：注入 Poster
func NewLogRepositoryWithPoster(config *config.Configuration, poster client.Poster) *LogRepository {
	version := "1.0.0"
	if config != nil && config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{poster: poster, version: version, now: time.Now}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = repository.stamp()
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = repository.stamp()
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

func (repository *LogRepository) LogActivity(ctx context.Context, activity model.ActivityLog) error {
	if activity.LoggedAt == "" {
		activity.LoggedAt = repository.stamp()
	}
	if activity.Version == "" {
		activity.Version = repository.version
	}
	return repository.post(ctx, core.FluentdActivity, activity)
}

func (repository *LogRepository) stamp() string {
	return repository.now().UTC().Format(loggedAtLayout)
}

// post 轉成 map 才能讓 fluent msgpack 依 json tag 命名
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	if repository.poster == nil {
		return nil
	}
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := json.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.poster.Post(ctx, string(tag), fluentdMessage)
}
