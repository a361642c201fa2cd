package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"pms/config"
	"pms/internal/database/fluentd/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posted struct {
	tag     string
	message map[string]any
}

type recordingPoster struct {
	records []posted
	err     error
}

func (p *recordingPoster) Post(_ context.Context, tag string, message any) error {
	p.records = append(p.records, posted{tag: tag, message: message.(map[string]any)})
	return p.err
}

func (p *recordingPoster) Close() error { return nil }

func TestLogRepository_LogActivity(t *testing.T) {
	poster := &recordingPoster{}
	repository := NewLogRepositoryWithPoster(&config.Configuration{App: config.App{Version: "2.1.0"}}, poster)
	repository.now = func() time.Time { return time.Date(2025, time.October, 25, 0, 0, 0, 0, time.UTC) }

	err := repository.LogActivity(context.Background(), model.ActivityLog{
		UUID:         "a-1",
		Sequence:     12,
		Title:        "Rent payment due is created",
		Action:       "create",
		ActivityType: "rent",
	})
	require.NoError(t, err)

	require.Len(t, poster.records, 1)
	record := poster.records[0]
	assert.Equal(t, "activity_log", record.tag)
	assert.Equal(t, "Rent payment due is created", record.message["title"])
	assert.Equal(t, float64(12), record.message["id"])
	assert.Equal(t, "2.1.0", record.message["version"])
	assert.Equal(t, "2025-10-25 00:00:00 UTC", record.message["logged_at"])
	assert.NotContains(t, record.message, "user_id")
}

func TestLogRepository_DefaultVersionAndErrors(t *testing.T) {
	poster := &recordingPoster{err: errors.New("fluentd down")}
	repository := NewLogRepositoryWithPoster(nil, poster)

	err := repository.LogRequest(context.Background(), model.RequestLog{RequestID: "r-1", Path: "/api/rent", Method: "GET"})
	assert.EqualError(t, err, "fluentd down")
	require.Len(t, poster.records, 1)
	assert.Equal(t, "request_log", poster.records[0].tag)
	assert.Equal(t, "1.0.0", poster.records[0].message["version"])
}

func TestLogRepository_DisabledClient(t *testing.T) {
	repository := NewLogRepository(&config.Configuration{}, nil)
	assert.NoError(t, repository.LogResponse(context.Background(), model.ResponseLog{RequestID: "r-1"}))
}
