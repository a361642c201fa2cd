package cron

import (
	"context"
	"testing"
	"time"

	"pms/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCron_DisabledRegistersNothing(t *testing.T) {
	c := NewCron(zap.NewNop(), &config.Configuration{}, nil)
	require.NoError(t, c.Run())
	assert.Empty(t, c.server.Entries())
	require.NoError(t, c.Stop(context.Background()))
}

func TestCron_RegistersDailyJob(t *testing.T) {
	conf := &config.Configuration{Scheduler: config.Scheduler{Enabled: true, Timezone: "Asia/Kolkata"}}
	c := NewCron(zap.NewNop(), conf, nil)
	require.NoError(t, c.Run())
	defer func() { _ = c.Stop(context.Background()) }()

	entries := c.server.Entries()
	require.Len(t, entries, 1)
	next := entries[0].Schedule.Next(time.Date(2025, 10, 25, 12, 0, 0, 0, conf.Scheduler.Location()))
	want := time.Date(2025, 10, 26, 0, 0, 0, 0, conf.Scheduler.Location())
	assert.True(t, want.Equal(next), "next run %s", next)
}

func TestCron_InvalidSpec(t *testing.T) {
	conf := &config.Configuration{Scheduler: config.Scheduler{Enabled: true, Spec: "not a spec"}}
	c := NewCron(zap.NewNop(), conf, nil)
	assert.Error(t, c.Run())
}
