package cron

import (
	"context"

	"pms/config"
	"pms/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

type Cron struct {
	logger    *zap.Logger
	config    *config.Configuration
	server    *cron.Cron
	scheduler *service.SchedulerService
}

// NewCron 每日排程；同一個 job 上次未跑完時跳過
func NewCron(logger *zap.Logger, config *config.Configuration, scheduler *service.SchedulerService) *Cron {
	cronLogger := zapCronLogger{logger: logger.Named("cron").Sugar()}
	server := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(config.Scheduler.Location()),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &Cron{
		logger:    logger,
		config:    config,
		server:    server,
		scheduler: scheduler,
	}
}

func (c *Cron) Run() error {
	if !c.config.Scheduler.Enabled {
		c.logger.Info("scheduler disabled, cron not registered")
		return nil
	}
	spec := c.config.Scheduler.CronSpec()
	if _, err := c.server.AddFunc(spec, c.daily); err != nil {
		return err
	}
	c.logger.Info("daily scheduler registered",
		zap.String("spec", spec),
		zap.String("timezone", c.config.Scheduler.Location().String()),
	)
	c.server.Start()
	return nil
}

func (c *Cron) daily() {
	report, err := c.scheduler.Run(context.Background())
	if err != nil {
		c.logger.Error("daily scheduler run failed", zap.Error(err))
	}
	if report != nil {
		c.logger.Info("daily scheduler run finished", zap.String("today", report.Today), zap.Any("rent", report.Rent), zap.Any("lease", report.Lease))
	}
}

// Stop 等待執行中的 job 結束或 ctx 逾時
func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// zapCronLogger 把 cron 內部訊息轉給 zap
type zapCronLogger struct {
	logger *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
