package command

import (
	"context"
	"encoding/json"
	"errors"

	"pms/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type SchedulerHandler struct {
	logger           *zap.Logger
	schedulerService *service.SchedulerService
}

func NewSchedulerHandler(logger *zap.Logger, schedulerService *service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{
		logger:           logger,
		schedulerService: schedulerService,
	}
}

// Run 手動執行一次排程；pass 為空時 rent、lease 都跑
func (handler *SchedulerHandler) Run(cmd *cobra.Command, pass string) error {
	var passes []service.Pass
	switch pass {
	case "":
	case string(service.PassRent), string(service.PassLease):
		passes = append(passes, service.Pass(pass))
	default:
		return errors.New("--pass must be rent or lease")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := handler.schedulerService.Run(ctx, passes...)
	if report != nil {
		out, _ := json.MarshalIndent(report, "", "  ")
		cmd.Println(string(out))
	}
	if err != nil {
		handler.logger.Error("run-scheduler failed", zap.Error(err))
		return err
	}
	return nil
}
