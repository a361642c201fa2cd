package service

import (
	fluentdRepo "pms/internal/database/fluentd/repository"
	mongoRepo "pms/internal/database/mongodb/repository"
	redisRepo "pms/internal/database/redis/repository"
	"pms/internal/realtime"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHealthService,
	NewAuthService,
	NewActivityService,
	NewNotificationService,
	NewRentService,
	NewReportService,
	NewSchedulerService,

	wire.Bind(new(TenantStore), new(*mongoRepo.TenantRepository)),
	wire.Bind(new(TenantTotals), new(*mongoRepo.TenantRepository)),
	wire.Bind(new(RentStore), new(*mongoRepo.RentRepository)),
	wire.Bind(new(RentLedgerStore), new(*mongoRepo.RentRepository)),
	wire.Bind(new(PremisesStore), new(*mongoRepo.PremisesRepository)),
	wire.Bind(new(NotificationStore), new(*mongoRepo.NotificationRepository)),
	wire.Bind(new(RecipientStore), new(*mongoRepo.UserRepository)),
	wire.Bind(new(UserStore), new(*mongoRepo.UserRepository)),
	wire.Bind(new(ActivityStore), new(*mongoRepo.ActivityLogRepository)),
	wire.Bind(new(ReportStore), new(*mongoRepo.ReportRepository)),
	wire.Bind(new(ActivityMirror), new(*fluentdRepo.LogRepository)),
	wire.Bind(new(RunLock), new(*redisRepo.SchedulerLockRepository)),
	wire.Bind(new(Pusher), new(*realtime.Hub)),
	wire.Bind(new(NotificationDispatcher), new(*NotificationService)),
	wire.Bind(new(ActivityRecorder), new(*ActivityService)),
)
