package router

import (
	"pms/internal/core"
	"pms/internal/handler"
	"pms/internal/middleware"

	"github.com/gin-gonic/gin"
)

var (
	reportRoles    = []core.Role{core.RoleOwner, core.RoleAdmin, core.RoleManager, core.RoleFinance}
	leaseRoles     = []core.Role{core.RoleOwner, core.RoleAdmin, core.RoleManager}
	financeRoles   = []core.Role{core.RoleOwner, core.RoleAdmin, core.RoleFinance}
	schedulerRoles = []core.Role{core.RoleOwner, core.RoleAdmin}
)

type ApiRouter struct {
	auth                *middleware.Auth
	dashboardHandler    *handler.DashboardHandler
	leaseHandler        *handler.LeaseHandler
	rentHandler         *handler.RentHandler
	notificationHandler *handler.NotificationHandler
	activityHandler     *handler.ActivityHandler
	schedulerHandler    *handler.SchedulerHandler
	realtimeHandler     *handler.RealtimeHandler
}

func NewApiRouter(
	auth *middleware.Auth,
	dashboardHandler *handler.DashboardHandler,
	leaseHandler *handler.LeaseHandler,
	rentHandler *handler.RentHandler,
	notificationHandler *handler.NotificationHandler,
	activityHandler *handler.ActivityHandler,
	schedulerHandler *handler.SchedulerHandler,
	realtimeHandler *handler.RealtimeHandler,
) *ApiRouter {
	return &ApiRouter{
		auth:                auth,
		dashboardHandler:    dashboardHandler,
		leaseHandler:        leaseHandler,
		rentHandler:         rentHandler,
		notificationHandler: notificationHandler,
		activityHandler:     activityHandler,
		schedulerHandler:    schedulerHandler,
		realtimeHandler:     realtimeHandler,
	}
}

func (ar *ApiRouter) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api", ar.auth.Handler())

	dashboard := api.Group("/dashboard", ar.auth.RequireRoles(reportRoles...))
	{
		dashboard.GET("/report", ar.dashboardHandler.Report)
		dashboard.GET("/occupancy", ar.dashboardHandler.Occupancy)
		dashboard.GET("/search", ar.dashboardHandler.Search)
	}

	api.GET("/lease/stats", ar.auth.RequireRoles(leaseRoles...), ar.leaseHandler.Stats)

	rent := api.Group("/rent", ar.auth.RequireRoles(financeRoles...))
	{
		rent.GET("", ar.rentHandler.List)
		rent.GET("/receipt/next", ar.rentHandler.NextReceipt)
		rent.PUT("/:uuid/status", ar.rentHandler.UpdateStatus)
	}

	notification := api.Group("/notification")
	{
		notification.GET("", ar.notificationHandler.List)
		notification.PUT("/read-all", ar.notificationHandler.MarkAllRead)
		notification.PUT("/:id/read", ar.notificationHandler.MarkRead)
		notification.DELETE("/:id", ar.notificationHandler.Delete)
	}

	activity := api.Group("/activity")
	{
		activity.GET("", ar.activityHandler.List)
		activity.GET("/:uuid", ar.activityHandler.Get)
	}

	api.POST("/scheduler/run", ar.auth.RequireRoles(schedulerRoles...), ar.schedulerHandler.Run)
	api.GET("/realtime/ws", ar.realtimeHandler.Stream)
}
