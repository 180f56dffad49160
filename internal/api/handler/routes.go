package handler

import (
	"net/http"

	"github.com/vfg2006/growth-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/growth-dashboard-api/pkg/middleware"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Dashboard(service dashboard.Dashboarder, format utils.CurrencyFormat) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service, format),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/snapshot",
			Method:      http.MethodGet,
			Handler:     GetSnapshot(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Insights(dashboardService dashboard.Dashboarder, narrator insighting.Narrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/insights",
			Method:      http.MethodPost,
			Handler:     GenerateInsights(dashboardService, narrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Export(service exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/export/:table",
			Method:      http.MethodGet,
			Handler:     DownloadTable(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/export/:table",
			Method:      http.MethodPost,
			Handler:     ExportTableToDir(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
