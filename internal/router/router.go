// Package router sets up the gin engine and attaches all routes.
package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/config"
	"github.com/misfinanzas/backend/internal/controllers/healthz"
	v1 "github.com/misfinanzas/backend/internal/controllers/v1"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is overridden at build time with ldflags.
var version = "0.0.0"

// Config sets up the gin engine with all middlewares. The returned
// teardown function unregisters the Prometheus metrics so that tests
// can configure routers repeatedly.
func Config(cfg *config.Config) (*gin.Engine, func(), error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if cfg.Server.CORSAllowOrigins != "" {
		log.Debug().Str("CORS Allowed Origins", cfg.Server.CORSAllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(cfg.Server.CORSAllowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}
	r.Use(MetricsMiddleware())

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Info().Str("version", version).Msg("Router")

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is
// passed in.
func AttachRoutes(cfg *config.Config, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	if cfg.Server.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	healthz.RegisterRoutes(group.Group("/healthz"))

	api := group.Group("/v1")
	{
		api.GET("", GetV1)
		api.OPTIONS("", OptionsV1)
	}

	v1.SetOwnerBootstrapToken(cfg.Auth.OwnerBootstrapToken)
	v1.RegisterAuthRoutes(api.Group("/auth"))

	authenticated := api.Group("", v1.Authenticate())
	v1.RegisterBootstrapRoutes(authenticated.Group("/bootstrap"))
	v1.RegisterCompanyRoutes(authenticated.Group("/companies"))
	v1.RegisterWorkEntryRoutes(authenticated.Group("/work-entries"))
	v1.RegisterExpenseRoutes(authenticated.Group("/expenses"))
	v1.RegisterBankRoutes(authenticated.Group("/bank"))
	v1.RegisterMonthRoutes(authenticated.Group("/months"))
	v1.RegisterReportRoutes(authenticated.Group("/reports"))
	v1.RegisterDebtRoutes(authenticated.Group("/debts"))
	v1.RegisterPremiumRoutes(authenticated.Group("/premium"))
	v1.RegisterAdminRoutes(authenticated.Group("/admin"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/healthz"`
	Version string `json:"version" example:"https://example.com/version"`
	V1      string `json:"v1" example:"https://example.com/v1"`
}

// GetRoot returns the entrypoint for the API, listing all endpoints.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: "/healthz",
			Version: "/version",
			V1:      "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// GetVersion returns the software version of the API.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Auth        string `json:"auth" example:"https://example.com/v1/auth"`
	Companies   string `json:"companies" example:"https://example.com/v1/companies"`
	WorkEntries string `json:"workEntries" example:"https://example.com/v1/work-entries"`
	Expenses    string `json:"expenses" example:"https://example.com/v1/expenses"`
	Bank        string `json:"bank" example:"https://example.com/v1/bank"`
	Months      string `json:"months" example:"https://example.com/v1/months"`
	Reports     string `json:"reports" example:"https://example.com/v1/reports"`
	Debts       string `json:"debts" example:"https://example.com/v1/debts"`
}

// GetV1 returns general information about the v1 API.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:        "/v1/auth",
			Companies:   "/v1/companies",
			WorkEntries: "/v1/work-entries",
			Expenses:    "/v1/expenses",
			Bank:        "/v1/bank",
			Months:      "/v1/months",
			Reports:     "/v1/reports",
			Debts:       "/v1/debts",
		},
	})
}

func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
