package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/violet-vault/backend/internal/controllers/healthz"
	v1 "github.com/violet-vault/backend/internal/controllers/v1"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/metrics"
	"github.com/violet-vault/backend/internal/models"
)

// Options configure the routes that depend on the deployment.
type Options struct {
	// Version is reported by the /version endpoint
	Version string

	// EnablePprof registers the pprof handlers under debug/pprof
	EnablePprof bool
}

type httpError struct {
	Error string `json:"error"`
}

// Config creates the router with all middlewares. The returned teardown
// function must be called when the router is not used anymore.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	err := metrics.Register()
	if err != nil {
		return nil, func() {}, err
	}

	teardown := func() {
		if !metrics.Unregister() {
			log.Error().Msg("could not unregister all Prometheus collectors")
		}
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(metrics.Middleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httpError{Error: "this HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
func AttachRoutes(group *gin.RouterGroup, opts Options) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion(opts.Version))
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	healthz.RegisterRoutes(group.Group("/healthz"))

	// pprof performance profiles
	if opts.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	v1.RegisterRoutes(group.Group("/v1"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Version string `json:"version"` // Endpoint returning the version of the backend
	Healthz string `json:"healthz"` // Health of the backend
	Metrics string `json:"metrics"` // Prometheus metrics
	V1      string `json:"v1"`      // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Version: url + "/version",
			Healthz: url + "/healthz",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version"` // the running version of the backend
}

// GetVersion returns a handler for the API version object
func GetVersion(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, VersionResponse{
			Data: VersionObject{
				Version: version,
			},
		})
	}
}

// OptionsRoot returns the allowed HTTP methods
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}
