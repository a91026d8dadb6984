package router

import (
	"errors"
	"net/http"
	"net/url"

	docs "github.com/envelope-zero/financisto2bluecoins/api"
	"github.com/envelope-zero/financisto2bluecoins/internal/controllers/healthz"
	"github.com/envelope-zero/financisto2bluecoins/internal/controllers/root"
	v1 "github.com/envelope-zero/financisto2bluecoins/internal/controllers/v1"
	apiversion "github.com/envelope-zero/financisto2bluecoins/internal/controllers/version"
	"github.com/envelope-zero/financisto2bluecoins/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time with -ldflags "-X github.com/envelope-zero/financisto2bluecoins/internal/router.version=...".
var version = "0.0.0"

// Version returns the version of the build.
func Version() string {
	return version
}

var errMethodNotAllowed = errors.New("this HTTP method is not allowed for the endpoint you called")

// Options configures the parts of the router that can be switched on and off.
type Options struct {
	AllowOrigins []string // Origins allowed for CORS requests, CORS is disabled when empty
	EnablePprof  bool     // Serve pprof profiles at /debug/pprof
	Timezone     string   // Default time zone for migrations
}

// Config creates the router with all middlewares.
//
// The returned teardown function must be called when the router is not
// used anymore, it unregisters the Prometheus metrics.
func Config(url *url.URL, opts Options) (*gin.Engine, func(), error) {
	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister prometheus metrics")
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
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httputil.HTTPError{
			Error: errMethodNotAllowed.Error(),
		})
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
	if len(opts.AllowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", opts.AllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "financisto2bluecoins"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "Migrates Financisto backups to SQL statements for Bluecoins."

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
// Separating this from Config() allows us to attach it to different
// paths for different use cases, e.g. the standalone version.
func AttachRoutes(group *gin.RouterGroup, opts Options) {
	// Register metrics
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	if opts.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	root.RegisterRoutes(group.Group(""))
	apiversion.RegisterRoutes(group.Group("/version"), version)
	healthz.RegisterRoutes(group.Group("/healthz"))
	v1.RegisterRoutes(group.Group("/v1"), opts.Timezone)
}
