package root

import (
	"net/http"

	v1 "github.com/envelope-zero/financisto2bluecoins/internal/controllers/v1"
	"github.com/envelope-zero/financisto2bluecoins/internal/httputil"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Links  Links  `json:"links"`
	Upload Upload `json:"upload"` // How to submit a backup for migration
}

type Links struct {
	Docs       string `json:"docs" example:"https://example.com/api/docs/index.html"`                    // Swagger API documentation
	Healthz    string `json:"healthz" example:"https://example.com/api/healthz"`                         // Run log health
	Version    string `json:"version" example:"https://example.com/api/version"`                         // Version and supported formats
	Metrics    string `json:"metrics" example:"https://example.com/api/metrics"`                         // Prometheus metrics
	V1         string `json:"v1" example:"https://example.com/api/v1"`                                   // List endpoint for all v1 endpoints
	Migrations string `json:"migrations" example:"https://example.com/api/v1/migrations"`                // Run log of all migrations
	Statements string `json:"statements" example:"https://example.com/api/v1/migrations/{id}/statements"` // SQL of a successful migration, {id} is the migration ID
}

type Upload struct {
	URL      string `json:"url" example:"https://example.com/api/v1/migrations"`
	Method   string `json:"method" example:"POST"`
	Field    string `json:"field" example:"file"`        // Multipart form field of the backup
	Pattern  string `json:"pattern" example:"*.backup"`  // The file name must match this glob
	Timezone string `json:"timezone" example:"timezone"` // Query parameter for the IANA time zone of the dates
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints and how to upload a backup
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))
	migrations := url + "/v1/migrations"

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Docs:       url + "/docs/index.html",
			Healthz:    url + "/healthz",
			Version:    url + "/version",
			Metrics:    url + "/metrics",
			V1:         url + "/v1",
			Migrations: migrations,
			Statements: migrations + "/{id}/statements",
		},
		Upload: Upload{
			URL:      migrations,
			Method:   http.MethodPost,
			Field:    v1.FormField,
			Pattern:  v1.BackupPattern,
			Timezone: "timezone",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
