package v1

import (
	"net/http"

	"github.com/envelope-zero/financisto2bluecoins/internal/httputil"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/gin-gonic/gin"
)

// Time zone used for migrations that do not specify one, set by RegisterRoutes.
var defaultTimezone = "Local"

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Migrations string `json:"migrations" example:"https://example.com/api/v1/migrations"` // URL of the migrations collection
}

// RegisterRoutes registers all v1 routes.
func RegisterRoutes(r *gin.RouterGroup, timezone string) {
	if timezone != "" {
		defaultTimezone = timezone
	}

	r.GET("", Get)
	r.OPTIONS("", Options)

	RegisterMigrationRoutes(r.Group("/migrations"))
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Links: Links{
			Migrations: c.GetString(string(models.DBContextURL)) + "/v1/migrations",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
