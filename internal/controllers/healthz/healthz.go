package healthz

import (
	"fmt"
	"net/http"

	"github.com/envelope-zero/financisto2bluecoins/internal/httputil"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Data RunLog `json:"data"`
}

// RunLog is the state of the run log database.
type RunLog struct {
	Migrations int64 `json:"migrations" example:"12"` // Number of recorded migrations
	Failed     int64 `json:"failed" example:"1"`      // Number of recorded migrations that failed
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the state of the run log or, if it cannot be reached, an error
// @Tags			General
// @Produce		json
// @Success		200	{object}	Response
// @Failure		500	{object}	httputil.HTTPError
// @Router			/healthz [get]
func Get(c *gin.Context) {
	if models.DB == nil {
		httputil.NewError(c, fmt.Errorf("%w: the run log is not connected", models.ErrGeneral))
		return
	}

	sqlDB, err := models.DB.DB()
	if err != nil {
		httputil.NewError(c, fmt.Errorf("%w: %w", models.ErrGeneral, err))
		return
	}

	if err := sqlDB.Ping(); err != nil {
		httputil.NewError(c, fmt.Errorf("%w: %w", models.ErrGeneral, err))
		return
	}

	var runLog RunLog
	if err := models.DB.Model(&models.Migration{}).Count(&runLog.Migrations).Error; err != nil {
		httputil.NewError(c, err)
		return
	}

	err = models.DB.Model(&models.Migration{}).Where(&models.Migration{Status: models.MigrationFailed}).Count(&runLog.Failed).Error
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Data: runLog})
}
