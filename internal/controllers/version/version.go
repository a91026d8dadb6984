package version

import (
	"net/http"

	"github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"
	"github.com/envelope-zero/financisto2bluecoins/internal/httputil"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
	"github.com/gin-gonic/gin"
)

// Version of the migrator, set by RegisterRoutes.
var migratorVersion = "0.0.0"

type Response struct {
	Data Object `json:"data"`
}

type Object struct {
	Version string   `json:"version" example:"1.1.0"`                  // Version of financisto2bluecoins
	Backup  Backup   `json:"backup"`                                   // Backups that can be migrated
	Tables  []string `json:"tables" example:"ACCOUNTSTABLE,ITEMTABLE"` // Bluecoins tables the statements write to
}

type Backup struct {
	Package  string   `json:"package" example:"ru.orangesoftware.financisto"`
	Entities []string `json:"entities" example:"currency,account"` // Migrated entities, all others are skipped
}

func RegisterRoutes(r *gin.RouterGroup, version string) {
	migratorVersion = version

	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Version
// @Description	Returns the version of the migrator and the backups and tables it supports
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Data: Object{
			Version: migratorVersion,
			Backup: Backup{
				Package: financisto.Package,
				Entities: []string{
					financisto.EntityCurrency,
					financisto.EntityAccount,
					financisto.EntityCategory,
					financisto.EntityTransaction,
				},
			},
			Tables: []string{
				bluecoins.TableAccounts,
				bluecoins.TableItems,
				bluecoins.TableParentCategories,
				bluecoins.TableChildCategories,
				bluecoins.TableTransactions,
			},
		},
	})
}
