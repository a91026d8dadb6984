package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/envelope-zero/financisto2bluecoins/internal/config"
	"github.com/envelope-zero/financisto2bluecoins/internal/httputil"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer"
	"github.com/envelope-zero/financisto2bluecoins/internal/migrate"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
)

// Uploaded backups must match this pattern.
// Uploads are sent as multipart form with the backup in FormField.
const (
	BackupPattern = "*.backup"
	FormField     = "file"
)

type MigrationQuery struct {
	Timezone string `form:"timezone" example:"Asia/Taipei"` // Time zone to write dates in. Defaults to the time zone of the server
}

type MigrationResponse struct {
	Data  *models.Migration `json:"data"`                                                                 // Data for the migration
	Error *string           `json:"error" example:"could not parse backup: not a valid Financisto backup"` // The error, if any occurred
}

type MigrationListResponse struct {
	Data  []models.Migration `json:"data"`                                                              // List of migrations
	Error *string            `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

// RegisterMigrationRoutes registers the routes for migrations with
// the RouterGroup that is passed.
func RegisterMigrationRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMigrations)
		r.GET("", GetMigrations)
		r.POST("", CreateMigration)
	}
	{
		r.OPTIONS("/:id", OptionsMigrationDetail)
		r.GET("/:id", GetMigration)
		r.DELETE("/:id", DeleteMigration)
	}
	{
		r.OPTIONS("/:id/statements", OptionsMigrationStatements)
		r.GET("/:id/statements", GetMigrationStatements)
	}
}

// getUploadedFile returns the form file and its name.
func getUploadedFile(c *gin.Context, pattern string) (multipart.File, string, error) {
	formFile, err := c.FormFile(FormField)
	if formFile == nil {
		return nil, "", httputil.ErrNoFilePost
	}

	if err != nil {
		return nil, "", err
	}

	if !glob.Glob(pattern, formFile.Filename) {
		return nil, "", fmt.Errorf("%w: %s", httputil.ErrWrongFileName, pattern)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, "", err
	}

	return f, formFile.Filename, nil
}

// getMigration loads the migration with the ID from the path.
func getMigration(c *gin.Context) (models.Migration, error) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		return models.Migration{}, err
	}

	if id == uuid.Nil {
		return models.Migration{}, httputil.ErrInvalidUUID
	}

	var migration models.Migration
	err = models.DB.First(&migration, models.Migration{DefaultModel: models.DefaultModel{ID: id}}).Error
	if err != nil {
		return models.Migration{}, err
	}

	return migration, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Migrations
// @Success		204
// @Router			/v1/migrations [options]
func OptionsMigrations(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Migrations
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/migrations/{id} [options]
func OptionsMigrationDetail(c *gin.Context) {
	_, err := getMigration(c)
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Migrations
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/migrations/{id}/statements [options]
func OptionsMigrationStatements(c *gin.Context) {
	_, err := getMigration(c)
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get migrations
// @Description	Returns all migrations, newest first
// @Tags			Migrations
// @Produce		json
// @Success		200	{object}	MigrationListResponse
// @Failure		500	{object}	MigrationListResponse
// @Router			/v1/migrations [get]
func GetMigrations(c *gin.Context) {
	// When there are no resources, we want an empty list, not null
	migrations := make([]models.Migration, 0)

	err := models.DB.Order("created_at DESC").Find(&migrations).Error
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	c.JSON(http.StatusOK, MigrationListResponse{Data: migrations})
}

// @Summary		Migrate a backup
// @Description	Migrates a Financisto backup to Bluecoins statements and records the run
// @Tags			Migrations
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	MigrationResponse
// @Failure		400			{object}	MigrationResponse
// @Failure		500			{object}	MigrationResponse
// @Param			file		formData	file			true	"Financisto backup"
// @Param			timezone	query		MigrationQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/migrations [post]
func CreateMigration(c *gin.Context) {
	var query MigrationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.NewError(c, fmt.Errorf("%w: %w", httputil.ErrInvalidQueryString, err))
		return
	}

	timezone := query.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}

	location, err := config.Config{Timezone: timezone}.Location()
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	f, filename, err := getUploadedFile(c, BackupPattern)
	if err != nil {
		httputil.NewError(c, err)
		return
	}
	defer f.Close()

	result, importErr := importer.Import(f, migrate.Options{Location: location})
	migration := models.NewMigration(filename, timezone, result, importErr)

	err = models.DB.Create(&migration).Error
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	observe(migration)

	if importErr != nil {
		s := importErr.Error()
		c.JSON(http.StatusBadRequest, MigrationResponse{
			Data:  &migration,
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, MigrationResponse{Data: &migration})
}

// @Summary		Get migration
// @Description	Returns a specific migration
// @Tags			Migrations
// @Produce		json
// @Success		200	{object}	MigrationResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/migrations/{id} [get]
func GetMigration(c *gin.Context) {
	migration, err := getMigration(c)
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	c.JSON(http.StatusOK, MigrationResponse{Data: &migration})
}

// @Summary		Delete migration
// @Description	Deletes a migration from the run log
// @Tags			Migrations
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/migrations/{id} [delete]
func DeleteMigration(c *gin.Context) {
	migration, err := getMigration(c)
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	err = models.DB.Delete(&migration).Error
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get statements
// @Description	Returns the SQL statements generated by a successful migration
// @Tags			Migrations
// @Produce		application/sql
// @Success		200	{string}	string
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/migrations/{id}/statements [get]
func GetMigrationStatements(c *gin.Context) {
	migration, err := getMigration(c)
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	if migration.Status != models.MigrationSuccess {
		httputil.NewError(c, models.ErrNoStatements)
		return
	}

	name := strings.TrimSuffix(migration.Filename, ".backup") + ".sql"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/sql; charset=utf-8", []byte(migration.Output))
}
