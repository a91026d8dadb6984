package httputil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/envelope-zero/financisto2bluecoins/internal/config"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidUUID        = errors.New("the specified resource ID is not a valid UUID")
	ErrNoFilePost         = errors.New("you must send a file to this endpoint")
	ErrWrongFileName      = errors.New("the file name must match")
	ErrInvalidQueryString = errors.New("the query string contains unparseable data")
)

// clientErrors are answered with 400, the user can fix them.
var clientErrors = []error{
	ErrInvalidUUID,
	ErrNoFilePost,
	ErrWrongFileName,
	ErrInvalidQueryString,
	config.ErrInvalidTimezone,
	models.ErrNoStatements,
}

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// Status returns the HTTP status code for an error.
//
// Errors that are not known to be caused by the request are server errors.
func Status(err error) int {
	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	for _, e := range clientErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// NewError aborts the request with an error response.
//
// Server errors are logged with the request ID, users only get a general message.
func NewError(c *gin.Context, err error) {
	status := Status(err)

	if status == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		err = fmt.Errorf("%w. The request id is '%v', send this to your server administrator to help them finding the problem", models.ErrGeneral, requestid.Get(c))
	}

	c.AbortWithStatusJSON(status, HTTPError{Error: err.Error()})
}

// UUIDFromString parses a UUID from a path or query parameter.
func UUIDFromString(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}
	return id, nil
}
