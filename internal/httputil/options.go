package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

func OptionsGet(c *gin.Context) {
	options(c, http.MethodGet)
}

func OptionsGetPost(c *gin.Context) {
	options(c, http.MethodGet, http.MethodPost)
}

func OptionsGetDelete(c *gin.Context) {
	options(c, http.MethodGet, http.MethodDelete)
}

// options answers with the allowed HTTP methods in the "allow" header.
func options(c *gin.Context, methods ...string) {
	allow := http.MethodOptions
	for _, m := range methods {
		allow += ", " + m
	}

	c.Header("allow", allow)
	c.Render(http.StatusNoContent, render.JSON{})
}
