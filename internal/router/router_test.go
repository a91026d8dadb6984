package router_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/envelope-zero/financisto2bluecoins/internal/controllers/root"
	"github.com/envelope-zero/financisto2bluecoins/internal/router"
	"github.com/envelope-zero/financisto2bluecoins/test"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMode(t *testing.T) {
	os.Setenv("GIN_MODE", "debug")
	url, _ := url.Parse("http://example.com")

	r, teardown, err := router.Config(url, router.Options{})
	defer teardown()

	assert.Nil(t, err, "Error on router initialization")

	router.AttachRoutes(r.Group("/"), router.Options{})

	assert.True(t, gin.IsDebugging())

	os.Unsetenv("GIN_MODE")
}

func TestPprofOn(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	r, teardown, err := router.Config(url, router.Options{})
	defer teardown()
	assert.Nil(t, err, "Error on router initialization")

	router.AttachRoutes(r.Group("/"), router.Options{EnablePprof: true})

	var routes []string
	for _, r := range r.Routes() {
		routes = append(routes, r.Path)
	}
	assert.Contains(t, routes, "/debug/pprof/")
}

func TestPprofOff(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	r, teardown, err := router.Config(url, router.Options{})
	defer teardown()
	assert.Nil(t, err, "Error on router initialization")

	router.AttachRoutes(r.Group("/"), router.Options{})

	for _, r := range r.Routes() {
		assert.NotContains(t, r.Path, "pprof", "pprof routes are registered erroneously! Route: %s", r)
	}
}

// TestCorsSetting checks that allowed origins get the CORS headers.
func TestCorsSetting(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	r, teardown, err := router.Config(url, router.Options{AllowOrigins: []string{"http://localhost:3000", "https://example.com"}})
	defer teardown()
	require.Nil(t, err)

	router.AttachRoutes(r.Group("/"), router.Options{})

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "http://example.com/version", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(recorder, req)

	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestTeardownAllowsNewRouter(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	_, teardown, err := router.Config(url, router.Options{})
	require.Nil(t, err)
	teardown()

	_, teardown, err = router.Config(url, router.Options{})
	defer teardown()
	assert.Nil(t, err, "Metrics must be registered again after teardown")
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "http://example.com/", http.StatusOK},
		{http.MethodOptions, "http://example.com/", http.StatusNoContent},
		{http.MethodGet, "http://example.com/version", http.StatusOK},
		{http.MethodOptions, "http://example.com/healthz", http.StatusNoContent},
		{http.MethodGet, "http://example.com/metrics", http.StatusOK},
		{http.MethodGet, "http://example.com/docs/index.html", http.StatusOK},
		{http.MethodGet, "http://example.com/v1", http.StatusOK},
		{http.MethodPatch, "http://example.com/v1/migrations", http.StatusMethodNotAllowed},
		{http.MethodGet, "http://example.com/v2", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func TestRootLinks(t *testing.T) {
	recorder := test.Request(t, http.MethodGet, "http://example.com/", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response root.Response
	test.DecodeResponse(t, &recorder, &response)
	assert.Equal(t, "http://example.com/v1", response.Links.V1)
	assert.Equal(t, "http://example.com/metrics", response.Links.Metrics)
}

func TestMetrics(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	r, teardown, err := router.Config(url, router.Options{})
	defer teardown()
	require.Nil(t, err)
	router.AttachRoutes(r.Group("/"), router.Options{})

	for _, path := range []string{"/version", "/metrics"} {
		recorder := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "http://example.com"+path, nil)
		r.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		if path == "/metrics" {
			body := recorder.Body.String()
			assert.True(t, strings.Contains(body, `requests_total{code="200",method="GET",url="/version"}`), "Request counter is missing: %s", body)
		}
	}
}
