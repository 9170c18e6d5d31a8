package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testRegistrar struct {
	path       string
	registered bool
}

func (t *testRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	t.registered = true
	rg.GET(t.path, func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	registrar := &testRegistrar{path: "/ping"}

	NewRouter(engine).Register(registrar).Setup()

	assert.True(t, registrar.registered)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouter_WithAPIVersion(t *testing.T) {
	engine := gin.New()

	NewRouter(engine, WithAPIVersion("v2")).Register(&testRegistrar{path: "/ping"}).Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/ping", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MultipleRegistrars(t *testing.T) {
	engine := gin.New()
	first := &testRegistrar{path: "/primero"}
	second := &testRegistrar{path: "/segundo"}

	r := NewRouter(engine)
	r.Register(first)
	r.Register(second)
	r.Setup()

	assert.True(t, first.registered)
	assert.True(t, second.registered)
}
