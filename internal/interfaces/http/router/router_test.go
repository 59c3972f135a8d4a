package router

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horologe/storefront/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test").
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	api := NewRouter(engine).Register(group).Setup()

	assert.Equal(t, "/api/v1", api.BasePath())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
	NewDomainGroup("items", "/items").
		GET("", ok).
		POST("", ok).
		PUT("/:id", ok).
		DELETE("/:id", ok).
		RegisterRoutes(engine.Group("/api"))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/items"},
		{http.MethodPost, "/api/items"},
		{http.MethodPut, "/api/items/1"},
		{http.MethodDelete, "/api/items/1"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.method, w.Body.String())
		})
	}
}

func TestDomainGroup_MiddlewareAndSubgroups(t *testing.T) {
	engine := gin.New()
	var order []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			order = append(order, name)
			c.Next()
		}
	}

	parent := NewDomainGroup("admin", "/admin").Use(mark("parent"), nil)
	parent.Group("child", "/child").
		Use(mark("child")).
		GET("/leaf", nil, mark("route"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	parent.RegisterRoutes(engine.Group(""))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/child/leaf", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"parent", "child", "route"}, order)
	assert.Equal(t, "admin", parent.Name())
	assert.Equal(t, "/admin", parent.Prefix())
}

func testHandlers() Handlers {
	return Handlers{
		Orders:     handler.NewOrderHandler(nil, nil),
		Analytics:  handler.NewAnalyticsHandler(nil),
		Settings:   handler.NewSettingsHandler(nil),
		Products:   handler.NewProductHandler(nil),
		Categories: handler.NewCategoryHandler(nil),
		Uploads:    handler.NewUploadHandler(nil),
		Auth:       handler.NewAuthHandler(nil),
	}
}

func TestStorefrontGroups_RouteTable(t *testing.T) {
	engine := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	NewRouter(engine).
		Register(StorefrontGroups(testHandlers(), Guards{Authenticate: pass, RequireAdmin: pass})...).
		Setup()

	var got []string
	for _, route := range engine.Routes() {
		got = append(got, route.Method+" "+route.Path)
	}
	sort.Strings(got)

	want := []string{
		"DELETE /api/v1/admin/categories/:id",
		"DELETE /api/v1/admin/products/:id",
		"GET /api/v1/admin/analytics",
		"GET /api/v1/admin/customers",
		"GET /api/v1/admin/dashboard",
		"GET /api/v1/admin/landing",
		"GET /api/v1/admin/orders",
		"GET /api/v1/admin/orders/:id",
		"GET /api/v1/admin/orders/:id/invoice",
		"GET /api/v1/admin/settings",
		"GET /api/v1/auth/me",
		"GET /api/v1/categories",
		"GET /api/v1/categories/:id",
		"GET /api/v1/landing",
		"GET /api/v1/products",
		"GET /api/v1/products/:id",
		"GET /api/v1/products/:id/reviews",
		"GET /api/v1/settings",
		"POST /api/v1/admin/categories",
		"POST /api/v1/admin/landing",
		"POST /api/v1/admin/products",
		"POST /api/v1/admin/settings",
		"POST /api/v1/admin/uploads",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/logout",
		"POST /api/v1/orders",
		"POST /api/v1/products/:id/reviews",
		"PUT /api/v1/admin/categories/:id",
		"PUT /api/v1/admin/orders",
		"PUT /api/v1/admin/products/:id",
	}
	assert.Equal(t, want, got)
}

func TestStorefrontGroups_AdminIsGuarded(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	NewRouter(engine).
		Register(StorefrontGroups(testHandlers(), Guards{Authenticate: deny, RequireAdmin: deny})...).
		Setup()

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/admin/orders"},
		{http.MethodPut, "/api/v1/admin/orders"},
		{http.MethodGet, "/api/v1/admin/analytics"},
		{http.MethodPost, "/api/v1/admin/settings"},
		{http.MethodDelete, "/api/v1/admin/products/1"},
		{http.MethodPost, "/api/v1/admin/uploads"},
		{http.MethodGet, "/api/v1/auth/me"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}
