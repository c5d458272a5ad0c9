// Package router assembles the platform API's route tables. Route
// declarations are data: resource groups hold (method, path, guards,
// handler) rows built once at startup, and discovery manifests are derived
// from the same rows that register the handlers.
package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/guard"
)

// apiPrefix is where all resource groups mount
const apiPrefix = "/api"

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration under the /api prefix
type Router struct {
	engine   *gin.Engine
	banner   string
	groups   []*ResourceGroup
	external []RouteRegistrar
}

// NewRouter creates a new Router. The banner appears in the platform
// discovery manifest served at the API root.
func NewRouter(engine *gin.Engine, banner string) *Router {
	return &Router{
		engine: engine,
		banner: banner,
	}
}

// Register adds a resource group to be mounted on Setup
func (r *Router) Register(group *ResourceGroup) *Router {
	r.groups = append(r.groups, group)
	return r
}

// RegisterExternal adds a plain RouteRegistrar outside the resource-group
// model (used for infrastructure surfaces)
func (r *Router) RegisterExternal(registrar RouteRegistrar) *Router {
	r.external = append(r.external, registrar)
	return r
}

// Setup registers all routes with the engine. The API root serves the
// platform manifest listing each mounted resource root.
func (r *Router) Setup() {
	api := r.engine.Group(apiPrefix)

	roots := make([]string, 0, len(r.groups))
	for _, group := range r.groups {
		group.RegisterRoutes(api)
		roots = append(roots, "GET "+apiPrefix+group.prefix)
	}
	for _, registrar := range r.external {
		registrar.RegisterRoutes(api)
	}

	banner := r.banner
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Manifest{
			Message:   banner,
			Endpoints: roots,
		})
	})
}

// ResourceGroup is a declarative route table for one resource. Guards
// listed on the group run before every route's own guards; the manifest
// served at the group root is derived from the registered rows.
type ResourceGroup struct {
	name    string
	prefix  string
	message string
	guards  []guard.Guard
	routes  []routeDefinition
}

type routeDefinition struct {
	method  string
	path    string
	guards  []guard.Guard
	handler gin.HandlerFunc
	// extra middleware between guards and handler (credential verification)
	middleware []gin.HandlerFunc
}

// NewResourceGroup creates a route table mounted at the given prefix.
// The message becomes the group's discovery manifest banner.
func NewResourceGroup(name, prefix, message string) *ResourceGroup {
	return &ResourceGroup{
		name:    name,
		prefix:  prefix,
		message: message,
	}
}

// Guard adds guards evaluated before every route in this group
func (g *ResourceGroup) Guard(guards ...guard.Guard) *ResourceGroup {
	g.guards = append(g.guards, guards...)
	return g
}

// Handle registers a route row: guards run in order, then any middleware,
// then the handler.
func (g *ResourceGroup) Handle(method, path string, guards []guard.Guard, handler gin.HandlerFunc, middleware ...gin.HandlerFunc) *ResourceGroup {
	g.routes = append(g.routes, routeDefinition{
		method:     method,
		path:       path,
		guards:     guards,
		handler:    handler,
		middleware: middleware,
	})
	return g
}

// GET registers a GET route row
func (g *ResourceGroup) GET(path string, guards []guard.Guard, handler gin.HandlerFunc, middleware ...gin.HandlerFunc) *ResourceGroup {
	return g.Handle(http.MethodGet, path, guards, handler, middleware...)
}

// POST registers a POST route row
func (g *ResourceGroup) POST(path string, guards []guard.Guard, handler gin.HandlerFunc, middleware ...gin.HandlerFunc) *ResourceGroup {
	return g.Handle(http.MethodPost, path, guards, handler, middleware...)
}

// DELETE registers a DELETE route row
func (g *ResourceGroup) DELETE(path string, guards []guard.Guard, handler gin.HandlerFunc, middleware ...gin.HandlerFunc) *ResourceGroup {
	return g.Handle(http.MethodDelete, path, guards, handler, middleware...)
}

// Endpoints lists the group's routes as "METHOD /api<prefix><path>"
// strings, in declaration order. This is the manifest contract: the list
// always matches what is actually registered.
func (g *ResourceGroup) Endpoints() []string {
	endpoints := make([]string, 0, len(g.routes))
	for _, route := range g.routes {
		endpoints = append(endpoints, route.method+" "+apiPrefix+g.prefix+manifestPath(route.path))
	}
	return endpoints
}

// manifestPath normalizes a route path for manifest display
func manifestPath(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// Name returns the group name
func (g *ResourceGroup) Name() string {
	return g.name
}

// Prefix returns the group prefix
func (g *ResourceGroup) Prefix() string {
	return g.prefix
}

// RegisterRoutes implements RouteRegistrar. The group root serves the
// discovery manifest with no guards; a bare GET on a resource root is
// always 200.
func (g *ResourceGroup) RegisterRoutes(rg *gin.RouterGroup) {
	mounted := rg.Group(g.prefix)

	message := g.message
	endpoints := g.Endpoints()
	mounted.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Manifest{
			Message:   message,
			Endpoints: endpoints,
		})
	})

	for _, route := range g.routes {
		handlers := make([]gin.HandlerFunc, 0, 2+len(route.middleware))

		combined := make([]guard.Guard, 0, len(g.guards)+len(route.guards))
		combined = append(combined, g.guards...)
		combined = append(combined, route.guards...)
		if len(combined) > 0 {
			handlers = append(handlers, guard.Chain(combined...))
		}

		handlers = append(handlers, route.middleware...)
		handlers = append(handlers, route.handler)

		mounted.Handle(route.method, route.path, handlers...)
	}
}
