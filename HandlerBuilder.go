package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ljpx/di"
	"github.com/ljpx/logging"
)

// HandlerBuilder is used to build a handler that can be passed to any HTTP
// server.  Once Build has been called, the HandlerBuilder is invalid and can
// no longer be used.  HandlerBuilder is not thread-safe.
type HandlerBuilder struct {
	c      di.Container
	config *Config
	logger logging.Logger

	paths        []string
	routesByPath map[string][]Route
	hasBeenBuilt bool
}

var _ Router = &HandlerBuilder{}

// NewHandlerBuilder creates a new handler builder with the provided container,
// logger and config.  A nil logger disables the access log and a nil config is
// treated as the zero Config.
func NewHandlerBuilder(c di.Container, logger logging.Logger, config *Config) *HandlerBuilder {
	if config == nil {
		config = &Config{}
	}

	return &HandlerBuilder{
		c:      c,
		config: config,
		logger: logger,

		routesByPath: make(map[string][]Route),
	}
}

// Use adds a route to the list of routes this handler should expose.
func (b *HandlerBuilder) Use(route Route) {
	b.assertNotAlreadyBuilt()

	path := purifyPath(joinPath(b.config.BasePath, route.Path()))
	if _, ok := b.routesByPath[path]; !ok {
		b.paths = append(b.paths, path)
	}

	b.routesByPath[path] = append(b.routesByPath[path], route)
}

// RegisterEndpoint adds a single endpoint, with any middleware already applied,
// to the list of routes this handler should expose.
func (b *HandlerBuilder) RegisterEndpoint(path string, method string, endpoint Endpoint) {
	b.Use(&registeredRoute{
		path:     path,
		method:   method,
		endpoint: endpoint,
	})
}

// Mount builds the provided route tree and adds all of its endpoints to the
// list of routes this handler should expose.
func (b *HandlerBuilder) Mount(routes *RouteBuilder) error {
	b.assertNotAlreadyBuilt()
	return Register(b, routes)
}

// Build builds a http.Handler that can be passed to any server.
func (b *HandlerBuilder) Build() http.Handler {
	b.assertNotAlreadyBuilt()
	b.hasBeenBuilt = true

	mx := mux.NewRouter()

	for _, path := range b.paths {
		ctxHandler := buildHandlerForPath(b.routesByPath[path])
		requestHandler := buildHandlerFromRequest(b.c, b.logger, b.config, ctxHandler)
		mx.HandleFunc(path, requestHandler)
	}

	notFoundRequestHandler := buildHandlerFromRequest(b.c, b.logger, b.config, func(ctx *Context) {
		ctx.NotFound("path", ctx.r.URL.Path)
	})

	mx.PathPrefix("/").HandlerFunc(notFoundRequestHandler)

	return mx
}

func (b *HandlerBuilder) assertNotAlreadyBuilt() {
	if b.hasBeenBuilt {
		panic("a HandlerBuilder can not be used after Build has been called")
	}
}

func buildHandlerFromRequest(c di.Container, logger logging.Logger, config *Config, ctxHandler ContextHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mrw := NewMeasuredResponseWriter(w)
		ctx := NewContext(mrw, r, c, config)

		defer func() {
			if p := recover(); p != nil && !mrw.HasWrittenHeaders() {
				err := fmt.Errorf("%v", p)
				ctx.InternalServerError(err)
			}

			if logger != nil {
				logmsg := fmt.Sprintf("• %v %v %v %v %v\n", mrw.StatusCode(), mrw.Duration(), ByteSizeToFriendlyString(mrw.Volume()), r.Method, r.URL.Path)
				logger.Printf(logmsg)
			}
		}()

		ctxHandler(ctx)
	}
}

// buildHandlerForPath dispatches on the request method.  When two routes share
// a path and method, the one registered last wins.
func buildHandlerForPath(routes []Route) ContextHandlerFunc {
	handlerByMethod := make(map[string]ContextHandlerFunc)
	allowedMethods := []string{}

	for _, route := range routes {
		method := strings.ToUpper(route.Method())

		if _, ok := handlerByMethod[method]; !ok {
			allowedMethods = append(allowedMethods, method)
		}

		handlerByMethod[method] = buildHandlerForRoute(route)
	}

	return func(ctx *Context) {
		if !ctx.AssertMethod(allowedMethods...) {
			return
		}

		handlerByMethod[strings.ToUpper(ctx.r.Method)](ctx)
	}
}

func buildHandlerForRoute(route Route) ContextHandlerFunc {
	return Chain(route.Middleware(), route).Handle
}

// -----------------------------------------------------------------------------

type registeredRoute struct {
	path     string
	method   string
	endpoint Endpoint
}

var _ Route = &registeredRoute{}

func (r *registeredRoute) Method() string {
	return r.method
}

func (r *registeredRoute) Path() string {
	return r.path
}

func (r *registeredRoute) Middleware() []Middleware {
	return nil
}

func (r *registeredRoute) Handle(ctx *Context) {
	r.endpoint.Handle(ctx)
}
