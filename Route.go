package web

// Route defines the methods that any HTTP route must implement.
// EndpointDescriptor is the Route produced by flattening a RouteBuilder.
type Route interface {
	Method() string
	Path() string
	Middleware() []Middleware
	Handle(ctx *Context)
}
