package web

// EndpointDescriptor is a flattened route: the full path to an endpoint, the
// middleware wrapping it (outermost first), its HTTP method and the endpoint
// itself.  Descriptors are only produced by RouteBuilder.Build and are never
// mutated.
type EndpointDescriptor struct {
	path       string
	middleware []Middleware
	method     string
	endpoint   Endpoint
}

var _ Route = EndpointDescriptor{}

// Path returns the full path of the endpoint.
func (d EndpointDescriptor) Path() string {
	return d.path
}

// Middleware returns a copy of the middleware chain of the endpoint.
func (d EndpointDescriptor) Middleware() []Middleware {
	middleware := make([]Middleware, len(d.middleware))
	copy(middleware, d.middleware)

	return middleware
}

// Method returns the HTTP method of the endpoint.
func (d EndpointDescriptor) Method() string {
	return d.method
}

// Endpoint returns the endpoint without its middleware.
func (d EndpointDescriptor) Endpoint() Endpoint {
	return d.endpoint
}

// Handle calls the endpoint directly.  Middleware is not applied.
func (d EndpointDescriptor) Handle(ctx *Context) {
	d.endpoint.Handle(ctx)
}
