package web

// Middleware defines the methods that any HTTP middleware must implement.
// Handle receives the rest of the chain as next and decides whether, and when,
// to call it.  Code placed after next(ctx) runs once the inner middleware and
// the endpoint have returned.
type Middleware interface {
	Handle(ctx *Context, next ContextHandlerFunc)
}

// MiddlewareFunc allows a function that only runs before the endpoint to be
// used as Middleware.  If it returns true, the request continues on to the
// rest of the chain.
type MiddlewareFunc func(ctx *Context) bool

var _ Middleware = MiddlewareFunc(nil)

// Handle calls f(ctx) and then next(ctx) if f returned true.
func (f MiddlewareFunc) Handle(ctx *Context, next ContextHandlerFunc) {
	if f(ctx) {
		next(ctx)
	}
}

// WrappingMiddlewareFunc allows an ordinary function that receives the rest
// of the chain to be used as Middleware.
type WrappingMiddlewareFunc func(ctx *Context, next ContextHandlerFunc)

var _ Middleware = WrappingMiddlewareFunc(nil)

// Handle calls f(ctx, next).
func (f WrappingMiddlewareFunc) Handle(ctx *Context, next ContextHandlerFunc) {
	f(ctx, next)
}

// Chain wraps the endpoint in the provided middleware.  The first middleware
// is the outermost: it runs first and returns last.
func Chain(middleware []Middleware, endpoint Endpoint) Endpoint {
	if len(middleware) == 0 {
		return endpoint
	}

	handler := ContextHandlerFunc(endpoint.Handle)
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = wrap(middleware[i], handler)
	}

	return handler
}

func wrap(mw Middleware, next ContextHandlerFunc) ContextHandlerFunc {
	return func(ctx *Context) {
		mw.Handle(ctx, next)
	}
}

// isNilMiddleware reports whether the middleware is nil, including a nil
// function wrapped in one of the adapters above.
func isNilMiddleware(mw Middleware) bool {
	switch f := mw.(type) {
	case nil:
		return true
	case MiddlewareFunc:
		return f == nil
	case WrappingMiddlewareFunc:
		return f == nil
	}

	return false
}
