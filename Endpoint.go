package web

// Endpoint defines the methods that any HTTP endpoint must implement.  The
// route tree never calls an Endpoint itself, it only holds on to it until it is
// registered on a Router.
type Endpoint interface {
	Handle(ctx *Context)
}
