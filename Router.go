package web

// Router defines the methods that any component routes can be registered on
// must implement.
type Router interface {
	RegisterEndpoint(path string, method string, endpoint Endpoint)
}

// Register builds the provided route tree and registers each of its endpoints
// on the router, in order.  The middleware of each endpoint is applied before
// the endpoint is handed to the router.  The router must not be nil.
func Register(router Router, routes *RouteBuilder) error {
	if routes == nil {
		return ErrNilRouteBuilder
	}

	descriptors, err := routes.Build()
	if err != nil {
		return err
	}

	for _, descriptor := range descriptors {
		endpoint := Chain(descriptor.middleware, descriptor.endpoint)
		router.RegisterEndpoint(descriptor.path, descriptor.method, endpoint)
	}

	return nil
}
