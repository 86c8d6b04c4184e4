package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrRouteBuilderFinalized is returned when a RouteBuilder, or one of its
// branches, is built a second time.
var ErrRouteBuilderFinalized = errors.New("the RouteBuilder has already been built")

// ErrNilRouteBuilder is returned when a nil RouteBuilder is registered.
var ErrNilRouteBuilder = errors.New("the RouteBuilder can not be nil")

// RouteBuilder is a node in a tree of path segments, middleware and endpoints.
// Branches are added with At and With, endpoints with Method.  Once Build has
// been called, the RouteBuilder and all of its branches are invalid and can no
// longer be used.  RouteBuilder is not thread-safe.
type RouteBuilder struct {
	segment  RouteSegment
	branches []*RouteBuilder

	methods   []string
	endpoints map[string]Endpoint

	finalized bool
}

// Root starts a new route tree and returns its root node.
func Root() *RouteBuilder {
	return newRouteBuilder(rootSegment())
}

func newRouteBuilder(segment RouteSegment) *RouteBuilder {
	return &RouteBuilder{
		segment:   segment,
		endpoints: make(map[string]Endpoint),
	}
}

// At adds a branch for the provided path.  The path may contain several
// segments, e.g. "api/v1".  The branch is passed to configure before being
// added, and b is returned.
func (b *RouteBuilder) At(path string, configure func(r *RouteBuilder)) *RouteBuilder {
	return b.addBranch(pathSegment(path), configure)
}

// With adds a branch for the provided middleware.  Endpoints added to the
// branch, at any depth, are wrapped in the middleware.  Endpoints added to b
// itself are not.
func (b *RouteBuilder) With(middleware Middleware, configure func(r *RouteBuilder)) *RouteBuilder {
	if isNilMiddleware(middleware) {
		panic("the middleware passed to With can not be nil")
	}

	return b.addBranch(middlewareSegment(middleware), configure)
}

func (b *RouteBuilder) addBranch(segment RouteSegment, configure func(r *RouteBuilder)) *RouteBuilder {
	b.assertNotFinalized()

	branch := newRouteBuilder(segment)
	if configure != nil {
		configure(branch)
	}

	b.branches = append(b.branches, branch)
	return b
}

// Method registers the endpoint for the provided HTTP method on this node.  A
// second registration for the same method replaces the first.  Method panics
// if the method is blank or the endpoint is nil.
func (b *RouteBuilder) Method(method string, endpoint Endpoint) *RouteBuilder {
	b.assertNotFinalized()

	if f, ok := endpoint.(ContextHandlerFunc); endpoint == nil || (ok && f == nil) {
		panic(fmt.Sprintf("the endpoint for method '%v' can not be nil", method))
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		panic("the method passed to Method can not be blank")
	}
	if _, ok := b.endpoints[method]; !ok {
		b.methods = append(b.methods, method)
	}

	b.endpoints[method] = endpoint
	return b
}

// Get registers a GET endpoint on this node.
func (b *RouteBuilder) Get(endpoint Endpoint) *RouteBuilder {
	return b.Method(http.MethodGet, endpoint)
}

// Post registers a POST endpoint on this node.
func (b *RouteBuilder) Post(endpoint Endpoint) *RouteBuilder {
	return b.Method(http.MethodPost, endpoint)
}

// Put registers a PUT endpoint on this node.
func (b *RouteBuilder) Put(endpoint Endpoint) *RouteBuilder {
	return b.Method(http.MethodPut, endpoint)
}

// Patch registers a PATCH endpoint on this node.
func (b *RouteBuilder) Patch(endpoint Endpoint) *RouteBuilder {
	return b.Method(http.MethodPatch, endpoint)
}

// Delete registers a DELETE endpoint on this node.
func (b *RouteBuilder) Delete(endpoint Endpoint) *RouteBuilder {
	return b.Method(http.MethodDelete, endpoint)
}

// Head registers a HEAD endpoint on this node.
func (b *RouteBuilder) Head(endpoint Endpoint) *RouteBuilder {
	return b.Method(http.MethodHead, endpoint)
}

// Options registers an OPTIONS endpoint on this node.
func (b *RouteBuilder) Options(endpoint Endpoint) *RouteBuilder {
	return b.Method(http.MethodOptions, endpoint)
}

// Build flattens the tree into a list of endpoint descriptors.  The endpoints
// of a node come first, in registration order, followed by those of each of
// its branches in the order the branches were added.
func (b *RouteBuilder) Build() ([]EndpointDescriptor, error) {
	if b == nil {
		return nil, ErrNilRouteBuilder
	}

	if b.isAnyFinalized() {
		return nil, ErrRouteBuilderFinalized
	}

	descriptors := []EndpointDescriptor{}
	b.flatten("", nil, &descriptors)

	return descriptors, nil
}

func (b *RouteBuilder) flatten(path string, middleware []Middleware, descriptors *[]EndpointDescriptor) {
	switch b.segment.Kind() {
	case PathSegment:
		path = joinPath(path, b.segment.Path())
	case MiddlewareSegment:
		middleware = append(middleware[:len(middleware):len(middleware)], b.segment.Middleware())
	}

	for _, method := range b.methods {
		*descriptors = append(*descriptors, EndpointDescriptor{
			path:       path,
			middleware: middleware,
			method:     method,
			endpoint:   b.endpoints[method],
		})
	}

	for _, branch := range b.branches {
		branch.flatten(path, middleware, descriptors)
	}

	b.finalized = true
	b.branches = nil
	b.methods = nil
	b.endpoints = nil
}

func (b *RouteBuilder) isAnyFinalized() bool {
	if b.finalized {
		return true
	}

	for _, branch := range b.branches {
		if branch.isAnyFinalized() {
			return true
		}
	}

	return false
}

func (b *RouteBuilder) assertNotFinalized() {
	if b.finalized {
		panic("a RouteBuilder can not be used after Build has been called")
	}
}
