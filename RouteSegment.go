package web

// SegmentKind identifies what a RouteSegment contributes to the nodes beneath
// it.
type SegmentKind int

// The kinds of RouteSegment.
const (
	RootSegment SegmentKind = iota
	PathSegment
	MiddlewareSegment
)

// String returns the name of the kind.
func (k SegmentKind) String() string {
	switch k {
	case RootSegment:
		return "root"
	case PathSegment:
		return "path"
	case MiddlewareSegment:
		return "middleware"
	}

	return "unknown"
}

// RouteSegment is the part of a route tree node that applies to every node and
// endpoint below it: nothing for the root, a path fragment to append, or a
// middleware to wrap descendant endpoints with.  It is immutable.
type RouteSegment struct {
	kind       SegmentKind
	path       string
	middleware Middleware
}

func rootSegment() RouteSegment {
	return RouteSegment{kind: RootSegment}
}

func pathSegment(path string) RouteSegment {
	return RouteSegment{kind: PathSegment, path: path}
}

func middlewareSegment(middleware Middleware) RouteSegment {
	return RouteSegment{kind: MiddlewareSegment, middleware: middleware}
}

// Kind returns the kind of the segment.
func (s RouteSegment) Kind() SegmentKind {
	return s.kind
}

// Path returns the path fragment of a PathSegment, or "" for other kinds.
func (s RouteSegment) Path() string {
	return s.path
}

// Middleware returns the middleware of a MiddlewareSegment, or nil for other
// kinds.
func (s RouteSegment) Middleware() Middleware {
	return s.middleware
}
