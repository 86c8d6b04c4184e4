package web

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/ljpx/test"
)

func TestRouteBuilderEmptyTree(t *testing.T) {
	// Act.
	descriptors, err := Root().Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, len(descriptors)).IsEqualTo(0)
}

func TestRouteBuilderRootEndpoints(t *testing.T) {
	// Arrange.
	routes := Root().
		Method(http.MethodGet, endpointNamed("h0")).
		Method(http.MethodPost, endpointNamed("h1"))

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET  h0 []",
		"POST  h1 []",
	))
}

func TestRouteBuilderNestedPathsAreJoined(t *testing.T) {
	// Arrange.
	routes := Root().At("api", func(r *RouteBuilder) {
		r.At("v1", func(r *RouteBuilder) {
			r.Method(http.MethodGet, endpointNamed("h"))
		})
	})

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET api/v1 h []",
	))
}

func TestRouteBuilderMiddlewareOnlyAppliesToItsBranch(t *testing.T) {
	// Arrange.
	routes := Root().
		With(middlewareNamed("m"), func(r *RouteBuilder) {
			r.Method(http.MethodGet, endpointNamed("h1"))
		}).
		Method(http.MethodPost, endpointNamed("h2"))

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"POST  h2 []",
		"GET  h1 [m]",
	))
}

func TestRouteBuilderNestedMiddlewareIsAncestorFirst(t *testing.T) {
	// Arrange.
	routes := Root().With(middlewareNamed("m1"), func(r *RouteBuilder) {
		r.With(middlewareNamed("m2"), func(r *RouteBuilder) {
			r.Method(http.MethodGet, endpointNamed("h"))
		})
	})

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET  h [m1 m2]",
	))
}

func TestRouteBuilderInterleavedPathsAndMiddleware(t *testing.T) {
	// Arrange.
	routes := Root().At("api", func(r *RouteBuilder) {
		r.With(middlewareNamed("auth"), func(r *RouteBuilder) {
			r.At("users", func(r *RouteBuilder) {
				r.Get(endpointNamed("list"))
				r.With(middlewareNamed("audit"), func(r *RouteBuilder) {
					r.At("{id}", func(r *RouteBuilder) {
						r.Delete(endpointNamed("remove"))
					})
				})
			})
		})
		r.At("health", func(r *RouteBuilder) {
			r.Get(endpointNamed("health"))
		})
	})

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET api/users list [auth]",
		"DELETE api/users/{id} remove [auth audit]",
		"GET api/health health []",
	))
}

func TestRouteBuilderSecondRegistrationOverwrites(t *testing.T) {
	// Arrange.
	routes := Root().
		Method(http.MethodGet, endpointNamed("h1")).
		Method(http.MethodPost, endpointNamed("h2")).
		Method(http.MethodGet, endpointNamed("h3"))

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET  h3 []",
		"POST  h2 []",
	))
}

func TestRouteBuilderMethodIsNormalized(t *testing.T) {
	// Arrange.
	routes := Root().
		Method(" get ", endpointNamed("h1")).
		Method("GET", endpointNamed("h2"))

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET  h2 []",
	))
}

func TestRouteBuilderSiblingsKeepInsertionOrder(t *testing.T) {
	// Arrange.
	routes := Root().
		At("b", func(r *RouteBuilder) { r.Get(endpointNamed("hb")) }).
		At("a", func(r *RouteBuilder) { r.Get(endpointNamed("ha")) })

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET b hb []",
		"GET a ha []",
	))
}

func TestRouteBuilderFlattensInDepthFirstOrder(t *testing.T) {
	// Arrange.
	routes := Root().
		Method(http.MethodGet, endpointNamed("h0")).
		At("api/v1", func(r *RouteBuilder) {
			r.Method(http.MethodGet, endpointNamed("h1")).
				Method(http.MethodPost, endpointNamed("h2"))
		}).
		At("api/v2", func(r *RouteBuilder) {
			r.Method(http.MethodGet, endpointNamed("h3"))
		})

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET  h0 []",
		"GET api/v1 h1 []",
		"POST api/v1 h2 []",
		"GET api/v2 h3 []",
	))
}

func TestRouteBuilderIsDeterministic(t *testing.T) {
	// Arrange.
	construct := func() *RouteBuilder {
		return Root().
			At("x", func(r *RouteBuilder) {
				r.Put(endpointNamed("a")).Patch(endpointNamed("b")).Head(endpointNamed("c"))
				r.With(middlewareNamed("m"), func(r *RouteBuilder) {
					r.Options(endpointNamed("d")).Post(endpointNamed("e"))
				})
			})
	}

	// Act.
	first, err1 := construct().Build()
	second, err2 := construct().Build()

	// Assert.
	test.That(t, err1).IsNil()
	test.That(t, err2).IsNil()
	test.That(t, describe(first)).IsEqualTo(describe(second))
	test.That(t, describe(first)).IsEqualTo(lines(
		"PUT x a []",
		"PATCH x b []",
		"HEAD x c []",
		"OPTIONS x d [m]",
		"POST x e [m]",
	))
}

func TestRouteBuilderNormalizesPaths(t *testing.T) {
	// Arrange.
	routes := Root().
		At("/api/", func(r *RouteBuilder) {
			r.At("//v1\\users/", func(r *RouteBuilder) {
				r.Get(endpointNamed("h1"))
			})
			r.At("", func(r *RouteBuilder) {
				r.Get(endpointNamed("h2"))
			})
		})

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET api/v1/users h1 []",
		"GET api h2 []",
	))
}

func TestRouteBuilderNilConfigureAddsEmptyBranch(t *testing.T) {
	// Arrange.
	routes := Root().At("empty", nil).Get(endpointNamed("h"))

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET  h []",
	))
}

func TestRouteBuilderBuildTwiceFails(t *testing.T) {
	// Arrange.
	routes := Root().Get(endpointNamed("h"))
	_, err := routes.Build()
	test.That(t, err).IsNil()

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsEqualTo(ErrRouteBuilderFinalized)
	test.That(t, len(descriptors)).IsEqualTo(0)
}

func TestRouteBuilderBuildFailsWhenBranchWasBuilt(t *testing.T) {
	// Arrange.
	var branch *RouteBuilder
	routes := Root().At("api", func(r *RouteBuilder) {
		branch = r.Get(endpointNamed("h"))
	})

	_, err := branch.Build()
	test.That(t, err).IsNil()

	// Act.
	_, err = routes.Build()

	// Assert.
	test.That(t, err).IsEqualTo(ErrRouteBuilderFinalized)
}

func TestRouteBuilderBranchBuiltAloneKeepsItsOwnSegment(t *testing.T) {
	// Arrange.
	var branch *RouteBuilder
	Root().At("api", func(r *RouteBuilder) {
		branch = r.Get(endpointNamed("h"))
	})

	// Act.
	descriptors, err := branch.Build()

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET api h []",
	))
}

func TestRouteBuilderPanicsWhenUsedAfterBuild(t *testing.T) {
	// Arrange.
	var branch *RouteBuilder
	routes := Root().At("api", func(r *RouteBuilder) {
		branch = r
	})

	_, err := routes.Build()
	test.That(t, err).IsNil()

	// Act and Assert.
	test.That(t, didPanic(func() { routes.Get(endpointNamed("h")) })).IsTrue()
	test.That(t, didPanic(func() { routes.At("x", nil) })).IsTrue()
	test.That(t, didPanic(func() { branch.With(middlewareNamed("m"), nil) })).IsTrue()
}

func TestRouteBuilderPanicsOnNilEndpointOrMiddleware(t *testing.T) {
	// Act and Assert.
	test.That(t, didPanic(func() { Root().Get(nil) })).IsTrue()
	test.That(t, didPanic(func() { Root().Get(ContextHandlerFunc(nil)) })).IsTrue()
	test.That(t, didPanic(func() { Root().With(nil, nil) })).IsTrue()
	test.That(t, didPanic(func() { Root().With(MiddlewareFunc(nil), nil) })).IsTrue()
	test.That(t, didPanic(func() { Root().With(WrappingMiddlewareFunc(nil), nil) })).IsTrue()
}

func TestRouteBuilderPanicsOnBlankMethod(t *testing.T) {
	// Act and Assert.
	test.That(t, didPanic(func() { Root().Method("", endpointNamed("h")) })).IsTrue()
	test.That(t, didPanic(func() { Root().Method("   ", endpointNamed("h")) })).IsTrue()
}

func TestRouteBuilderBuildFailsForNilBuilder(t *testing.T) {
	// Arrange.
	var routes *RouteBuilder

	// Act.
	descriptors, err := routes.Build()

	// Assert.
	test.That(t, err).IsEqualTo(ErrNilRouteBuilder)
	test.That(t, len(descriptors)).IsEqualTo(0)
}

func TestEndpointDescriptorMiddlewareIsCopied(t *testing.T) {
	// Arrange.
	routes := Root().With(middlewareNamed("m"), func(r *RouteBuilder) {
		r.Get(endpointNamed("h"))
	})

	descriptors, err := routes.Build()
	test.That(t, err).IsNil()

	// Act.
	middleware := descriptors[0].Middleware()
	middleware[0] = middlewareNamed("replaced")

	// Assert.
	test.That(t, describe(descriptors)).IsEqualTo(lines(
		"GET  h [m]",
	))
}

func TestSegmentKindString(t *testing.T) {
	test.That(t, RootSegment.String()).IsEqualTo("root")
	test.That(t, PathSegment.String()).IsEqualTo("path")
	test.That(t, MiddlewareSegment.String()).IsEqualTo("middleware")
	test.That(t, SegmentKind(42).String()).IsEqualTo("unknown")
}

// -----------------------------------------------------------------------------

type testEndpoint struct {
	name string
}

var _ Endpoint = &testEndpoint{}

func endpointNamed(name string) *testEndpoint {
	return &testEndpoint{name: name}
}

func (e *testEndpoint) Handle(ctx *Context) {
	ctx.RespondWithJSON(http.StatusOK, &testResponseModel{
		Message: fmt.Sprintf("%v%v", e.name, visitedMiddleware(ctx)),
	})
}

type testNamedMiddleware struct {
	name string
}

var _ Middleware = &testNamedMiddleware{}

func middlewareNamed(name string) *testNamedMiddleware {
	return &testNamedMiddleware{name: name}
}

func (m *testNamedMiddleware) Handle(ctx *Context, next ContextHandlerFunc) {
	visited, _ := ctx.GetMiddlewareArtifact("visited").([]string)
	ctx.SetMiddlewareArtifact("visited", append(visited, m.name))

	if ctx.Request().Header.Get("X-Stop-At") != m.name {
		next(ctx)
	}
}

func visitedMiddleware(ctx *Context) []string {
	visited, _ := ctx.GetMiddlewareArtifact("visited").([]string)
	if visited == nil {
		return []string{}
	}

	return visited
}

func describe(descriptors []EndpointDescriptor) string {
	described := []string{}

	for _, descriptor := range descriptors {
		names := []string{}
		for _, mw := range descriptor.Middleware() {
			names = append(names, mw.(*testNamedMiddleware).name)
		}

		endpoint := descriptor.Endpoint().(*testEndpoint)
		described = append(described, fmt.Sprintf("%v %v %v %v", descriptor.Method(), descriptor.Path(), endpoint.name, names))
	}

	return lines(described...)
}

func lines(values ...string) string {
	return strings.Join(values, "\n")
}

func didPanic(fn func()) (panicked bool) {
	defer func() {
		panicked = recover() != nil
	}()

	fn()
	return false
}
