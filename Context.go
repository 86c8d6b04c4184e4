package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ljpx/di"
	"github.com/ljpx/id"
	"github.com/ljpx/problem"
)

// Context represents the context of a single HTTP web request.  It is not
// thread-safe.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	c      di.Container
	config *Config

	correlationID       id.ID
	middlewareArtifacts map[string]interface{}
}

// NewContext creates a new context for the provided request.
func NewContext(w http.ResponseWriter, r *http.Request, c di.Container, config *Config) *Context {
	return &Context{
		w:      w,
		r:      r,
		c:      c.Fork(),
		config: config,

		correlationID:       id.New(),
		middlewareArtifacts: make(map[string]interface{}),
	}
}

// GetCorrelationID returns the correlationID for the request.
func (ctx *Context) GetCorrelationID() id.ID {
	return ctx.correlationID
}

// GetMiddlewareArtifact retrieves the middleware artifact with the specified
// name.  It will return nil if the artifact does not exist.
func (ctx *Context) GetMiddlewareArtifact(name string) interface{} {
	return ctx.middlewareArtifacts[name]
}

// SetMiddlewareArtifact sets the middleware artifact for the specified name.
func (ctx *Context) SetMiddlewareArtifact(name string, value interface{}) {
	ctx.middlewareArtifacts[name] = value
}

// ResponseWriter returns the http.ResponseWriter.
func (ctx *Context) ResponseWriter() http.ResponseWriter {
	return ctx.w
}

// Container returns the underlying container.
func (ctx *Context) Container() di.Container {
	return ctx.c
}

// Request returns the *http.Request.
func (ctx *Context) Request() *http.Request {
	return ctx.r
}

// Header returns the set of response headers.
func (ctx *Context) Header() http.Header {
	return ctx.w.Header()
}

// RouteTemplate returns the path template of the route that matched the
// request, e.g. "/api/v1/users/{id}".  It returns an empty string if the
// request was not routed.
func (ctx *Context) RouteTemplate() string {
	route := mux.CurrentRoute(ctx.r)
	if route == nil {
		return ""
	}

	template, err := route.GetPathTemplate()
	if err != nil {
		return ""
	}

	return template
}

// GetPathParameter retrieves a path segment parameter from the request.
func (ctx *Context) GetPathParameter(name string) string {
	return mux.Vars(ctx.r)[name]
}

// GetQueryParameter retrieves a query parameter from the request.
func (ctx *Context) GetQueryParameter(name string) string {
	return ctx.r.URL.Query().Get(name)
}

// Respond reponds to the request with the provided HTTP code.
func (ctx *Context) Respond(code int) {
	ctx.w.Header().Set("Correlation-ID", ctx.correlationID.String())
	ctx.w.WriteHeader(code)
}

// RespondWithJSON responds to the request with the provided HTTP code and
// model.
func (ctx *Context) RespondWithJSON(code int, model interface{}) {
	rawJSON, err := json.Marshal(model)
	if err != nil {
		rawJSON = ctx.getRawProblemDetailsForSerializationError(err)
		code = http.StatusInternalServerError
	}

	ctx.w.Header().Set("Content-Type", "application/json")
	ctx.w.Header().Set("Content-Length", fmt.Sprintf("%v", len(rawJSON)))
	ctx.Respond(code)
	ctx.w.Write(rawJSON)
}

// NotFound responds to the request with a NotFound status code.
func (ctx *Context) NotFound(subjectType string, subject string) {
	ctx.respondWithProblem(http.StatusNotFound, "not-found", fmt.Sprintf("The %v '%v' was not found.", subjectType, subject), nil, map[string]interface{}{
		"subjectType": subjectType,
		"subject":     subject,
	})
}

// MethodNotAllowed responds to the request with a MethodNotAllowed status code
// and an Allow header listing the allowed methods.
func (ctx *Context) MethodNotAllowed(allowedMethods ...string) {
	ctx.w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
	ctx.respondWithProblem(http.StatusMethodNotAllowed, "method-not-allowed", fmt.Sprintf("This endpoint does not allow use of the '%v' method.", ctx.r.Method), nil, map[string]interface{}{
		"methodUsed":     ctx.r.Method,
		"allowedMethods": allowedMethods,
	})
}

// InternalServerError responds to the request with an InternalServerError
// status code.  The error is only included when debugging is enabled.
func (ctx *Context) InternalServerError(err error) {
	ctx.respondWithProblem(http.StatusInternalServerError, "internal-server-error", "An internal server error prevented the request from completing.", err, nil)
}

// Resolve resolves from the underlying container.  It will return false if
// an error prevented the operation from completing.
func (ctx *Context) Resolve(dependencies ...interface{}) bool {
	err := ctx.c.Resolve(dependencies...)
	if err != nil {
		ctx.InternalServerError(err)
		return false
	}

	return true
}

// AssertMethod ensures that the incoming request is using one of the provided
// methods.  Otherwise it responds with MethodNotAllowed.
func (ctx *Context) AssertMethod(allowedMethods ...string) bool {
	for _, allowedMethod := range allowedMethods {
		if strings.EqualFold(ctx.r.Method, allowedMethod) {
			return true
		}
	}

	ctx.MethodNotAllowed(allowedMethods...)
	return false
}

func (ctx *Context) respondWithProblem(code int, slug string, detail string, err error, specifics map[string]interface{}) {
	details := &problem.Details{
		Type:      fmt.Sprintf("%v/http/%v", ctx.config.ProblemDetailsTypePrefix, slug),
		Title:     http.StatusText(code),
		Detail:    detail,
		Specifics: specifics,
	}

	if ctx.config.DebuggingEnabled && err != nil {
		details.AttachError(err)
	}

	ctx.RespondWithJSON(code, details)
}

func (ctx *Context) getRawProblemDetailsForSerializationError(err error) []byte {
	formatJSON := `{"type":"%v/http/internal-server-error","title":"Internal Server Error","detail":"Serialization of the response model failed."%v}`

	errStr := ""
	if ctx.config.DebuggingEnabled && err != nil {
		errStr = fmt.Sprintf(`,"error":"%v"`, err.Error())
	}

	return []byte(fmt.Sprintf(formatJSON, ctx.config.ProblemDetailsTypePrefix, errStr))
}
