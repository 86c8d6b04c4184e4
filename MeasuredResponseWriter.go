package web

import (
	"net/http"
	"time"
)

// minimumReportedDuration is the shortest duration Duration reports as
// non-zero.
const minimumReportedDuration = 5 * time.Millisecond

// MeasuredResponseWriter wraps a standard http.ResponseWriter and records what
// the access log needs: the committed status code, the number of body bytes
// written and when the request started.
type MeasuredResponseWriter struct {
	w       http.ResponseWriter
	started time.Time

	status    int
	committed bool
	volume    int64
}

// NewMeasuredResponseWriter creates a new MeasuredResponseWriter with the provided
// underlying http.ResponseWriter.
func NewMeasuredResponseWriter(w http.ResponseWriter) *MeasuredResponseWriter {
	return &MeasuredResponseWriter{
		w:       w,
		started: time.Now(),
		status:  http.StatusOK,
	}
}

var _ http.ResponseWriter = &MeasuredResponseWriter{}
var _ http.Flusher = &MeasuredResponseWriter{}

// Header returns the headers of the underlying response writer.
func (mrw *MeasuredResponseWriter) Header() http.Header {
	return mrw.w.Header()
}

// Write commits a 200 status if nothing has been committed yet, then writes
// to the underlying response writer.
func (mrw *MeasuredResponseWriter) Write(b []byte) (int, error) {
	mrw.commit(http.StatusOK)

	n, err := mrw.w.Write(b)
	mrw.volume += int64(n)

	return n, err
}

// WriteHeader commits the status code.  Only the first call has any effect.
func (mrw *MeasuredResponseWriter) WriteHeader(statusCode int) {
	mrw.commit(statusCode)
}

// Flush commits the current status and flushes the underlying response writer,
// if it supports flushing.
func (mrw *MeasuredResponseWriter) Flush() {
	f, ok := mrw.w.(http.Flusher)
	if !ok {
		return
	}

	mrw.commit(mrw.status)
	f.Flush()
}

func (mrw *MeasuredResponseWriter) commit(statusCode int) {
	if mrw.committed {
		return
	}

	mrw.committed = true
	mrw.status = statusCode
	mrw.w.WriteHeader(statusCode)
}

// StatusCode returns the committed status code, or http.StatusOK if none has
// been committed yet.
func (mrw *MeasuredResponseWriter) StatusCode() int {
	return mrw.status
}

// HasWrittenHeaders returns true once a status code has been committed.
func (mrw *MeasuredResponseWriter) HasWrittenHeaders() bool {
	return mrw.committed
}

// Duration returns the time elapsed since the writer was created, or zero if
// that is under minimumReportedDuration.
func (mrw *MeasuredResponseWriter) Duration() time.Duration {
	elapsed := time.Since(mrw.started)
	if elapsed < minimumReportedDuration {
		return 0
	}

	return elapsed
}

// Volume returns the number of body bytes written.
func (mrw *MeasuredResponseWriter) Volume() int64 {
	return mrw.volume
}

// Unwrap returns the underlying response writer.
func (mrw *MeasuredResponseWriter) Unwrap() http.ResponseWriter {
	return mrw.w
}
