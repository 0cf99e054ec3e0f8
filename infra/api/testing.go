package api

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/CrestNiraj12/terminalreels/infra/auth"
)

// NewHandlerClient returns a Client that serves every request from h
// in-process. Used by service tests in sibling packages.
func NewHandlerClient(h http.Handler, keys auth.KeyProvider) *Client {
	return &Client{
		baseURL: "http://example.test",
		keys:    keys,
		http:    &http.Client{Transport: handlerRoundTripper{h: h}},
		log:     slog.New(slog.DiscardHandler),
	}
}

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}
