package server

import (
	"context"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/iota-uz/migscope/pkg/application"
)

const (
	readHeaderTimeout = 5 * time.Second
	// Imports upload whole workbooks; keep the write window generous so a
	// slow reconciliation response is not cut off mid-body.
	writeTimeout    = 2 * time.Minute
	idleTimeout     = time.Minute
	shutdownTimeout = 10 * time.Second
)

// HTTPServer assembles the controllers and middleware registered on the
// application into one gzip-wrapped gorilla router.
type HTTPServer struct {
	controllers             []application.Controller
	middlewares             []mux.MiddlewareFunc
	notFoundHandler         http.Handler
	methodNotAllowedHandler http.Handler

	srv *http.Server
}

func NewHTTPServer(
	app application.Application,
	notFoundHandler, methodNotAllowedHandler http.Handler,
) *HTTPServer {
	return &HTTPServer{
		controllers:             app.Controllers(),
		middlewares:             app.Middleware(),
		notFoundHandler:         notFoundHandler,
		methodNotAllowedHandler: methodNotAllowedHandler,
	}
}

func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.middlewares...)
	for _, controller := range s.controllers {
		controller.Register(r)
	}

	// mux skips router middleware for the fallback handlers, so wrap them
	// by hand; the pool-injecting middleware must still run for them.
	notFound := s.notFoundHandler
	notAllowed := s.methodNotAllowedHandler
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		notFound = s.middlewares[i](notFound)
		notAllowed = s.middlewares[i](notAllowed)
	}
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notAllowed
	return r
}

func (s *HTTPServer) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

func (s *HTTPServer) Start(socketAddress string) error {
	s.srv = &http.Server{
		Addr:              socketAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before returning.
func (s *HTTPServer) Shutdown() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
