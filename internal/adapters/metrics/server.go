package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Path is where the server exposes metrics.
const Path = "/metrics"

const readHeaderTimeout = 5 * time.Second

// Server exposes a metrics handler over HTTP.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Listen binds addr and serves h under Path in the background.
func Listen(addr string, h http.Handler, log ports.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMetricsServeFailed.Error()), "addr", addr)
	}

	mux := http.NewServeMux()
	mux.Handle(Path, h)
	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout},
		ln:  ln,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(zerr.Wrap(err, "metrics server stopped"))
		}
	}()
	log.Info("serving metrics", "addr", s.Addr())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops the server, waiting for in-flight scrapes until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
